package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/tair/product-catalog/internal/product/domain"
	"github.com/tair/product-catalog/internal/product/usecase/command"
	"github.com/tair/product-catalog/internal/product/usecase/query"
	"github.com/tair/product-catalog/pkg/logger"
)

// ProductHandler handles HTTP requests for the catalog using CQRS handlers
type ProductHandler struct {
	createHandler *command.CreateProductHandler
	updateHandler *command.UpdateProductHandler
	deleteHandler *command.DeleteProductHandler

	getHandler  *query.GetProductHandler
	listHandler *query.ListProductsHandler

	repo domain.ProductRepository

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	totalProducts  prometheus.Gauge
}

// NewProductHandler creates a product handler registering its metrics on the
// default Prometheus registry.
func NewProductHandler(repo domain.ProductRepository) *ProductHandler {
	return NewProductHandlerWithRegistry(repo, prometheus.DefaultRegisterer)
}

// NewProductHandlerWithRegistry creates a product handler with an explicit
// metrics registry. Tests pass a fresh registry so handlers can be built more
// than once per process.
func NewProductHandlerWithRegistry(repo domain.ProductRepository, reg prometheus.Registerer) *ProductHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_service_requests_total",
			Help: "Total number of requests to the catalog service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_service_request_duration_seconds",
			Help:    "Duration of catalog service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	totalProducts := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_service_total_products",
			Help: "Total number of products in the catalog",
		},
	)

	reg.MustRegister(requestCounter, requestLatency, totalProducts)

	h := &ProductHandler{
		createHandler:  command.NewCreateProductHandler(repo),
		updateHandler:  command.NewUpdateProductHandler(repo),
		deleteHandler:  command.NewDeleteProductHandler(repo),
		getHandler:     query.NewGetProductHandler(repo),
		listHandler:    query.NewListProductsHandler(repo),
		repo:           repo,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
		totalProducts:  totalProducts,
	}

	// Seed the gauge so it reflects rows that existed before the first
	// write through this handler.
	if count, err := repo.Count(context.Background()); err == nil {
		h.totalProducts.Set(float64(count))
	}

	return h
}

// productRequest is the inbound payload for create and update. A client may
// send reorderStatus but it is decoded and then dropped: the stored value is
// always derived from stockQuantity.
type productRequest struct {
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	SKU            string          `json:"sku"`
	StockQuantity  int             `json:"stockQuantity"`
	ReorderPoint   int             `json:"reorderPoint"`
	ReorderStatus  string          `json:"reorderStatus"`
	Brand          string          `json:"brand"`
	Manufacturer   string          `json:"manufacturer"`
	Category       string          `json:"category"`
	SubCategory    string          `json:"subCategory"`
	Origin         string          `json:"origin"`
	Tags           string          `json:"tags"`
	WeightInKg     decimal.Decimal `json:"weightInKg"`
	Length         decimal.Decimal `json:"length"`
	Width          decimal.Decimal `json:"width"`
	Height         decimal.Decimal `json:"height"`
	Materials      string          `json:"materials"`
	TechnicalSpecs string          `json:"technicalSpecs"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *ProductHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()

		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *ProductHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", h.ListProducts)).Methods("GET")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", h.GetProduct)).Methods("GET")
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", h.CreateProduct)).Methods("POST")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", h.UpdateProduct)).Methods("PUT")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", h.DeleteProduct)).Methods("DELETE")
}

// ListProducts handles GET /api/products
// @Summary List products
// @Description Get one page of the product catalog
// @Tags Products
// @Produce json
// @Param page query int false "1-based page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} query.ProductPage
// @Router /api/products [get]
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))

	result, err := h.listHandler.Handle(r.Context(), query.ListProductsQuery{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list products")
		respondError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetProduct handles GET /api/products/{id}
// @Summary Get a product
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 404 {object} errorResponse
// @Router /api/products/{id} [get]
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	product, err := h.getHandler.Handle(r.Context(), query.GetProductQuery{ID: id})
	if err != nil {
		h.respondUsecaseError(w, r, err, "Failed to get product")
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// CreateProduct handles POST /api/products
// @Summary Create a product
// @Description Create a product. An empty sku is generated server side and
// @Description reorderStatus is always derived from stockQuantity.
// @Tags Products
// @Accept json
// @Produce json
// @Param request body productRequest true "Product payload"
// @Success 201 {object} domain.Product
// @Failure 400 {object} errorResponse
// @Router /api/products [post]
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.createHandler.Handle(r.Context(), command.CreateProductCommand{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		SKU:            req.SKU,
		StockQuantity:  req.StockQuantity,
		ReorderPoint:   req.ReorderPoint,
		Brand:          req.Brand,
		Manufacturer:   req.Manufacturer,
		Category:       req.Category,
		SubCategory:    req.SubCategory,
		Origin:         req.Origin,
		Tags:           req.Tags,
		WeightInKg:     req.WeightInKg,
		Length:         req.Length,
		Width:          req.Width,
		Height:         req.Height,
		Materials:      req.Materials,
		TechnicalSpecs: req.TechnicalSpecs,
	})
	if err != nil {
		h.respondUsecaseError(w, r, err, "Failed to create product")
		return
	}

	h.updateProductsMetric(r)

	w.Header().Set("Location", fmt.Sprintf("/api/products/%d", product.ID))
	respondJSON(w, http.StatusCreated, product)
}

// UpdateProduct handles PUT /api/products/{id}
// @Summary Replace a product
// @Tags Products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body productRequest true "Product payload"
// @Success 200 {object} domain.Product
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/products/{id} [put]
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.updateHandler.Handle(r.Context(), command.UpdateProductCommand{
		ID:             id,
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		SKU:            req.SKU,
		StockQuantity:  req.StockQuantity,
		ReorderPoint:   req.ReorderPoint,
		Brand:          req.Brand,
		Manufacturer:   req.Manufacturer,
		Category:       req.Category,
		SubCategory:    req.SubCategory,
		Origin:         req.Origin,
		Tags:           req.Tags,
		WeightInKg:     req.WeightInKg,
		Length:         req.Length,
		Width:          req.Width,
		Height:         req.Height,
		Materials:      req.Materials,
		TechnicalSpecs: req.TechnicalSpecs,
	})
	if err != nil {
		h.respondUsecaseError(w, r, err, "Failed to update product")
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/products/{id}
// @Summary Delete a product
// @Tags Products
// @Param id path int true "Product ID"
// @Success 204 "No Content"
// @Failure 404 {object} errorResponse
// @Router /api/products/{id} [delete]
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteProductCommand{ID: id}); err != nil {
		h.respondUsecaseError(w, r, err, "Failed to delete product")
		return
	}

	h.updateProductsMetric(r)

	w.WriteHeader(http.StatusNoContent)
}

// RegisterHealthCheck exposes GET /health backed by a database ping
func (h *ProductHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			respondError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}

		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")
}

// respondUsecaseError maps usecase errors onto the HTTP taxonomy: not found
// and validation failures are 4xx, everything else is a store failure.
func (h *ProductHandler) respondUsecaseError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, domain.ErrNotFound.Error())
	case errors.Is(err, domain.ErrInvalid):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error(r.Context()).Err(err).Msg(msg)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// productID parses the {id} path variable, responding 400 on garbage
func productID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return 0, false
	}
	return uint(id), true
}

// updateProductsMetric updates the total products gauge
func (h *ProductHandler) updateProductsMetric(r *http.Request) {
	count, err := h.repo.Count(r.Context())
	if err == nil {
		h.totalProducts.Set(float64(count))
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}
