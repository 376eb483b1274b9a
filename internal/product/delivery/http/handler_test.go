package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/product-catalog/internal/product/domain"
	"github.com/tair/product-catalog/internal/product/repository"
	"github.com/tair/product-catalog/internal/product/usecase/query"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	handler := NewProductHandlerWithRegistry(repository.NewMemoryProductRepository(), prometheus.NewRegistry())
	router := mux.NewRouter()
	handler.RegisterRoutes(router)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

const widgetJSON = `{
	"name": "Widget",
	"description": "A widget",
	"price": 9.99,
	"stockQuantity": 5,
	"reorderPoint": 2,
	"brand": "Acme",
	"manufacturer": "Acme Co",
	"category": "Other",
	"subCategory": "",
	"origin": "US",
	"tags": "a,b",
	"weightInKg": 1,
	"length": 1,
	"width": 1,
	"height": 1,
	"materials": "steel",
	"technicalSpecs": "spec1\nspec2"
}`

func createWidget(t *testing.T, srv *httptest.Server, body string) (*http.Response, domain.Product) {
	t.Helper()

	resp, err := http.Post(srv.URL+"/api/products", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var product domain.Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&product))
	return resp, product
}

func doRequest(t *testing.T, method, url string, body string) *http.Response {
	t.Helper()

	var req *http.Request
	var err error
	if body == "" {
		req, err = http.NewRequest(method, url, nil)
	} else {
		req, err = http.NewRequest(method, url, bytes.NewBufferString(body))
	}
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestCreateProductScenario(t *testing.T) {
	srv := newTestServer(t)

	resp, product := createWidget(t, srv, widgetJSON)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, fmt.Sprintf("/api/products/%d", product.ID), resp.Header.Get("Location"))
	assert.NotZero(t, product.ID)
	assert.Regexp(t, `^SKU\d{4}$`, product.SKU)
	assert.Equal(t, domain.StatusStockAdequate, product.ReorderStatus)
}

func TestCreateProductIgnoresClientReorderStatus(t *testing.T) {
	srv := newTestServer(t)

	body := `{"name":"Empty","description":"none left","price":1.50,"stockQuantity":0,"reorderStatus":"Stock Adequate"}`
	resp, product := createWidget(t, srv, body)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, domain.StatusOutOfStock, product.ReorderStatus)
}

func TestCreateProductValidation(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/products", `{"description":"no name"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, http.MethodPost, srv.URL+"/api/products", `{not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetProduct(t *testing.T) {
	srv := newTestServer(t)
	_, created := createWidget(t, srv, widgetJSON)

	resp := doRequest(t, http.MethodGet, fmt.Sprintf("%s/api/products/%d", srv.URL, created.ID), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var product domain.Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&product))
	assert.Equal(t, created.ID, product.ID)
	assert.Equal(t, "Widget", product.Name)
}

func TestGetProductNotFound(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, http.MethodGet, srv.URL+"/api/products/42", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/products/banana", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestIDZeroIsNotFound(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, http.MethodGet, srv.URL+"/api/products/0", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, http.MethodDelete, srv.URL+"/api/products/0", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateProduct(t *testing.T) {
	srv := newTestServer(t)
	_, created := createWidget(t, srv, widgetJSON)

	body := `{"name":"Widget v2","description":"A better widget","price":19.99,"sku":"WID-002","stockQuantity":0}`
	resp := doRequest(t, http.MethodPut, fmt.Sprintf("%s/api/products/%d", srv.URL, created.ID), body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var product domain.Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&product))
	assert.Equal(t, "Widget v2", product.Name)
	assert.Equal(t, "WID-002", product.SKU)
	assert.Equal(t, domain.StatusOutOfStock, product.ReorderStatus)
}

func TestUpdateProductNotFound(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, http.MethodPut, srv.URL+"/api/products/42", `{"name":"x","description":"y"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteProduct(t *testing.T) {
	srv := newTestServer(t)
	_, created := createWidget(t, srv, widgetJSON)

	url := fmt.Sprintf("%s/api/products/%d", srv.URL, created.ID)

	resp := doRequest(t, http.MethodDelete, url, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// second delete of the same id signals not found
	resp = doRequest(t, http.MethodDelete, url, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, url, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListProductsPagination(t *testing.T) {
	srv := newTestServer(t)
	for i := 0; i < 15; i++ {
		body := fmt.Sprintf(`{"name":"product-%02d","description":"seeded","price":1.00,"stockQuantity":%d}`, i, i)
		resp, _ := createWidget(t, srv, body)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := doRequest(t, http.MethodGet, srv.URL+"/api/products?page=2&pageSize=10", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var page query.ProductPage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))

	assert.Len(t, page.Items, 5)
	assert.EqualValues(t, 15, page.TotalItems)
	assert.Equal(t, 2, page.PageNumber)
	assert.Equal(t, 10, page.PageSize)
	assert.Equal(t, 2, page.TotalPages)
}

func TestTotalProductsGaugeSeededAtConstruction(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	for i := 0; i < 3; i++ {
		p := &domain.Product{Name: fmt.Sprintf("existing-%d", i), Description: "seeded", SKU: domain.GenerateSKU()}
		p.Normalize()
		require.NoError(t, repo.Create(context.Background(), p))
	}

	handler := NewProductHandlerWithRegistry(repo, prometheus.NewRegistry())

	// the gauge reflects pre-existing rows before any write goes through
	assert.Equal(t, 3.0, testutil.ToFloat64(handler.totalProducts))
}

func TestListProductsDefaultsAndEmptyPage(t *testing.T) {
	srv := newTestServer(t)
	_, _ = createWidget(t, srv, widgetJSON)

	resp := doRequest(t, http.MethodGet, srv.URL+"/api/products", "")
	var page query.ProductPage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	assert.Equal(t, 1, page.PageNumber)
	assert.Equal(t, 10, page.PageSize)
	assert.Len(t, page.Items, 1)

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/products?page=9&pageSize=10", "")
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.EqualValues(t, 1, page.TotalItems)
}
