package query

import (
	"context"
	"fmt"

	"github.com/tair/product-catalog/internal/product/domain"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// ListProductsQuery represents the query for one page of the catalog
type ListProductsQuery struct {
	Page     int
	PageSize int
}

// ProductPage is the pagination envelope returned to clients
type ProductPage struct {
	Items      []domain.Product `json:"items"`
	TotalItems int64            `json:"totalItems"`
	PageNumber int              `json:"pageNumber"`
	PageSize   int              `json:"pageSize"`
	TotalPages int              `json:"totalPages"`
}

// ListProductsHandler handles list products query
type ListProductsHandler struct {
	repo domain.ProductRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle executes the list products query. Page and page size below 1 fall
// back to the defaults; a page past the end returns an empty item list
// rather than an error.
func (h *ListProductsHandler) Handle(ctx context.Context, q ListProductsQuery) (*ProductPage, error) {
	if q.Page < 1 {
		q.Page = defaultPage
	}
	if q.PageSize < 1 {
		q.PageSize = defaultPageSize
	}

	totalItems, err := h.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	offset := (q.Page - 1) * q.PageSize
	items, err := h.repo.FindAll(ctx, q.PageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if items == nil {
		items = []domain.Product{}
	}

	totalPages := int((totalItems + int64(q.PageSize) - 1) / int64(q.PageSize))

	return &ProductPage{
		Items:      items,
		TotalItems: totalItems,
		PageNumber: q.Page,
		PageSize:   q.PageSize,
		TotalPages: totalPages,
	}, nil
}
