package command

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tair/product-catalog/internal/product/domain"
)

// CreateProductCommand represents the command to create a new product.
// It deliberately carries no reorder status: that field is derived, never
// accepted from a caller.
type CreateProductCommand struct {
	Name           string
	Description    string
	Price          decimal.Decimal
	SKU            string
	StockQuantity  int
	ReorderPoint   int
	Brand          string
	Manufacturer   string
	Category       string
	SubCategory    string
	Origin         string
	Tags           string
	WeightInKg     decimal.Decimal
	Length         decimal.Decimal
	Width          decimal.Decimal
	Height         decimal.Decimal
	Materials      string
	TechnicalSpecs string
}

// CreateProductHandler handles product creation command
type CreateProductHandler struct {
	repo domain.ProductRepository
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(repo domain.ProductRepository) *CreateProductHandler {
	return &CreateProductHandler{repo: repo}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("%w: product name is required", domain.ErrInvalid)
	}
	if cmd.Description == "" {
		return nil, fmt.Errorf("%w: product description is required", domain.ErrInvalid)
	}

	sku := cmd.SKU
	if sku == "" {
		sku = domain.GenerateSKU()
	}

	product := &domain.Product{
		Name:           cmd.Name,
		Description:    cmd.Description,
		Price:          cmd.Price,
		SKU:            sku,
		StockQuantity:  cmd.StockQuantity,
		ReorderPoint:   cmd.ReorderPoint,
		Brand:          cmd.Brand,
		Manufacturer:   cmd.Manufacturer,
		Category:       cmd.Category,
		SubCategory:    cmd.SubCategory,
		Origin:         cmd.Origin,
		Tags:           cmd.Tags,
		WeightInKg:     cmd.WeightInKg,
		Length:         cmd.Length,
		Width:          cmd.Width,
		Height:         cmd.Height,
		Materials:      cmd.Materials,
		TechnicalSpecs: cmd.TechnicalSpecs,
	}
	product.Normalize()

	if err := h.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}
