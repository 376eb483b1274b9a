package command

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tair/product-catalog/internal/product/domain"
)

// UpdateProductCommand represents the command to replace a product. Like
// create, it carries no reorder status; the stored value is recomputed from
// the new stock quantity.
type UpdateProductCommand struct {
	ID             uint
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

// UpdateProductHandler handles product update command
type UpdateProductHandler struct {
	repo domain.ProductRepository
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(repo domain.ProductRepository) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo}
}

// Handle executes the update product command as a full replace
func (h *UpdateProductHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*domain.Product, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("%w: product name is required", domain.ErrInvalid)
	}
	if cmd.Description == "" {
		return nil, fmt.Errorf("%w: product description is required", domain.ErrInvalid)
	}

	product, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	sku := cmd.SKU
	if sku == "" {
		sku = domain.GenerateSKU()
	}

	product.Name = cmd.Name
	product.Description = cmd.Description
	product.Price = cmd.Price
	product.SKU = sku
	product.StockQuantity = cmd.StockQuantity
	product.ReorderPoint = cmd.ReorderPoint
	product.Brand = cmd.Brand
	product.Manufacturer = cmd.Manufacturer
	product.Category = cmd.Category
	product.SubCategory = cmd.SubCategory
	product.Origin = cmd.Origin
	product.Tags = cmd.Tags
	product.WeightInKg = cmd.WeightInKg
	product.Length = cmd.Length
	product.Width = cmd.Width
	product.Height = cmd.Height
	product.Materials = cmd.Materials
	product.TechnicalSpecs = cmd.TechnicalSpecs
	product.Normalize()

	if err := h.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}
