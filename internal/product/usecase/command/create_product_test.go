package command

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/product-catalog/internal/product/domain"
	"github.com/tair/product-catalog/internal/product/repository"
)

func widgetCommand() CreateProductCommand {
	return CreateProductCommand{
		Name:           "Widget",
		Description:    "A widget",
		Price:          decimal.RequireFromString("9.99"),
		StockQuantity:  5,
		ReorderPoint:   2,
		Brand:          "Acme",
		Manufacturer:   "Acme Co",
		Category:       "Other",
		SubCategory:    "",
		Origin:         "US",
		Tags:           "a,b",
		WeightInKg:     decimal.NewFromInt(1),
		Length:         decimal.NewFromInt(1),
		Width:          decimal.NewFromInt(1),
		Height:         decimal.NewFromInt(1),
		Materials:      "steel",
		TechnicalSpecs: "spec1\nspec2",
	}
}

func TestCreateProduct(t *testing.T) {
	handler := NewCreateProductHandler(repository.NewMemoryProductRepository())

	product, err := handler.Handle(context.Background(), widgetCommand())
	require.NoError(t, err)

	assert.NotZero(t, product.ID)
	assert.Regexp(t, `^SKU\d{4}$`, product.SKU)
	assert.Equal(t, domain.StatusStockAdequate, product.ReorderStatus)
	assert.Equal(t, "Widget", product.Name)
	assert.Equal(t, "a,b", product.Tags)
	assert.Equal(t, "spec1\nspec2", product.TechnicalSpecs)
}

func TestCreateProductKeepsSuppliedSKU(t *testing.T) {
	handler := NewCreateProductHandler(repository.NewMemoryProductRepository())

	cmd := widgetCommand()
	cmd.SKU = "WID-001"

	product, err := handler.Handle(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, "WID-001", product.SKU)
}

func TestCreateProductDerivesOutOfStock(t *testing.T) {
	handler := NewCreateProductHandler(repository.NewMemoryProductRepository())

	cmd := widgetCommand()
	cmd.StockQuantity = 0

	product, err := handler.Handle(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOutOfStock, product.ReorderStatus)
}

func TestCreateProductValidation(t *testing.T) {
	handler := NewCreateProductHandler(repository.NewMemoryProductRepository())

	missingName := widgetCommand()
	missingName.Name = ""
	_, err := handler.Handle(context.Background(), missingName)
	assert.ErrorIs(t, err, domain.ErrInvalid)

	missingDescription := widgetCommand()
	missingDescription.Description = ""
	_, err = handler.Handle(context.Background(), missingDescription)
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestUpdateProductReplacesAndRederives(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	created, err := NewCreateProductHandler(repo).Handle(context.Background(), widgetCommand())
	require.NoError(t, err)

	handler := NewUpdateProductHandler(repo)

	cmd := UpdateProductCommand{
		ID:            created.ID,
		Name:          "Widget v2",
		Description:   "A better widget",
		Price:         decimal.RequireFromString("19.99"),
		SKU:           created.SKU,
		StockQuantity: 0,
	}

	updated, err := handler.Handle(context.Background(), cmd)
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Widget v2", updated.Name)
	assert.Equal(t, domain.StatusOutOfStock, updated.ReorderStatus)
}

func TestUpdateProductNotFound(t *testing.T) {
	handler := NewUpdateProductHandler(repository.NewMemoryProductRepository())

	cmd := UpdateProductCommand{ID: 42, Name: "x", Description: "y"}
	_, err := handler.Handle(context.Background(), cmd)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateProductRegeneratesEmptySKU(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	created, err := NewCreateProductHandler(repo).Handle(context.Background(), widgetCommand())
	require.NoError(t, err)

	cmd := UpdateProductCommand{ID: created.ID, Name: "Widget", Description: "A widget"}
	updated, err := NewUpdateProductHandler(repo).Handle(context.Background(), cmd)
	require.NoError(t, err)
	assert.Regexp(t, `^SKU\d{4}$`, updated.SKU)
}
