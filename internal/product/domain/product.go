package domain

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/shopspring/decimal"
)

// Sentinel errors mapped to HTTP status codes at the delivery layer.
var (
	ErrNotFound = errors.New("product not found")
	ErrInvalid  = errors.New("invalid product")
)

// Reorder status values derived from the stock quantity.
const (
	StatusStockAdequate = "Stock Adequate"
	StatusOutOfStock    = "Out of Stock"
)

const skuPrefix = "SKU"

func init() {
	// Price and measurement columns are decimals but the API contract
	// serializes them as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product represents a catalog entry
type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"not null"`
	Description string          `json:"description" gorm:"not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(18,2);not null"`

	// Inventory
	SKU           string `json:"sku" gorm:"not null"`
	StockQuantity int    `json:"stockQuantity" gorm:"not null;default:0"`
	ReorderPoint  int    `json:"reorderPoint"`
	ReorderStatus string `json:"reorderStatus"`

	// Details
	Brand        string `json:"brand"`
	Manufacturer string `json:"manufacturer"`
	Category     string `json:"category"`
	SubCategory  string `json:"subCategory"`
	Origin       string `json:"origin"`
	Tags         string `json:"tags"`

	// Specifications
	WeightInKg     decimal.Decimal `json:"weightInKg" gorm:"type:decimal(18,2)"`
	Length         decimal.Decimal `json:"length" gorm:"type:decimal(18,2)"`
	Width          decimal.Decimal `json:"width" gorm:"type:decimal(18,2)"`
	Height         decimal.Decimal `json:"height" gorm:"type:decimal(18,2)"`
	Materials      string          `json:"materials"`
	TechnicalSpecs string          `json:"technicalSpecs"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// StockStatus derives the reorder status from a stock quantity. It is the
// single source of truth for the reorder_status column: the value is never
// taken from a caller, only recomputed here.
func StockStatus(quantity int) string {
	if quantity > 0 {
		return StatusStockAdequate
	}
	return StatusOutOfStock
}

// Normalize recomputes every derived field. Called on each write path so the
// stored reorder status cannot drift from the stock quantity.
func (p *Product) Normalize() {
	p.ReorderStatus = StockStatus(p.StockQuantity)
}

// GenerateSKU returns a SKU of the form "SKU" followed by four zero-padded
// digits. Uniqueness is not guaranteed.
func GenerateSKU() string {
	return fmt.Sprintf("%s%04d", skuPrefix, rand.Intn(10000))
}

// IsAvailable checks if the product is in stock
func (p *Product) IsAvailable() bool {
	return p.StockQuantity > 0
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uint) (*Product, error)
	FindAll(ctx context.Context, limit, offset int) ([]Product, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}
