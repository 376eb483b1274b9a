package product

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/product-catalog/internal/product/domain"
	"github.com/tair/product-catalog/internal/product/repository"
)

// ProvideProductRepository provides the product repository wrapped with the
// tracing decorator
func ProvideProductRepository(db *gorm.DB) domain.ProductRepository {
	return repository.NewTracingProductRepository(repository.NewGormProductRepository(db))
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideProductRepository,
)
