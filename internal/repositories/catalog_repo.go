package repositories

import (
	"telemax/internal/models"
)

// CatalogRepository defines the interface for product and part data access,
// including the batched price lookups checkout depends on.
type CatalogRepository interface {
	GetAllProducts() ([]models.Product, error)
	GetProductByID(id uint) (*models.Product, error)
	CreateProduct(product *models.Product) error
	UpdateProduct(product *models.Product) error
	DeleteProduct(id uint) error

	// GetParts returns parts, optionally filtered by type ("" for all).
	GetParts(partType string) ([]models.Part, error)
	GetPartByID(id uint) (*models.Part, error)
	CreatePart(part *models.Part) error
	UpdatePart(part *models.Part) error
	DeletePart(id uint) error

	// ProductPrices resolves unit prices for a set of product IDs in a
	// single query. IDs not present in the catalog are absent from the
	// returned map. An empty ID set issues no query.
	ProductPrices(ids []uint) (map[uint]float64, error)
	// PartPrices is ProductPrices for parts.
	PartPrices(ids []uint) (map[uint]float64, error)
}
