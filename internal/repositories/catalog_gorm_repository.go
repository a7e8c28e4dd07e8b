package repositories

import (
	"fmt"

	"telemax/internal/models"

	"gorm.io/gorm"
)

// priceRow is the projection used by the batched price lookups.
type priceRow struct {
	ID    uint
	Price float64
}

// GORMCatalogRepository is a GORM implementation of CatalogRepository.
type GORMCatalogRepository struct {
	db *gorm.DB
}

// NewGORMCatalogRepository creates a new instance of GORMCatalogRepository.
func NewGORMCatalogRepository(db *gorm.DB) *GORMCatalogRepository {
	return &GORMCatalogRepository{
		db: db,
	}
}

// GetAllProducts retrieves all products, newest first.
func (r *GORMCatalogRepository) GetAllProducts() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("id DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetProductByID retrieves a single product by its ID.
func (r *GORMCatalogRepository) GetProductByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product with ID %d not found", id)
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// CreateProduct creates a new product.
func (r *GORMCatalogRepository) CreateProduct(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// UpdateProduct updates an existing product.
func (r *GORMCatalogRepository) UpdateProduct(product *models.Product) error {
	res := r.db.Save(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %d not found for update", product.ID)
	}
	return nil
}

// DeleteProduct deletes a product by its ID.
func (r *GORMCatalogRepository) DeleteProduct(id uint) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %d not found for deletion", id)
	}
	return nil
}

// GetParts retrieves parts, optionally filtered by type.
func (r *GORMCatalogRepository) GetParts(partType string) ([]models.Part, error) {
	var parts []models.Part
	q := r.db.Order("type, id")
	if partType != "" {
		q = q.Where("type = ?", partType)
	}
	if err := q.Find(&parts).Error; err != nil {
		return nil, fmt.Errorf("failed to get parts: %w", err)
	}
	return parts, nil
}

// GetPartByID retrieves a single part by its ID.
func (r *GORMCatalogRepository) GetPartByID(id uint) (*models.Part, error) {
	var part models.Part
	if err := r.db.First(&part, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("part with ID %d not found", id)
		}
		return nil, fmt.Errorf("failed to get part by ID %d: %w", id, err)
	}
	return &part, nil
}

// CreatePart creates a new part.
func (r *GORMCatalogRepository) CreatePart(part *models.Part) error {
	if err := r.db.Create(part).Error; err != nil {
		return fmt.Errorf("failed to create part: %w", err)
	}
	return nil
}

// UpdatePart updates an existing part.
func (r *GORMCatalogRepository) UpdatePart(part *models.Part) error {
	res := r.db.Save(part)
	if res.Error != nil {
		return fmt.Errorf("failed to update part: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("part with ID %d not found for update", part.ID)
	}
	return nil
}

// DeletePart deletes a part by its ID.
func (r *GORMCatalogRepository) DeletePart(id uint) error {
	res := r.db.Delete(&models.Part{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete part: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("part with ID %d not found for deletion", id)
	}
	return nil
}

// ProductPrices resolves the unit prices for a set of product IDs with a
// single batched query. Unknown IDs are simply absent from the result.
func (r *GORMCatalogRepository) ProductPrices(ids []uint) (map[uint]float64, error) {
	return r.pricesFrom(&models.Product{}, ids)
}

// PartPrices resolves the unit prices for a set of part IDs with a single
// batched query.
func (r *GORMCatalogRepository) PartPrices(ids []uint) (map[uint]float64, error) {
	return r.pricesFrom(&models.Part{}, ids)
}

func (r *GORMCatalogRepository) pricesFrom(model interface{}, ids []uint) (map[uint]float64, error) {
	prices := make(map[uint]float64, len(ids))
	if len(ids) == 0 {
		return prices, nil
	}

	var rows []priceRow
	if err := r.db.Model(model).Select("id", "price").Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to look up prices: %w", err)
	}
	for _, row := range rows {
		prices[row.ID] = row.Price
	}
	return prices, nil
}
