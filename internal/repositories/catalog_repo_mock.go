package repositories

import (
	"fmt"
	"sync"

	"telemax/internal/models"
)

// MockCatalogRepository is an in-memory implementation of CatalogRepository.
type MockCatalogRepository struct {
	products   map[uint]models.Product
	parts      map[uint]models.Part
	nextProdID uint
	nextPartID uint
	mu         sync.RWMutex
}

// NewMockCatalogRepository creates a new instance of MockCatalogRepository.
func NewMockCatalogRepository() *MockCatalogRepository {
	return &MockCatalogRepository{
		products:   make(map[uint]models.Product),
		parts:      make(map[uint]models.Part),
		nextProdID: 1,
		nextPartID: 1,
	}
}

// GetAllProducts returns all products.
func (r *MockCatalogRepository) GetAllProducts() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	return productList, nil
}

// GetProductByID returns a product by its ID.
func (r *MockCatalogRepository) GetProductByID(id uint) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %d not found", id)
	}
	return &product, nil
}

// CreateProduct adds a new product.
func (r *MockCatalogRepository) CreateProduct(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == 0 {
		product.ID = r.nextProdID
		r.nextProdID++
	} else if product.ID >= r.nextProdID {
		r.nextProdID = product.ID + 1
	}
	r.products[product.ID] = *product
	return nil
}

// UpdateProduct modifies an existing product.
func (r *MockCatalogRepository) UpdateProduct(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[product.ID]
	if !ok {
		return fmt.Errorf("product with ID %d not found for update", product.ID)
	}
	r.products[product.ID] = *product
	return nil
}

// DeleteProduct removes a product by its ID.
func (r *MockCatalogRepository) DeleteProduct(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product with ID %d not found for deletion", id)
	}
	delete(r.products, id)
	return nil
}

// GetParts returns parts, optionally filtered by type.
func (r *MockCatalogRepository) GetParts(partType string) ([]models.Part, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	partList := make([]models.Part, 0, len(r.parts))
	for _, p := range r.parts {
		if partType == "" || p.Type == partType {
			partList = append(partList, p)
		}
	}
	return partList, nil
}

// GetPartByID returns a part by its ID.
func (r *MockCatalogRepository) GetPartByID(id uint) (*models.Part, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	part, ok := r.parts[id]
	if !ok {
		return nil, fmt.Errorf("part with ID %d not found", id)
	}
	return &part, nil
}

// CreatePart adds a new part.
func (r *MockCatalogRepository) CreatePart(part *models.Part) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if part.ID == 0 {
		part.ID = r.nextPartID
		r.nextPartID++
	} else if part.ID >= r.nextPartID {
		r.nextPartID = part.ID + 1
	}
	r.parts[part.ID] = *part
	return nil
}

// UpdatePart modifies an existing part.
func (r *MockCatalogRepository) UpdatePart(part *models.Part) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.parts[part.ID]
	if !ok {
		return fmt.Errorf("part with ID %d not found for update", part.ID)
	}
	r.parts[part.ID] = *part
	return nil
}

// DeletePart removes a part by its ID.
func (r *MockCatalogRepository) DeletePart(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.parts[id]
	if !ok {
		return fmt.Errorf("part with ID %d not found for deletion", id)
	}
	delete(r.parts, id)
	return nil
}

// ProductPrices resolves prices for the given product IDs.
func (r *MockCatalogRepository) ProductPrices(ids []uint) (map[uint]float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	prices := make(map[uint]float64, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			prices[id] = p.Price
		}
	}
	return prices, nil
}

// PartPrices resolves prices for the given part IDs.
func (r *MockCatalogRepository) PartPrices(ids []uint) (map[uint]float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	prices := make(map[uint]float64, len(ids))
	for _, id := range ids {
		if p, ok := r.parts[id]; ok {
			prices[id] = p.Price
		}
	}
	return prices, nil
}
