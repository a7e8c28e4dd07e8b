package services

import (
	"fmt"

	"telemax/internal/models"
	"telemax/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// CatalogService handles business logic for products and parts.
type CatalogService struct {
	repo     repositories.CatalogRepository
	validate *validator.Validate
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repositories.CatalogRepository) *CatalogService {
	return &CatalogService{
		repo:     repo,
		validate: validator.New(),
	}
}

// GetAllProducts retrieves all products.
func (s *CatalogService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAllProducts()
}

// GetProductByID retrieves a single product by its ID.
func (s *CatalogService) GetProductByID(id uint) (*models.Product, error) {
	return s.repo.GetProductByID(id)
}

// CreateProduct validates and creates a new product.
func (s *CatalogService) CreateProduct(product *models.Product) error {
	if err := s.validate.Struct(product); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.repo.CreateProduct(product)
}

// UpdateProduct validates and updates an existing product.
func (s *CatalogService) UpdateProduct(product *models.Product) error {
	if err := s.validate.Struct(product); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.repo.UpdateProduct(product)
}

// DeleteProduct deletes a product by its ID.
func (s *CatalogService) DeleteProduct(id uint) error {
	return s.repo.DeleteProduct(id)
}

// GetParts retrieves parts, optionally filtered by type.
func (s *CatalogService) GetParts(partType string) ([]models.Part, error) {
	if partType != "" {
		switch partType {
		case models.PartTypeStarter, models.PartTypeRing, models.PartTypeTop:
		default:
			return nil, fmt.Errorf("%w: invalid part type: %s", ErrInvalidInput, partType)
		}
	}
	return s.repo.GetParts(partType)
}

// GetPartByID retrieves a single part by its ID.
func (s *CatalogService) GetPartByID(id uint) (*models.Part, error) {
	return s.repo.GetPartByID(id)
}

// CreatePart validates and creates a new part.
func (s *CatalogService) CreatePart(part *models.Part) error {
	if err := s.validate.Struct(part); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.repo.CreatePart(part)
}

// UpdatePart validates and updates an existing part.
func (s *CatalogService) UpdatePart(part *models.Part) error {
	if err := s.validate.Struct(part); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.repo.UpdatePart(part)
}

// DeletePart deletes a part by its ID.
func (s *CatalogService) DeletePart(id uint) error {
	return s.repo.DeletePart(id)
}
