package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// ErrInvalidPrice is returned when a product price is not a valid decimal
// string.
var ErrInvalidPrice = errors.New("invalid price")

// CatalogService handles business logic for categories and products.
type CatalogService struct {
	categoryRepo repositories.CategoryRepository
	productRepo  repositories.ProductRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(categoryRepo repositories.CategoryRepository, productRepo repositories.ProductRepository) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// GetCategories retrieves all categories.
func (s *CatalogService) GetCategories() ([]models.Category, error) {
	return s.categoryRepo.GetAll()
}

// CreateCategory creates a new category.
func (s *CatalogService) CreateCategory(category *models.Category) error {
	return s.categoryRepo.Create(category)
}

// UpdateCategory merges a partial update into an existing category.
func (s *CatalogService) UpdateCategory(id int, updates models.CategoryUpdate) (*models.Category, error) {
	return s.categoryRepo.Update(id, updates)
}

// DeleteCategory deletes a category by its ID.
func (s *CatalogService) DeleteCategory(id int) error {
	return s.categoryRepo.Delete(id)
}

// GetProducts retrieves active products, optionally filtered by category.
func (s *CatalogService) GetProducts(categoryID *int) ([]models.Product, error) {
	return s.productRepo.GetAll(categoryID)
}

// GetProduct retrieves a single product by its ID.
func (s *CatalogService) GetProduct(id int) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

// SearchProducts retrieves active products matching the query.
func (s *CatalogService) SearchProducts(query string) ([]models.Product, error) {
	return s.productRepo.Search(query)
}

// CreateProduct validates the price and creates the product. The active flag
// defaults to true unless explicitly set false; stock defaults to zero.
func (s *CatalogService) CreateProduct(product *models.Product, isActive *bool) error {
	if _, err := decimal.NewFromString(product.Price); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidPrice, product.Price)
	}
	product.IsActive = isActive == nil || *isActive
	return s.productRepo.Create(product)
}

// UpdateProduct merges a partial update into an existing product, validating
// the price when one is supplied.
func (s *CatalogService) UpdateProduct(id int, updates models.ProductUpdate) (*models.Product, error) {
	if updates.Price != nil {
		if _, err := decimal.NewFromString(*updates.Price); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPrice, *updates.Price)
		}
	}
	return s.productRepo.Update(id, updates)
}

// DeleteProduct deletes a product by its ID.
func (s *CatalogService) DeleteProduct(id int) error {
	return s.productRepo.Delete(id)
}
