package repositories

import "storefront/internal/models"

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// GetAll returns active products only, optionally filtered by an exact
	// category match. Results are in insertion order.
	GetAll(categoryID *int) ([]models.Product, error)
	// GetByID returns the product regardless of its active flag.
	GetByID(id int) (*models.Product, error)
	Create(product *models.Product) error
	Update(id int, updates models.ProductUpdate) (*models.Product, error)
	Delete(id int) error
	// Search matches the query case-insensitively against name or
	// description of active products. No ranking is applied.
	Search(query string) ([]models.Product, error)
}
