package repositories

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"storefront/internal/models"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
type MemoryProductRepository struct {
	products map[int]models.Product
	nextID   int
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[int]models.Product),
		nextID:   1,
	}
}

// GetAll returns active products in insertion order, optionally filtered by
// an exact category match. The filter is not inherited by anything; there is
// no category hierarchy.
func (r *MemoryProductRepository) GetAll(categoryID *int) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if !p.IsActive {
			continue
		}
		if categoryID != nil && (p.CategoryID == nil || *p.CategoryID != *categoryID) {
			continue
		}
		list = append(list, p)
	}
	sortProducts(list)
	return list, nil
}

// GetByID returns a product by its ID, active or not.
func (r *MemoryProductRepository) GetByID(id int) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return &product, nil
}

// Create adds a new product and stamps its creation time.
func (r *MemoryProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = r.nextID
	r.nextID++
	product.CreatedAt = time.Now()
	r.products[product.ID] = *product
	return nil
}

// Update merges the provided fields into an existing product.
func (r *MemoryProductRepository) Update(id int, updates models.ProductUpdate) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	if updates.Name != nil {
		product.Name = *updates.Name
	}
	if updates.Description != nil {
		product.Description = updates.Description
	}
	if updates.Price != nil {
		product.Price = *updates.Price
	}
	if updates.Stock != nil {
		product.Stock = *updates.Stock
	}
	if updates.CategoryID != nil {
		product.CategoryID = updates.CategoryID
	}
	if updates.ImageURL != nil {
		product.ImageURL = updates.ImageURL
	}
	if updates.IsActive != nil {
		product.IsActive = *updates.IsActive
	}
	r.products[id] = product
	return &product, nil
}

// Delete removes a product by its ID. This is a hard delete; rows in carts,
// wishlists and orders that still reference the ID become dangling and are
// dropped from joined views by the services.
func (r *MemoryProductRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	delete(r.products, id)
	return nil
}

// Search returns active products whose name or description contains the
// query, case-insensitively, in insertion order.
func (r *MemoryProductRepository) Search(query string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(query)
	var list []models.Product
	for _, p := range r.products {
		if !p.IsActive {
			continue
		}
		if strings.Contains(strings.ToLower(p.Name), q) ||
			(p.Description != nil && strings.Contains(strings.ToLower(*p.Description), q)) {
			list = append(list, p)
		}
	}
	if list == nil {
		list = []models.Product{}
	}
	sortProducts(list)
	return list, nil
}

// IDs are monotonic, so ascending ID order equals insertion order.
func sortProducts(list []models.Product) {
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
}
