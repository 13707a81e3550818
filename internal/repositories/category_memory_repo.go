package repositories

import (
	"fmt"
	"sort"
	"sync"

	"storefront/internal/models"
)

// MemoryCategoryRepository is an in-memory implementation of CategoryRepository.
type MemoryCategoryRepository struct {
	categories map[int]models.Category
	nextID     int
	mu         sync.RWMutex
}

// NewMemoryCategoryRepository creates a new instance of MemoryCategoryRepository.
func NewMemoryCategoryRepository() *MemoryCategoryRepository {
	return &MemoryCategoryRepository{
		categories: make(map[int]models.Category),
		nextID:     1,
	}
}

// GetAll returns all categories in insertion order.
func (r *MemoryCategoryRepository) GetAll() ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Category, 0, len(r.categories))
	for _, c := range r.categories {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// GetByID returns a category by its ID.
func (r *MemoryCategoryRepository) GetByID(id int) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, ok := r.categories[id]
	if !ok {
		return nil, fmt.Errorf("category %d: %w", id, ErrNotFound)
	}
	return &category, nil
}

// Create adds a new category.
func (r *MemoryCategoryRepository) Create(category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	category.ID = r.nextID
	r.nextID++
	r.categories[category.ID] = *category
	return nil
}

// Update merges the provided fields into an existing category.
func (r *MemoryCategoryRepository) Update(id int, updates models.CategoryUpdate) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	category, ok := r.categories[id]
	if !ok {
		return nil, fmt.Errorf("category %d: %w", id, ErrNotFound)
	}
	if updates.Name != nil {
		category.Name = *updates.Name
	}
	if updates.Slug != nil {
		category.Slug = *updates.Slug
	}
	if updates.Description != nil {
		category.Description = updates.Description
	}
	r.categories[id] = category
	return &category, nil
}

// Delete removes a category by its ID.
func (r *MemoryCategoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[id]; !ok {
		return fmt.Errorf("category %d: %w", id, ErrNotFound)
	}
	delete(r.categories, id)
	return nil
}
