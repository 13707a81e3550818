package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"storefront/internal/models"
)

// MemoryCartRepository is an in-memory implementation of CartRepository.
type MemoryCartRepository struct {
	items  map[int]models.CartItem
	nextID int
	mu     sync.RWMutex
}

// NewMemoryCartRepository creates a new instance of MemoryCartRepository.
func NewMemoryCartRepository() *MemoryCartRepository {
	return &MemoryCartRepository{
		items:  make(map[int]models.CartItem),
		nextID: 1,
	}
}

// GetByUser returns a user's cart rows in insertion order.
func (r *MemoryCartRepository) GetByUser(userID int) ([]models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []models.CartItem
	for _, item := range r.items {
		if item.UserID == userID {
			list = append(list, item)
		}
	}
	if list == nil {
		list = []models.CartItem{}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// GetByID returns a cart row by its ID.
func (r *MemoryCartRepository) GetByID(id int) (*models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("cart item %d: %w", id, ErrNotFound)
	}
	return &item, nil
}

// Add inserts a cart row, or increments the existing row for the same
// (user, product) pair. The scan and the write happen under one lock, so
// concurrent adds cannot produce two rows for the same pair.
func (r *MemoryCartRepository) Add(userID, productID, quantity int) (*models.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.items {
		if item.UserID == userID && item.ProductID == productID {
			item.Quantity += quantity
			r.items[id] = item
			return &item, nil
		}
	}

	item := models.CartItem{
		ID:        r.nextID,
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: time.Now(),
	}
	r.nextID++
	r.items[item.ID] = item
	return &item, nil
}

// UpdateQuantity overwrites a cart row's quantity.
func (r *MemoryCartRepository) UpdateQuantity(id, quantity int) (*models.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("cart item %d: %w", id, ErrNotFound)
	}
	item.Quantity = quantity
	r.items[id] = item
	return &item, nil
}

// Remove deletes a cart row by its ID.
func (r *MemoryCartRepository) Remove(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("cart item %d: %w", id, ErrNotFound)
	}
	delete(r.items, id)
	return nil
}

// ClearUser removes all of a user's cart rows.
func (r *MemoryCartRepository) ClearUser(userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.items {
		if item.UserID == userID {
			delete(r.items, id)
		}
	}
	return nil
}
