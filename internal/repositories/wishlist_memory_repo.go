package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"storefront/internal/models"
)

// MemoryWishlistRepository is an in-memory implementation of WishlistRepository.
type MemoryWishlistRepository struct {
	items  map[int]models.WishlistItem
	nextID int
	mu     sync.RWMutex
}

// NewMemoryWishlistRepository creates a new instance of MemoryWishlistRepository.
func NewMemoryWishlistRepository() *MemoryWishlistRepository {
	return &MemoryWishlistRepository{
		items:  make(map[int]models.WishlistItem),
		nextID: 1,
	}
}

// GetByUser returns a user's wishlist rows in insertion order.
func (r *MemoryWishlistRepository) GetByUser(userID int) ([]models.WishlistItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := []models.WishlistItem{}
	for _, item := range r.items {
		if item.UserID == userID {
			list = append(list, item)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// Add inserts a wishlist row unless one already exists for the
// (user, product) pair. The existing row is returned unchanged, making the
// operation idempotent.
func (r *MemoryWishlistRepository) Add(userID, productID int) (*models.WishlistItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.items {
		if item.UserID == userID && item.ProductID == productID {
			return &item, nil
		}
	}

	item := models.WishlistItem{
		ID:        r.nextID,
		UserID:    userID,
		ProductID: productID,
		CreatedAt: time.Now(),
	}
	r.nextID++
	r.items[item.ID] = item
	return &item, nil
}

// RemoveByProduct deletes the row for the given (user, product) pair.
func (r *MemoryWishlistRepository) RemoveByProduct(userID, productID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.items {
		if item.UserID == userID && item.ProductID == productID {
			delete(r.items, id)
			return nil
		}
	}
	return fmt.Errorf("wishlist item for product %d: %w", productID, ErrNotFound)
}
