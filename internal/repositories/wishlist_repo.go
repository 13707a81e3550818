package repositories

import "storefront/internal/models"

// WishlistRepository defines the interface for wishlist data access.
type WishlistRepository interface {
	GetByUser(userID int) ([]models.WishlistItem, error)
	// Add inserts a wishlist row unless one already exists for the
	// (user, product) pair, in which case the existing row is returned.
	Add(userID, productID int) (*models.WishlistItem, error)
	RemoveByProduct(userID, productID int) error
}
