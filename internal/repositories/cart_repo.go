package repositories

import "storefront/internal/models"

// CartRepository defines the interface for cart data access.
type CartRepository interface {
	GetByUser(userID int) ([]models.CartItem, error)
	GetByID(id int) (*models.CartItem, error)
	// Add inserts a cart row, or increments the quantity of the existing row
	// for the same (user, product) pair. The returned row reflects the
	// stored state either way.
	Add(userID, productID, quantity int) (*models.CartItem, error)
	// UpdateQuantity overwrites the quantity outright. Callers apply the
	// "non-positive means remove" policy before calling.
	UpdateQuantity(id, quantity int) (*models.CartItem, error)
	Remove(id int) error
	ClearUser(userID int) error
}
