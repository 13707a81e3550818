package repositories

import "storefront/internal/models"

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByUser(userID int) ([]models.Order, error)
	GetByID(id int) (*models.Order, error)
	GetItems(orderID int) ([]models.OrderItem, error)
	// Create persists the order and all of its items as a unit; no partial
	// order is ever observable. Status defaults to pending when empty.
	Create(order *models.Order, items []models.OrderItem) error
	// UpdateStatus overwrites the status unconditionally; no transition
	// validation is performed. Orders are never deleted.
	UpdateStatus(id int, status string) (*models.Order, error)
}
