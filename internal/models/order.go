package models

import "time"

// Order status values. Transitions between them are not validated; an admin
// may overwrite any status with any other.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// OrderStatuses is the fixed set of accepted order statuses.
var OrderStatuses = map[string]bool{
	OrderStatusPending:    true,
	OrderStatusProcessing: true,
	OrderStatusShipped:    true,
	OrderStatusCompleted:  true,
	OrderStatusCancelled:  true,
}

// Order represents a customer order. Total is a decimal string computed from
// the item price snapshots at creation time.
type Order struct {
	ID              int       `json:"id"`
	UserID          int       `json:"userId"`
	Total           string    `json:"total"`
	Status          string    `json:"status"`
	ShippingAddress string    `json:"shippingAddress"`
	PaymentMethod   string    `json:"paymentMethod"`
	CreatedAt       time.Time `json:"createdAt"`
}

// OrderItem is a single line of an order. Price is the unit price snapshot
// taken when the order was created, decoupled from the live product price.
type OrderItem struct {
	ID        int    `json:"id"`
	OrderID   int    `json:"orderId"`
	ProductID int    `json:"productId"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
}

// OrderItemWithProduct is an order line joined with its product record.
type OrderItemWithProduct struct {
	OrderItem
	Product Product `json:"product"`
}

// OrderWithItems is an order joined with its lines and their products.
type OrderWithItems struct {
	Order
	Items []OrderItemWithProduct `json:"items"`
}
