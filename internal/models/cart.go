package models

import "time"

// CartItem is a row in a user's cart. At most one row exists per
// (user, product) pair; adding the same product again increments Quantity.
type CartItem struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	ProductID int       `json:"productId"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
}

// CartItemWithProduct is a cart row joined with its product record.
type CartItemWithProduct struct {
	CartItem
	Product Product `json:"product"`
}
