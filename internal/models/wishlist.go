package models

import "time"

// WishlistItem marks a product as wished by a user. At most one row exists
// per (user, product) pair; adding an existing pair is a no-op.
type WishlistItem struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	ProductID int       `json:"productId"`
	CreatedAt time.Time `json:"createdAt"`
}

// WishlistItemWithProduct is a wishlist row joined with its product record.
type WishlistItemWithProduct struct {
	WishlistItem
	Product Product `json:"product"`
}
