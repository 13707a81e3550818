package models

import "time"

// Product represents a product in the store. Price is kept as a decimal
// string to avoid float rounding on money values. IsActive gates listing:
// inactive products stay addressable by ID but disappear from catalog views.
type Product struct {
	ID          int       `json:"id"`
	Name        string    `json:"name" validate:"required,min=2,max=200"`
	Description *string   `json:"description"`
	Price       string    `json:"price" validate:"required"`
	Stock       int       `json:"stock" validate:"gte=0"`
	CategoryID  *int      `json:"categoryId"`
	ImageURL    *string   `json:"imageUrl"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProductUpdate carries a partial product update. Nil fields are retained.
type ProductUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *string `json:"price"`
	Stock       *int    `json:"stock"`
	CategoryID  *int    `json:"categoryId"`
	ImageURL    *string `json:"imageUrl"`
	IsActive    *bool   `json:"isActive"`
}
