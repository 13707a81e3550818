package models

// Category groups products under a unique slug.
type Category struct {
	ID          int     `json:"id"`
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Slug        string  `json:"slug" validate:"required,min=2,max=100"`
	Description *string `json:"description"`
}

// CategoryUpdate carries a partial category update. Nil fields are retained.
type CategoryUpdate struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
}
