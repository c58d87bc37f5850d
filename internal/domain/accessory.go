package domain

import "time"

// Accessory represents a catalog accessory. Accessories share the product
// shape but live in their own collection and are not orderable line items.
type Accessory struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Price       int64     `json:"price"`
	CategoryID  *string   `json:"category_id,omitempty"`
	Images      []Image   `json:"images"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
