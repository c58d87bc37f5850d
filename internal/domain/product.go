package domain

import "time"

// Product represents a catalog product. Price is the authoritative unit
// price in minor currency units; the order workflow reads it at creation
// time and copies it into the order line.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Price       int64     `json:"price"`
	CategoryID  *string   `json:"category_id,omitempty"`
	Size        string    `json:"size,omitempty"`
	Images      []Image   `json:"images"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Summary returns the compact product view embedded in expanded order
// responses. The first image is used when one exists.
func (p *Product) Summary() *ProductSummary {
	s := &ProductSummary{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price,
	}
	if len(p.Images) > 0 {
		img := p.Images[0]
		s.Image = &img
	}
	return s
}
