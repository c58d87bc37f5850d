package domain

import "time"

// Collection position constants. Each position is a storefront placement
// for a curated image set.
const (
	CollectionPositionCarousel = "carousel"
	CollectionPositionTrending = "trending"
	CollectionPositionExplore  = "explore"
)

// Collection represents a curated image collection shown at a storefront
// position. Images form an ordered sequence; each is independently
// addressable and deletable by its id.
type Collection struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Position  string    `json:"position"`
	Images    []Image   `json:"images"`
	SortOrder int       `json:"sort_order"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RemoveImage deletes the image with the given id from the sequence,
// preserving the order of the rest. Returns false if no image matched.
func (c *Collection) RemoveImage(imageID string) bool {
	for i := range c.Images {
		if c.Images[i].ID == imageID {
			c.Images = append(c.Images[:i], c.Images[i+1:]...)
			return true
		}
	}
	return false
}

// ValidCollectionPositions returns the set of valid collection positions.
func ValidCollectionPositions() []string {
	return []string{
		CollectionPositionCarousel,
		CollectionPositionTrending,
		CollectionPositionExplore,
	}
}

// IsValidCollectionPosition checks whether the given position string is valid.
func IsValidCollectionPosition(position string) bool {
	for _, p := range ValidCollectionPositions() {
		if p == position {
			return true
		}
	}
	return false
}
