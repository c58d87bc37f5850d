package service

import (
	"strings"

	"github.com/abhishek8094/storefront/internal/domain"
)

// MediaResolver shapes image URLs against a base URL resolved once from
// configuration at process start. Absolute URLs pass through unchanged;
// relative paths are prefixed with the base.
type MediaResolver struct {
	baseURL string
}

// NewMediaResolver creates a resolver for the given base URL. A trailing
// slash on the base is stripped.
func NewMediaResolver(baseURL string) *MediaResolver {
	return &MediaResolver{baseURL: strings.TrimRight(baseURL, "/")}
}

// Resolve returns the full URL for the given image reference.
func (m *MediaResolver) Resolve(ref string) string {
	if ref == "" || m.baseURL == "" {
		return ref
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return m.baseURL + "/" + strings.TrimLeft(ref, "/")
}

// ResolveImages rewrites every image URL in the sequence in place.
func (m *MediaResolver) ResolveImages(images []domain.Image) {
	for i := range images {
		images[i].URL = m.Resolve(images[i].URL)
	}
}
