package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeImagesCanonical(t *testing.T) {
	raw := []byte(`[{"id":"img-1","url":"https://cdn.example.com/a.jpg"},{"id":"img-2","url":"https://cdn.example.com/b.jpg"}]`)

	images, err := NormalizeImages(raw)
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, "img-1", images[0].ID)
	assert.Equal(t, "https://cdn.example.com/a.jpg", images[0].URL)
	assert.Equal(t, "img-2", images[1].ID)
}

func TestNormalizeImagesCanonicalMissingID(t *testing.T) {
	raw := []byte(`[{"url":"https://cdn.example.com/a.jpg"}]`)

	images, err := NormalizeImages(raw)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.NotEmpty(t, images[0].ID)
	assert.Equal(t, "https://cdn.example.com/a.jpg", images[0].URL)
}

func TestNormalizeImagesStringArray(t *testing.T) {
	raw := []byte(`["https://cdn.example.com/a.jpg","https://cdn.example.com/b.jpg"]`)

	images, err := NormalizeImages(raw)
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, "https://cdn.example.com/a.jpg", images[0].URL)
	assert.Equal(t, "https://cdn.example.com/b.jpg", images[1].URL)
	assert.NotEmpty(t, images[0].ID)
	assert.NotEqual(t, images[0].ID, images[1].ID)
}

func TestNormalizeImagesBareString(t *testing.T) {
	raw := []byte(`"https://cdn.example.com/a.jpg"`)

	images, err := NormalizeImages(raw)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "https://cdn.example.com/a.jpg", images[0].URL)
	assert.NotEmpty(t, images[0].ID)
}

func TestNormalizeImagesEmpty(t *testing.T) {
	for _, raw := range [][]byte{nil, []byte("null"), []byte(`""`)} {
		images, err := NormalizeImages(raw)
		require.NoError(t, err)
		assert.Empty(t, images)
	}
}

func TestNormalizeImagesUnrecognized(t *testing.T) {
	_, err := NormalizeImages([]byte(`12345`))
	assert.Error(t, err)
}

func TestCollectionRemoveImage(t *testing.T) {
	c := Collection{
		Images: []Image{
			{ID: "a", URL: "u1"},
			{ID: "b", URL: "u2"},
			{ID: "c", URL: "u3"},
		},
	}

	assert.True(t, c.RemoveImage("b"))
	require.Len(t, c.Images, 2)
	assert.Equal(t, "a", c.Images[0].ID)
	assert.Equal(t, "c", c.Images[1].ID)

	assert.False(t, c.RemoveImage("missing"))
	assert.Len(t, c.Images, 2)
}
