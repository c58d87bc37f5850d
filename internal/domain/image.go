package domain

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Image is a single addressable image in an ordered sequence. Every image
// carries its own id so it can be deleted independently.
type Image struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// NormalizeImages converts any historical image encoding into the canonical
// ordered []Image form. Three legacy shapes exist in old records: a bare URL
// string, an array of URL strings, and the canonical array of {id,url}
// objects. Legacy entries without an id are assigned a fresh one.
func NormalizeImages(raw []byte) ([]Image, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []Image{}, nil
	}

	var canonical []Image
	if err := json.Unmarshal(raw, &canonical); err == nil {
		for i := range canonical {
			if canonical[i].ID == "" {
				canonical[i].ID = uuid.New().String()
			}
		}
		return canonical, nil
	}

	var urls []string
	if err := json.Unmarshal(raw, &urls); err == nil {
		images := make([]Image, len(urls))
		for i, u := range urls {
			images[i] = Image{ID: uuid.New().String(), URL: u}
		}
		return images, nil
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		if single == "" {
			return []Image{}, nil
		}
		return []Image{{ID: uuid.New().String(), URL: single}}, nil
	}

	return nil, fmt.Errorf("unrecognized image encoding: %s", truncate(string(raw), 64))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
