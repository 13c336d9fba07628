package domain

import (
	"time"
)

// ImageRef references one externally hosted product image. URL is derived
// from the store path at upload time; AssetID is the opaque identifier the
// image store requires to delete the file.
type ImageRef struct {
	URL     string `json:"url"`
	AssetID string `json:"asset_id"`
}

// Shoe is a product in the catalog. Every entry in Images must point at a
// file that exists in the image store for as long as the shoe exists.
type Shoe struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Brand          string     `json:"brand"`
	Price          float64    `json:"price"`
	Size           float64    `json:"size"`
	Color          string     `json:"color"`
	AvailableCount int        `json:"available_count"`
	Rating         float64    `json:"rating"`
	Images         []ImageRef `json:"images"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// AssetIDs returns the store identifiers of every referenced image.
func (s *Shoe) AssetIDs() []string {
	ids := make([]string, len(s.Images))
	for i, img := range s.Images {
		ids[i] = img.AssetID
	}
	return ids
}
