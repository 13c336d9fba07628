// Package main implements a seed script that populates a running catalog
// service with sample shoes through the typed API client, so a fresh
// deployment has data to browse.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/thalha-dev/vouge-vista/client/auth"
	"github.com/thalha-dev/vouge-vista/client/catalog"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var brands = []string{"Velocity", "Summit", "Apex", "Stride", "Nimbus"}

var colors = []string{"black", "white", "red", "navy", "olive"}

var sizes = []float64{7, 7.5, 8, 8.5, 9, 9.5, 10, 10.5, 11, 12}

// placeholderJPEG is a minimal JPEG header; the image store only needs bytes.
var placeholderJPEG = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00, 0xFF, 0xD9}

func main() {
	baseURL := getEnv("CATALOG_URL", "http://localhost:8080")
	accessToken := os.Getenv("SEED_ACCESS_TOKEN")
	refreshURL := os.Getenv("SEED_REFRESH_URL")
	refreshToken := os.Getenv("SEED_REFRESH_TOKEN")
	if accessToken == "" {
		log.Fatal("SEED_ACCESS_TOKEN is required")
	}

	sessions := auth.NewStore(&auth.Session{AccessToken: accessToken})
	var refresher auth.Refresher = auth.NewHTTPRefresher(refreshURL, refreshToken)
	client := catalog.New(baseURL, sessions, refresher)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	const count = 25
	for i := 0; i < count; i++ {
		brand := brands[rng.Intn(len(brands))]
		input := &catalog.CreateShoeInput{
			Name:           fmt.Sprintf("%s Runner %d", brand, i+1),
			Brand:          brand,
			Price:          float64(60+rng.Intn(140)) + 0.99,
			Size:           sizes[rng.Intn(len(sizes))],
			Color:          colors[rng.Intn(len(colors))],
			AvailableCount: 5 + rng.Intn(50),
			Rating:         float64(rng.Intn(6)),
			Images: []catalog.FileUpload{
				{Name: fmt.Sprintf("seed-%d.jpg", i+1), ContentType: "image/jpeg", Data: placeholderJPEG},
			},
		}

		shoe, err := client.CreateShoe(ctx, input)
		if err != nil {
			log.Fatalf("seed shoe %d: %v", i+1, err)
		}
		log.Printf("created %s (%s)", shoe.Name, shoe.ID)
	}

	log.Printf("seeded %d shoes", count)
}
