package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/thalha-dev/vouge-vista/internal/domain"
)

// FileUpload is one image file attached to a create or update call.
type FileUpload struct {
	Name        string
	ContentType string
	Data        []byte
}

// CreateShoeInput holds the fields for creating a shoe.
type CreateShoeInput struct {
	Name           string
	Brand          string
	Price          float64
	Size           float64
	Color          string
	AvailableCount int
	Rating         float64
	Images         []FileUpload
}

// UpdateShoeInput holds the fields for updating a shoe. Zero-valued fields
// are omitted from the form and left unchanged server-side.
type UpdateShoeInput struct {
	ID             string
	Name           string
	Brand          string
	Price          float64
	Size           float64
	Color          string
	AvailableCount int
	Rating         float64
	Images         []FileUpload
}

// ListShoes fetches the whole catalog, newest first.
func (c *Client) ListShoes(ctx context.Context) ([]domain.Shoe, error) {
	var data struct {
		Shoes []domain.Shoe `json:"shoes"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/shoes", "", nil, &data); err != nil {
		return nil, err
	}
	return data.Shoes, nil
}

// GetShoe fetches one shoe by ID.
func (c *Client) GetShoe(ctx context.Context, id string) (*domain.Shoe, error) {
	var shoe domain.Shoe
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/shoes/"+id, "", nil, &shoe); err != nil {
		return nil, err
	}
	return &shoe, nil
}

// CreateShoe submits a new shoe with its image files as multipart form data.
func (c *Client) CreateShoe(ctx context.Context, input *CreateShoeInput) (*domain.Shoe, error) {
	fields := map[string]string{
		"name":            input.Name,
		"brand":           input.Brand,
		"price":           formatFloat(input.Price),
		"size":            formatFloat(input.Size),
		"color":           input.Color,
		"available_count": strconv.Itoa(input.AvailableCount),
		"rating":          formatFloat(input.Rating),
	}

	body, contentType, err := multipartBody(fields, input.Images)
	if err != nil {
		return nil, err
	}

	var shoe domain.Shoe
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/shoes", contentType, body, &shoe); err != nil {
		return nil, err
	}
	return &shoe, nil
}

// UpdateShoe submits a partial update; the shoe ID travels in the form body.
func (c *Client) UpdateShoe(ctx context.Context, input *UpdateShoeInput) (*domain.Shoe, error) {
	fields := map[string]string{"id": input.ID}
	if input.Name != "" {
		fields["name"] = input.Name
	}
	if input.Brand != "" {
		fields["brand"] = input.Brand
	}
	if input.Price > 0 {
		fields["price"] = formatFloat(input.Price)
	}
	if input.Size > 0 {
		fields["size"] = formatFloat(input.Size)
	}
	if input.Color != "" {
		fields["color"] = input.Color
	}
	if input.AvailableCount > 0 {
		fields["available_count"] = strconv.Itoa(input.AvailableCount)
	}
	if input.Rating > 0 {
		fields["rating"] = formatFloat(input.Rating)
	}

	body, contentType, err := multipartBody(fields, input.Images)
	if err != nil {
		return nil, err
	}

	var shoe domain.Shoe
	if err := c.doJSON(ctx, http.MethodPut, "/api/v1/shoes", contentType, body, &shoe); err != nil {
		return nil, err
	}
	return &shoe, nil
}

// DeleteShoe removes a shoe; the ID travels in the JSON body.
func (c *Client) DeleteShoe(ctx context.Context, id string) error {
	body, err := json.Marshal(map[string]string{"id": id})
	if err != nil {
		return fmt.Errorf("marshal delete request: %w", err)
	}
	return c.doJSON(ctx, http.MethodDelete, "/api/v1/shoes", "application/json", body, nil)
}

// AddToWishlist saves a shoe on the authenticated user's wishlist.
func (c *Client) AddToWishlist(ctx context.Context, productID string) error {
	body, err := json.Marshal(map[string]string{"product_id": productID})
	if err != nil {
		return fmt.Errorf("marshal wishlist request: %w", err)
	}
	return c.doJSON(ctx, http.MethodPost, "/api/v1/wishlist", "application/json", body, nil)
}

// ListWishlist fetches the shoes on the authenticated user's wishlist.
func (c *Client) ListWishlist(ctx context.Context) ([]domain.Shoe, error) {
	var data struct {
		Shoes []domain.Shoe `json:"shoes"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/wishlist", "", nil, &data); err != nil {
		return nil, err
	}
	return data.Shoes, nil
}

// multipartBody renders fields and files into a multipart form. The whole
// body is buffered so the 403 replay can resend it unchanged.
func multipartBody(fields map[string]string, files []FileUpload) ([]byte, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	for key, val := range fields {
		if err := writer.WriteField(key, val); err != nil {
			return nil, "", fmt.Errorf("write form field %s: %w", key, err)
		}
	}

	for _, file := range files {
		part, err := writer.CreateFormFile("images", file.Name)
		if err != nil {
			return nil, "", fmt.Errorf("create form file %s: %w", file.Name, err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, "", fmt.Errorf("write form file %s: %w", file.Name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("finalize multipart form: %w", err)
	}

	return buf.Bytes(), writer.FormDataContentType(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
