package imagestore

import (
	"context"
	"io"
)

// Store defines the interface for the external product-image store.
type Store interface {
	// Upload stores a file and returns the asset identifier and public URL.
	Upload(ctx context.Context, input *UploadInput) (*UploadResult, error)

	// Delete removes a file by its asset identifier. The identifier is the
	// only handle the store accepts for deletion; losing it orphans the file.
	Delete(ctx context.Context, assetID string) error
}

// UploadInput holds the parameters for uploading a file.
type UploadInput struct {
	FileName    string
	Folder      string
	ContentType string
	Size        int64
	Data        io.Reader
}

// UploadResult holds the result of a successful upload.
type UploadResult struct {
	AssetID string
	URL     string
}
