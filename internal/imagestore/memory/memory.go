package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/thalha-dev/vouge-vista/internal/imagestore"
)

// fileEntry stores metadata about an uploaded file in memory.
type fileEntry struct {
	FileName    string
	Folder      string
	ContentType string
	Size        int64
	URL         string
}

// Store implements imagestore.Store using an in-memory map.
// It stores metadata only (no actual file bytes) for local runs and tests.
type Store struct {
	mu      sync.RWMutex
	files   map[string]*fileEntry
	baseURL string
}

// New creates a new in-memory image store.
func New(baseURL string) *Store {
	return &Store{
		files:   make(map[string]*fileEntry),
		baseURL: baseURL,
	}
}

// Upload stores file metadata in memory and returns a generated asset ID.
func (s *Store) Upload(_ context.Context, input *imagestore.UploadInput) (*imagestore.UploadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	assetID := uuid.NewString()
	folder := strings.Trim(input.Folder, "/")
	url := fmt.Sprintf("%s/%s/%s", s.baseURL, folder, input.FileName)

	s.files[assetID] = &fileEntry{
		FileName:    input.FileName,
		Folder:      input.Folder,
		ContentType: input.ContentType,
		Size:        input.Size,
		URL:         url,
	}

	return &imagestore.UploadResult{
		AssetID: assetID,
		URL:     url,
	}, nil
}

// Delete removes file metadata from memory.
func (s *Store) Delete(_ context.Context, assetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.files[assetID]; !exists {
		return fmt.Errorf("file not found: %s", assetID)
	}

	delete(s.files, assetID)
	return nil
}

// Len reports the number of stored files. Test helper.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}
