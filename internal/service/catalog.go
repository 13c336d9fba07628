package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/thalha-dev/vouge-vista/internal/domain"
	"github.com/thalha-dev/vouge-vista/internal/event"
	"github.com/thalha-dev/vouge-vista/internal/imagestore"
	"github.com/thalha-dev/vouge-vista/internal/reconcile"
	"github.com/thalha-dev/vouge-vista/internal/repository"
	apperrors "github.com/thalha-dev/vouge-vista/pkg/errors"
)

// productFolder is where every product image lives in the external store.
const productFolder = "/products"

// CatalogService implements the business logic for the shoe catalog,
// including the image lifecycle against the external store.
type CatalogService struct {
	repo     repository.ShoeRepository
	store    imagestore.Store
	producer *event.Producer
	queue    reconcile.Queue
	logger   *slog.Logger

	// strictCleanup queues failed asset deletes for reconciliation instead
	// of only logging them.
	strictCleanup bool
}

// CatalogOption configures optional CatalogService behavior.
type CatalogOption func(*CatalogService)

// WithStrictCleanup enables reconciliation of failed asset deletes through
// the given queue.
func WithStrictCleanup(queue reconcile.Queue) CatalogOption {
	return func(s *CatalogService) {
		s.queue = queue
		s.strictCleanup = true
	}
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(
	repo repository.ShoeRepository,
	store imagestore.Store,
	producer *event.Producer,
	logger *slog.Logger,
	opts ...CatalogOption,
) *CatalogService {
	s := &CatalogService{
		repo:     repo,
		store:    store,
		producer: producer,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ImageUpload is one image file submitted with a create or update request.
type ImageUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Data        io.Reader
}

// CreateShoeInput holds the parameters for creating a shoe.
type CreateShoeInput struct {
	Name           string
	Brand          string
	Price          float64
	Size           float64
	Color          string
	AvailableCount int
	Rating         float64
	Images         []ImageUpload
}

// UpdateShoeInput holds the parameters for updating a shoe. Zero-valued
// fields are left unchanged; a non-empty Images slice replaces the whole
// image set.
type UpdateShoeInput struct {
	ID             string
	Name           string
	Brand          string
	Price          float64
	Size           float64
	Color          string
	AvailableCount int
	Rating         float64
	Images         []ImageUpload
}

// CreateShoe validates the input, uploads every image in order, and persists
// the shoe. No upload happens until the whole input is valid. A failed upload
// aborts the batch immediately; files uploaded before the failure are left in
// the store.
func (s *CatalogService) CreateShoe(ctx context.Context, input *CreateShoeInput) (*domain.Shoe, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	images, err := s.uploadImages(ctx, input.Images)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	shoe := &domain.Shoe{
		ID:             uuid.NewString(),
		Name:           input.Name,
		Brand:          input.Brand,
		Price:          input.Price,
		Size:           input.Size,
		Color:          input.Color,
		AvailableCount: input.AvailableCount,
		Rating:         input.Rating,
		Images:         images,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, shoe); err != nil {
		s.abandonAssets(ctx, shoe.ID, images)
		return nil, &SyncError{Phase: PhasePersisting, Err: err}
	}

	if err := s.producer.PublishShoeCreated(ctx, shoe); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish shoe.created event",
			slog.String("shoe_id", shoe.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "shoe created",
		slog.String("shoe_id", shoe.ID),
		slog.String("name", shoe.Name),
		slog.Int("images", len(shoe.Images)),
	)

	return shoe, nil
}

// GetShoe retrieves a shoe by its ID.
func (s *CatalogService) GetShoe(ctx context.Context, id string) (*domain.Shoe, error) {
	shoe, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get shoe by id: %w", err)
	}
	return shoe, nil
}

// ListShoes returns every shoe, newest first.
func (s *CatalogService) ListShoes(ctx context.Context) ([]domain.Shoe, error) {
	shoes, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shoes: %w", err)
	}
	return shoes, nil
}

// UpdateShoe applies a partial update. When new images are submitted the old
// assets are deleted first (best effort), the new files are uploaded in
// order, and the image set is replaced wholesale; old and new images are
// never mixed.
func (s *CatalogService) UpdateShoe(ctx context.Context, input *UpdateShoeInput) (*domain.Shoe, error) {
	shoe, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		if apperrors.HTTPStatus(err) == http.StatusNotFound {
			return nil, apperrors.NotFoundWithStatus("shoe", input.ID, http.StatusBadRequest)
		}
		return nil, fmt.Errorf("get shoe for update: %w", err)
	}

	if len(input.Images) > 0 {
		s.deleteAssets(ctx, shoe.ID, shoe.Images)

		images, err := s.uploadImages(ctx, input.Images)
		if err != nil {
			return nil, err
		}
		shoe.Images = images
	}

	applyUpdate(shoe, input)
	shoe.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, shoe); err != nil {
		return nil, &SyncError{Phase: PhasePersisting, Err: err}
	}

	if err := s.producer.PublishShoeUpdated(ctx, shoe); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish shoe.updated event",
			slog.String("shoe_id", shoe.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "shoe updated", slog.String("shoe_id", shoe.ID))

	return shoe, nil
}

// DeleteShoe removes the database row first, then releases the external
// assets. A failed asset delete never resurrects the row; it is logged and,
// in strict-cleanup mode, queued for reconciliation.
func (s *CatalogService) DeleteShoe(ctx context.Context, id string) error {
	shoe, err := s.repo.Delete(ctx, id)
	if err != nil {
		if apperrors.HTTPStatus(err) == http.StatusNotFound {
			return apperrors.NotFoundWithStatus("shoe", id, http.StatusBadRequest)
		}
		return fmt.Errorf("delete shoe: %w", err)
	}

	s.deleteAssets(ctx, shoe.ID, shoe.Images)

	if err := s.producer.PublishShoeDeleted(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish shoe.deleted event",
			slog.String("shoe_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "shoe deleted",
		slog.String("shoe_id", id),
		slog.Int("assets_released", len(shoe.Images)),
	)

	return nil
}

// uploadImages sends each file to the store sequentially. The first failure
// aborts the batch; earlier uploads are not rolled back.
func (s *CatalogService) uploadImages(ctx context.Context, uploads []ImageUpload) ([]domain.ImageRef, error) {
	images := make([]domain.ImageRef, 0, len(uploads))

	for i, upload := range uploads {
		result, err := s.store.Upload(ctx, &imagestore.UploadInput{
			FileName:    upload.FileName,
			Folder:      productFolder,
			ContentType: upload.ContentType,
			Size:        upload.Size,
			Data:        upload.Data,
		})
		if err != nil {
			if i > 0 {
				s.logger.WarnContext(ctx, "upload batch aborted with orphaned assets",
					slog.Int("uploaded", i),
					slog.Int("total", len(uploads)),
					slog.String("failed_file", upload.FileName),
				)
			}
			return nil, &SyncError{Phase: PhaseUploading, Err: err}
		}

		images = append(images, domain.ImageRef{
			URL:     result.URL,
			AssetID: result.AssetID,
		})
	}

	return images, nil
}

// deleteAssets releases store files best effort. Failures are logged and, in
// strict-cleanup mode, queued for background reconciliation.
func (s *CatalogService) deleteAssets(ctx context.Context, shoeID string, images []domain.ImageRef) {
	for _, img := range images {
		err := s.store.Delete(ctx, img.AssetID)
		if err == nil {
			continue
		}

		s.logger.WarnContext(ctx, "asset delete failed",
			slog.String("shoe_id", shoeID),
			slog.String("asset_id", img.AssetID),
			slog.String("error", err.Error()),
		)

		if s.strictCleanup {
			task := &reconcile.Task{
				AssetID:    img.AssetID,
				ShoeID:     shoeID,
				EnqueuedAt: time.Now().UTC(),
			}
			if qErr := s.queue.Enqueue(ctx, task); qErr != nil {
				s.logger.ErrorContext(ctx, "failed to queue asset for reconciliation",
					slog.String("asset_id", img.AssetID),
					slog.String("error", qErr.Error()),
				)
			}
		}
	}
}

// abandonAssets handles uploads whose database row never materialized. They
// are queued for cleanup in strict mode, otherwise only logged.
func (s *CatalogService) abandonAssets(ctx context.Context, shoeID string, images []domain.ImageRef) {
	if s.strictCleanup {
		s.deleteAssets(ctx, shoeID, images)
		return
	}

	s.logger.ErrorContext(ctx, "persist failed after upload, assets orphaned",
		slog.String("shoe_id", shoeID),
		slog.Int("assets", len(images)),
	)
}

// validateCreate checks every field before any upload starts, so an invalid
// request never touches the image store. The first failing field names
// itself in the error.
func validateCreate(input *CreateShoeInput) error {
	switch {
	case input.Name == "":
		return apperrors.InvalidInput("shoe name is required")
	case input.Brand == "":
		return apperrors.InvalidInput("shoe brand is required")
	case input.Price <= 0:
		return apperrors.InvalidInput("price must be greater than zero")
	case input.Size <= 0:
		return apperrors.InvalidInput("size must be greater than zero")
	case input.Color == "":
		return apperrors.InvalidInput("color is required")
	case input.AvailableCount <= 0:
		return apperrors.InvalidInput("available count must be greater than zero")
	case input.Rating <= 0 || input.Rating > 5:
		return apperrors.InvalidInput("rating must be between 0 and 5")
	case len(input.Images) == 0:
		return apperrors.InvalidInput("at least one image is required")
	}
	return nil
}

// applyUpdate copies the non-zero scalar fields of the input onto the shoe.
func applyUpdate(shoe *domain.Shoe, input *UpdateShoeInput) {
	if input.Name != "" {
		shoe.Name = input.Name
	}
	if input.Brand != "" {
		shoe.Brand = input.Brand
	}
	if input.Price > 0 {
		shoe.Price = input.Price
	}
	if input.Size > 0 {
		shoe.Size = input.Size
	}
	if input.Color != "" {
		shoe.Color = input.Color
	}
	if input.AvailableCount > 0 {
		shoe.AvailableCount = input.AvailableCount
	}
	if input.Rating > 0 {
		shoe.Rating = input.Rating
	}
}
