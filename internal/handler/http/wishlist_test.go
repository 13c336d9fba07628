package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thalha-dev/vouge-vista/internal/domain"
	"github.com/thalha-dev/vouge-vista/internal/repository"
	"github.com/thalha-dev/vouge-vista/internal/service"
	apperrors "github.com/thalha-dev/vouge-vista/pkg/errors"
)

var _ repository.WishlistRepository = (*mockWishlistRepository)(nil)

// --- Mock WishlistRepository ---

type mockWishlistRepository struct {
	mock.Mock
}

func (m *mockWishlistRepository) Add(ctx context.Context, item *domain.WishlistItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *mockWishlistRepository) Remove(ctx context.Context, userID, productID string) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

func (m *mockWishlistRepository) List(ctx context.Context, userID string) ([]domain.WishlistItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WishlistItem), args.Error(1)
}

func (m *mockWishlistRepository) Exists(ctx context.Context, userID, productID string) (bool, error) {
	args := m.Called(ctx, userID, productID)
	return args.Bool(0), args.Error(1)
}

// --- Test Helpers ---

func newWishlistHandler(wishlists *mockWishlistRepository, shoes *mockShoeRepository) *WishlistHandler {
	logger := testLogger()
	svc := service.NewWishlistService(wishlists, shoes, logger)
	return NewWishlistHandler(svc, logger)
}

// --- Tests ---

func TestAddToWishlist_Success(t *testing.T) {
	wishlists := new(mockWishlistRepository)
	shoes := new(mockShoeRepository)
	handler := newWishlistHandler(wishlists, shoes)

	shoes.On("GetByID", mock.Anything, validID).Return(sampleShoe(), nil)
	wishlists.On("Add", mock.Anything, mock.AnythingOfType("*domain.WishlistItem")).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/wishlist", strings.NewReader(`{"product_id":"`+validID+`"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.AddToWishlist(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestAddToWishlist_InvalidBodyIs400(t *testing.T) {
	wishlists := new(mockWishlistRepository)
	handler := newWishlistHandler(wishlists, new(mockShoeRepository))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/wishlist", strings.NewReader(`{"product_id":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.AddToWishlist(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	wishlists.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestAddToWishlist_UnknownShoeIs404(t *testing.T) {
	wishlists := new(mockWishlistRepository)
	shoes := new(mockShoeRepository)
	handler := newWishlistHandler(wishlists, shoes)

	shoes.On("GetByID", mock.Anything, validID).Return(nil, apperrors.NotFound("shoe", validID))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/wishlist", strings.NewReader(`{"product_id":"`+validID+`"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.AddToWishlist(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListWishlist_Success(t *testing.T) {
	wishlists := new(mockWishlistRepository)
	shoes := new(mockShoeRepository)
	handler := newWishlistHandler(wishlists, shoes)

	now := time.Now().UTC()
	wishlists.On("List", mock.Anything, mock.Anything).Return([]domain.WishlistItem{
		{UserID: "user-1", ProductID: validID, CreatedAt: now},
	}, nil)
	shoes.On("GetByID", mock.Anything, validID).Return(sampleShoe(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wishlist", nil)
	rec := httptest.NewRecorder()

	handler.ListWishlist(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Air Runner")
}

func TestRemoveFromWishlist_Success(t *testing.T) {
	wishlists := new(mockWishlistRepository)
	handler := newWishlistHandler(wishlists, new(mockShoeRepository))

	wishlists.On("Remove", mock.Anything, mock.Anything, validID).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/wishlist", strings.NewReader(`{"product_id":"`+validID+`"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.RemoveFromWishlist(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
