package repository

import (
	"context"

	"github.com/thalha-dev/vouge-vista/internal/domain"
)

// ShoeRepository defines the persistence contract for shoes.
type ShoeRepository interface {
	// Create inserts a new shoe into the store.
	Create(ctx context.Context, shoe *domain.Shoe) error

	// GetByID retrieves a shoe by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Shoe, error)

	// List returns every shoe ordered by creation time, newest first.
	List(ctx context.Context) ([]domain.Shoe, error)

	// Update replaces the stored record for an existing shoe.
	Update(ctx context.Context, shoe *domain.Shoe) error

	// Delete removes a shoe and returns the deleted record, so callers can
	// release its external assets after the database row is gone.
	Delete(ctx context.Context, id string) (*domain.Shoe, error)
}

// WishlistRepository defines the persistence contract for wishlists.
type WishlistRepository interface {
	// Add inserts a shoe into the user's wishlist (idempotent).
	Add(ctx context.Context, item *domain.WishlistItem) error

	// Remove deletes a shoe from the user's wishlist (idempotent).
	Remove(ctx context.Context, userID, productID string) error

	// List returns all wishlist items for the user, newest first.
	List(ctx context.Context, userID string) ([]domain.WishlistItem, error)

	// Exists checks whether a shoe is in the user's wishlist.
	Exists(ctx context.Context, userID, productID string) (bool, error)
}
