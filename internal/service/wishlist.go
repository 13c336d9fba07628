package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/thalha-dev/vouge-vista/internal/domain"
	"github.com/thalha-dev/vouge-vista/internal/repository"
)

// WishlistService implements the business logic for wishlists.
type WishlistService struct {
	wishlists repository.WishlistRepository
	shoes     repository.ShoeRepository
	logger    *slog.Logger
}

// NewWishlistService creates a new wishlist service.
func NewWishlistService(
	wishlists repository.WishlistRepository,
	shoes repository.ShoeRepository,
	logger *slog.Logger,
) *WishlistService {
	return &WishlistService{
		wishlists: wishlists,
		shoes:     shoes,
		logger:    logger,
	}
}

// AddToWishlist saves a shoe on the user's wishlist. The shoe must exist;
// adding it twice is a no-op.
func (s *WishlistService) AddToWishlist(ctx context.Context, userID, productID string) error {
	if _, err := s.shoes.GetByID(ctx, productID); err != nil {
		return fmt.Errorf("verify shoe exists: %w", err)
	}

	item := &domain.WishlistItem{
		UserID:    userID,
		ProductID: productID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.wishlists.Add(ctx, item); err != nil {
		return fmt.Errorf("add to wishlist: %w", err)
	}

	s.logger.InfoContext(ctx, "shoe added to wishlist",
		slog.String("user_id", userID),
		slog.String("shoe_id", productID),
	)

	return nil
}

// RemoveFromWishlist takes a shoe off the user's wishlist. Removing an
// absent shoe is a no-op.
func (s *WishlistService) RemoveFromWishlist(ctx context.Context, userID, productID string) error {
	if err := s.wishlists.Remove(ctx, userID, productID); err != nil {
		return fmt.Errorf("remove from wishlist: %w", err)
	}

	s.logger.InfoContext(ctx, "shoe removed from wishlist",
		slog.String("user_id", userID),
		slog.String("shoe_id", productID),
	)

	return nil
}

// ListWishlist returns the shoes on a user's wishlist, newest first. Entries
// whose shoe has since been deleted are skipped.
func (s *WishlistService) ListWishlist(ctx context.Context, userID string) ([]domain.Shoe, error) {
	items, err := s.wishlists.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}

	shoes := make([]domain.Shoe, 0, len(items))
	for _, item := range items {
		shoe, err := s.shoes.GetByID(ctx, item.ProductID)
		if err != nil {
			// Stale entry; the shoe was deleted after it was wishlisted.
			s.logger.DebugContext(ctx, "skipping stale wishlist entry",
				slog.String("user_id", userID),
				slog.String("shoe_id", item.ProductID),
			)
			continue
		}
		shoes = append(shoes, *shoe)
	}

	return shoes, nil
}
