package postgres

import (
	"context"
	"fmt"

	"github.com/thalha-dev/vouge-vista/internal/domain"
	"github.com/thalha-dev/vouge-vista/pkg/database"
)

// WishlistRepository implements repository.WishlistRepository using PostgreSQL.
type WishlistRepository struct {
	pool database.DBTX
}

// NewWishlistRepository creates a new PostgreSQL-backed wishlist repository.
func NewWishlistRepository(pool database.DBTX) *WishlistRepository {
	return &WishlistRepository{pool: pool}
}

// Add records a product on a user's wishlist. Adding the same product twice
// is a no-op.
func (r *WishlistRepository) Add(ctx context.Context, item *domain.WishlistItem) error {
	query := `
		INSERT INTO wishlists (user_id, product_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id) DO NOTHING`

	_, err := r.pool.Exec(ctx, query, item.UserID, item.ProductID, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("add wishlist item: %w", err)
	}

	return nil
}

// Remove deletes a product from a user's wishlist. Removing a product that
// is not on the list is a no-op.
func (r *WishlistRepository) Remove(ctx context.Context, userID, productID string) error {
	query := `DELETE FROM wishlists WHERE user_id = $1 AND product_id = $2`

	_, err := r.pool.Exec(ctx, query, userID, productID)
	if err != nil {
		return fmt.Errorf("remove wishlist item: %w", err)
	}

	return nil
}

// List returns a user's wishlist, newest first.
func (r *WishlistRepository) List(ctx context.Context, userID string) ([]domain.WishlistItem, error) {
	query := `
		SELECT user_id, product_id, created_at
		FROM wishlists
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	defer rows.Close()

	items := []domain.WishlistItem{}
	for rows.Next() {
		var item domain.WishlistItem
		if err := rows.Scan(&item.UserID, &item.ProductID, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan wishlist row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wishlist rows: %w", err)
	}

	return items, nil
}

// Exists reports whether a product is on a user's wishlist.
func (r *WishlistRepository) Exists(ctx context.Context, userID, productID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM wishlists WHERE user_id = $1 AND product_id = $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, productID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check wishlist item: %w", err)
	}

	return exists, nil
}
