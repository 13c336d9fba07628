package domain

import (
	"time"
)

// WishlistItem relates a user to a shoe they saved. Membership is stable and
// unordered; adds are idempotent.
type WishlistItem struct {
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}
