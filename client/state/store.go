package state

import (
	"context"
	"sort"
	"sync"

	"github.com/thalha-dev/vouge-vista/internal/domain"
)

// Status is the lifecycle of one asynchronous operation.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Facets are the filter values derived from the current catalog: brands and
// colors in first-occurrence order, sizes ascending. They are recomputed
// wholesale on every successful fetch, never merged.
type Facets struct {
	Brands []string
	Colors []string
	Sizes  []float64
}

// CatalogClient is the surface of the API client the store drives.
type CatalogClient interface {
	ListShoes(ctx context.Context) ([]domain.Shoe, error)
	ListWishlist(ctx context.Context) ([]domain.Shoe, error)
	AddToWishlist(ctx context.Context, productID string) error
}

// Store holds the derived catalog state for an application shell: the shoe
// list, its facets, the wishlist, and a status per operation. A failed fetch
// keeps the previous data; only the status and error change.
type Store struct {
	mu sync.RWMutex

	shoes  []domain.Shoe
	facets Facets

	wishlist []domain.Shoe

	shoesStatus       Status
	wishlistStatus    Status
	wishlistAddStatus Status

	lastError string

	client CatalogClient
}

// New creates an idle store over the given client.
func New(client CatalogClient) *Store {
	return &Store{
		shoesStatus:       StatusIdle,
		wishlistStatus:    StatusIdle,
		wishlistAddStatus: StatusIdle,
		client:            client,
	}
}

// --- Orchestrating fetch helpers ---

// FetchShoes loads the catalog through the client and applies the result.
func (s *Store) FetchShoes(ctx context.Context) error {
	s.ShoesPending()
	shoes, err := s.client.ListShoes(ctx)
	if err != nil {
		s.ShoesRejected(err)
		return err
	}
	s.ShoesFulfilled(shoes)
	return nil
}

// FetchWishlist loads the wishlist through the client and applies the result.
func (s *Store) FetchWishlist(ctx context.Context) error {
	s.WishlistPending()
	shoes, err := s.client.ListWishlist(ctx)
	if err != nil {
		s.WishlistRejected(err)
		return err
	}
	s.WishlistFulfilled(shoes)
	return nil
}

// AddToWishlist adds a shoe through the client, then refetches the wishlist
// on success so the derived list stays authoritative.
func (s *Store) AddToWishlist(ctx context.Context, productID string) error {
	s.WishlistAddPending()
	if err := s.client.AddToWishlist(ctx, productID); err != nil {
		s.WishlistAddRejected(err)
		return err
	}
	s.WishlistAddFulfilled()
	return s.FetchWishlist(ctx)
}

// --- Event-style updates (pending/fulfilled/rejected per operation) ---

// ShoesPending marks the catalog fetch as in flight.
func (s *Store) ShoesPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shoesStatus = StatusLoading
}

// ShoesFulfilled replaces the shoe list and recomputes facets in one scan.
func (s *Store) ShoesFulfilled(shoes []domain.Shoe) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shoes = shoes
	s.facets = computeFacets(shoes)
	s.shoesStatus = StatusSuccess
	s.lastError = ""
}

// ShoesRejected marks the fetch failed; prior data and facets are retained.
func (s *Store) ShoesRejected(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shoesStatus = StatusFailed
	s.lastError = err.Error()
}

// WishlistPending marks the wishlist fetch as in flight.
func (s *Store) WishlistPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wishlistStatus = StatusLoading
}

// WishlistFulfilled replaces the wishlist.
func (s *Store) WishlistFulfilled(shoes []domain.Shoe) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wishlist = shoes
	s.wishlistStatus = StatusSuccess
	s.lastError = ""
}

// WishlistRejected marks the wishlist fetch failed; prior data is retained.
func (s *Store) WishlistRejected(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wishlistStatus = StatusFailed
	s.lastError = err.Error()
}

// WishlistAddPending marks the add as in flight.
func (s *Store) WishlistAddPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wishlistAddStatus = StatusLoading
}

// WishlistAddFulfilled marks the add successful.
func (s *Store) WishlistAddFulfilled() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wishlistAddStatus = StatusSuccess
	s.lastError = ""
}

// WishlistAddRejected marks the add failed.
func (s *Store) WishlistAddRejected(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wishlistAddStatus = StatusFailed
	s.lastError = err.Error()
}

// --- Reads ---

// Shoes returns the current shoe list.
func (s *Store) Shoes() []domain.Shoe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shoes
}

// Facets returns the current facet values.
func (s *Store) Facets() Facets {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.facets
}

// Wishlist returns the current wishlist.
func (s *Store) Wishlist() []domain.Shoe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wishlist
}

// ShoesStatus returns the catalog fetch status.
func (s *Store) ShoesStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shoesStatus
}

// WishlistStatus returns the wishlist fetch status.
func (s *Store) WishlistStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wishlistStatus
}

// WishlistAddStatus returns the wishlist add status.
func (s *Store) WishlistAddStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wishlistAddStatus
}

// LastError returns the message of the most recent failure, empty after a
// success.
func (s *Store) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastError
}

// computeFacets derives all facet values in a single pass over the list.
func computeFacets(shoes []domain.Shoe) Facets {
	facets := Facets{
		Brands: []string{},
		Colors: []string{},
		Sizes:  []float64{},
	}

	seenBrands := make(map[string]struct{})
	seenColors := make(map[string]struct{})
	seenSizes := make(map[float64]struct{})

	// Unset values contribute nothing to the facets.
	for _, shoe := range shoes {
		if _, ok := seenBrands[shoe.Brand]; shoe.Brand != "" && !ok {
			seenBrands[shoe.Brand] = struct{}{}
			facets.Brands = append(facets.Brands, shoe.Brand)
		}
		if _, ok := seenColors[shoe.Color]; shoe.Color != "" && !ok {
			seenColors[shoe.Color] = struct{}{}
			facets.Colors = append(facets.Colors, shoe.Color)
		}
		if _, ok := seenSizes[shoe.Size]; shoe.Size != 0 && !ok {
			seenSizes[shoe.Size] = struct{}{}
			facets.Sizes = append(facets.Sizes, shoe.Size)
		}
	}

	sort.Float64s(facets.Sizes)
	return facets
}
