package http

import (
	"log/slog"
	"net/http"

	"github.com/thalha-dev/vouge-vista/internal/service"
	"github.com/thalha-dev/vouge-vista/pkg/httputil"
	"github.com/thalha-dev/vouge-vista/pkg/middleware"
	"github.com/thalha-dev/vouge-vista/pkg/validator"
)

// WishlistHandler handles HTTP requests for wishlist endpoints.
type WishlistHandler struct {
	service *service.WishlistService
	logger  *slog.Logger
}

// NewWishlistHandler creates a new wishlist HTTP handler.
func NewWishlistHandler(svc *service.WishlistService, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// AddToWishlistRequest is the JSON request body for adding a shoe to the
// authenticated user's wishlist.
type AddToWishlistRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
}

// RemoveFromWishlistRequest is the JSON request body for removing a shoe.
type RemoveFromWishlistRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
}

// --- Handlers ---

// AddToWishlist handles POST /api/v1/wishlist.
func (h *WishlistHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	var req AddToWishlistRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	if err := h.service.AddToWishlist(r.Context(), userID, req.ProductID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{
		Data: map[string]string{"product_id": req.ProductID},
	})
}

// RemoveFromWishlist handles DELETE /api/v1/wishlist.
func (h *WishlistHandler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	var req RemoveFromWishlistRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	if err := h.service.RemoveFromWishlist(r.Context(), userID, req.ProductID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListWishlist handles GET /api/v1/wishlist.
func (h *WishlistHandler) ListWishlist(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	shoes, err := h.service.ListWishlist(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: map[string]any{"shoes": shoes},
	})
}
