package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thalha-dev/vouge-vista/internal/service"
	"github.com/thalha-dev/vouge-vista/pkg/health"
	"github.com/thalha-dev/vouge-vista/pkg/middleware"
)

// RouterConfig carries the router's tunables.
type RouterConfig struct {
	CORS           middleware.CORSConfig
	RateLimitRPS   int
	RateLimitBurst int
}

// NewRouter creates a chi router with all catalog service routes registered.
// Everything under /api/v1 sits behind bearer-token auth.
func NewRouter(
	catalogService *service.CatalogService,
	wishlistService *service.WishlistService,
	validateToken middleware.TokenValidator,
	healthHandler *health.Handler,
	cfg RouterConfig,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("catalog"))
	r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	shoeHandler := NewShoeHandler(catalogService, logger)
	wishlistHandler := NewWishlistHandler(wishlistService, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(validateToken))
		r.Use(ContentTypeJSON)

		r.Route("/shoes", func(r chi.Router) {
			// Catalog reads are shared across users and safe to cache briefly.
			cached := r.With(middleware.CacheControl(30))

			r.Post("/", shoeHandler.CreateShoe)
			cached.Get("/", shoeHandler.ListShoes)
			cached.Get("/{id}", shoeHandler.GetShoe)
			r.Put("/", shoeHandler.UpdateShoe)
			r.Delete("/", shoeHandler.DeleteShoe)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Post("/", wishlistHandler.AddToWishlist)
			r.Get("/", wishlistHandler.ListWishlist)
			r.Delete("/", wishlistHandler.RemoveFromWishlist)
		})
	})

	return r
}
