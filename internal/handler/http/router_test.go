package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thalha-dev/vouge-vista/internal/auth"
	"github.com/thalha-dev/vouge-vista/internal/domain"
	"github.com/thalha-dev/vouge-vista/internal/event"
	"github.com/thalha-dev/vouge-vista/internal/imagestore/memory"
	"github.com/thalha-dev/vouge-vista/internal/service"
	"github.com/thalha-dev/vouge-vista/pkg/health"
	"github.com/thalha-dev/vouge-vista/pkg/middleware"
	pkgkafka "github.com/thalha-dev/vouge-vista/pkg/kafka"
)

func newTestRouter(t *testing.T, repo *mockShoeRepository, jwtMgr *auth.JWTManager) http.Handler {
	t.Helper()
	logger := testLogger()
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	producer := event.NewProducer(pkgkafka.NewProducer(kafkaCfg, logger), logger)
	store := memory.New("https://ik.example.com")

	catalogSvc := service.NewCatalogService(repo, store, producer, logger)
	wishlistSvc := service.NewWishlistService(new(mockWishlistRepository), repo, logger)

	return NewRouter(catalogSvc, wishlistSvc, jwtMgr.Validate, health.NewHandler(), RouterConfig{
		CORS:           middleware.DefaultCORSConfig(),
		RateLimitRPS:   100,
		RateLimitBurst: 100,
	}, logger)
}

func TestRouter_MissingTokenIs401(t *testing.T) {
	router := newTestRouter(t, new(mockShoeRepository), auth.NewJWTManager("secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shoes", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_ExpiredTokenIs403(t *testing.T) {
	// Tokens signed with a negative expiry are already expired.
	expiredMgr := auth.NewJWTManager("secret", -time.Minute)
	token, err := expiredMgr.GenerateAccessToken("user-1", "u@example.com", "customer")
	require.NoError(t, err)

	router := newTestRouter(t, new(mockShoeRepository), auth.NewJWTManager("secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shoes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code,
		"expired tokens answer 403, the client's refresh trigger")
	assert.Contains(t, rec.Body.String(), "access token expired")
}

func TestRouter_ValidTokenReachesHandler(t *testing.T) {
	jwtMgr := auth.NewJWTManager("secret", time.Hour)
	token, err := jwtMgr.GenerateAccessToken("user-1", "u@example.com", "customer")
	require.NoError(t, err)

	repo := new(mockShoeRepository)
	repo.On("List", mock.Anything).Return([]domain.Shoe{}, nil)
	router := newTestRouter(t, repo, jwtMgr)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shoes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestRouter_HealthAndMetricsAreOpen(t *testing.T) {
	router := newTestRouter(t, new(mockShoeRepository), auth.NewJWTManager("secret", time.Hour))

	for _, path := range []string{"/health/live", "/health/ready", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "%s must not require auth", path)
	}
}
