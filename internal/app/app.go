package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/thalha-dev/vouge-vista/internal/auth"
	"github.com/thalha-dev/vouge-vista/internal/config"
	"github.com/thalha-dev/vouge-vista/internal/event"
	handler "github.com/thalha-dev/vouge-vista/internal/handler/http"
	"github.com/thalha-dev/vouge-vista/internal/imagestore"
	"github.com/thalha-dev/vouge-vista/internal/imagestore/imagekit"
	storemem "github.com/thalha-dev/vouge-vista/internal/imagestore/memory"
	"github.com/thalha-dev/vouge-vista/internal/reconcile"
	queuemem "github.com/thalha-dev/vouge-vista/internal/reconcile/memory"
	queueredis "github.com/thalha-dev/vouge-vista/internal/reconcile/redis"
	"github.com/thalha-dev/vouge-vista/internal/repository/postgres"
	"github.com/thalha-dev/vouge-vista/internal/service"
	"github.com/thalha-dev/vouge-vista/migrations"
	"github.com/thalha-dev/vouge-vista/pkg/database"
	"github.com/thalha-dev/vouge-vista/pkg/health"
	pkgkafka "github.com/thalha-dev/vouge-vista/pkg/kafka"
	"github.com/thalha-dev/vouge-vista/pkg/middleware"
)

// App wires together all dependencies and runs the catalog service.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	pool       *pgxpool.Pool
	redis      *goredis.Client
	producer   *pkgkafka.Producer
	worker     *reconcile.Worker
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize PostgreSQL connection pool.
	pgCfg := database.PostgresConfig{
		Host:     cfg.PostgresHost,
		Port:     cfg.PostgresPort,
		User:     cfg.PostgresUser,
		Password: cfg.PostgresPass,
		DBName:   cfg.PostgresDB,
		SSLMode:  cfg.PostgresSSL,

		MaxConns:        25,
		MinConns:        5,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: 30 * time.Minute,
	}

	pool, err := database.NewPostgresPool(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.Int("port", cfg.PostgresPort),
		slog.String("database", cfg.PostgresDB),
	)

	// Run database migrations.
	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database migrations completed")

	// Initialize Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Image store: ImageKit when configured, in-memory otherwise.
	var store imagestore.Store
	if cfg.ImageKitUploadEndpoint != "" {
		store = imagekit.New(imagekit.Config{
			UploadEndpoint: cfg.ImageKitUploadEndpoint,
			APIEndpoint:    cfg.ImageKitAPIEndpoint,
			PrivateKey:     cfg.ImageKitPrivateKey,
		}, logger)
		logger.Info("imagekit store initialized", slog.String("endpoint", cfg.ImageKitUploadEndpoint))
	} else {
		store = storemem.New(fmt.Sprintf("http://localhost:%d", cfg.HTTPPort))
		logger.Warn("no image store endpoint configured, using in-memory store")
	}

	// Strict asset cleanup: redis-backed reconciliation queue + worker.
	var (
		redisClient *goredis.Client
		worker      *reconcile.Worker
		catalogOpts []service.CatalogOption
	)
	if cfg.AssetCleanupStrict {
		var queue reconcile.Queue
		redisClient, err = database.NewRedisClient(ctx, database.RedisConfig{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			logger.Warn("redis unavailable, using in-memory reconciliation queue",
				slog.String("error", err.Error()),
			)
			queue = queuemem.NewQueue()
		} else {
			queue = queueredis.NewQueue(redisClient)
		}

		interval := time.Duration(cfg.ReconcileIntervalSec) * time.Second
		worker = reconcile.NewWorker(queue, store, logger, interval)
		catalogOpts = append(catalogOpts, service.WithStrictCleanup(queue))
		logger.Info("strict asset cleanup enabled", slog.Duration("interval", interval))
	}

	// Build the dependency graph.
	shoeRepo := postgres.NewShoeRepository(pool)
	wishlistRepo := postgres.NewWishlistRepository(pool)
	eventProducer := event.NewProducer(producer, logger)
	catalogService := service.NewCatalogService(shoeRepo, store, eventProducer, logger, catalogOpts...)
	wishlistService := service.NewWishlistService(wishlistRepo, shoeRepo, logger)

	jwtMgr := auth.NewJWTManager(cfg.JWTSecret, time.Duration(cfg.JWTAccessExpiryMin)*time.Minute)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	if redisClient != nil {
		healthHandler.Register("redis", func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	// HTTP router.
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins
	corsCfg.Environment = cfg.Environment
	router := handler.NewRouter(catalogService, wishlistService, jwtMgr.Validate, healthHandler, handler.RouterConfig{
		CORS:           corsCfg,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		pool:       pool,
		redis:      redisClient,
		producer:   producer,
		worker:     worker,
		httpServer: httpServer,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	if a.worker != nil {
		go a.worker.Run(ctx)
	}

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}

	a.pool.Close()

	a.logger.Info("application shutdown complete")
	return nil
}
