package config

import (
	"fmt"

	pkgconfig "github.com/thalha-dev/vouge-vista/pkg/config"
)

// Config holds all configuration for the catalog service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"CATALOG_HTTP_PORT" envDefault:"8080"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"vougevista"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"vougevista_secret"`
	PostgresDB   string `env:"CATALOG_DB_NAME" envDefault:"catalog_db"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	// Redis (reconciliation queue; only dialed in strict cleanup mode)
	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// ImageKit. When UploadEndpoint is empty the service falls back to the
	// in-memory image store.
	ImageKitUploadEndpoint string `env:"IMAGEKIT_UPLOAD_ENDPOINT" envDefault:""`
	ImageKitAPIEndpoint    string `env:"IMAGEKIT_API_ENDPOINT" envDefault:"https://api.imagekit.io"`
	ImageKitPrivateKey     string `env:"IMAGEKIT_PRIVATE_KEY" envDefault:""`

	// JWT
	JWTSecret          string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	JWTAccessExpiryMin int    `env:"JWT_ACCESS_EXPIRY_MINUTES" envDefault:"15"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Rate limiting
	RateLimitRPS   int `env:"RATE_LIMIT_RPS" envDefault:"50"`
	RateLimitBurst int `env:"RATE_LIMIT_BURST" envDefault:"100"`

	// AssetCleanupStrict queues failed image-store deletes for background
	// reconciliation instead of only logging them.
	AssetCleanupStrict bool `env:"ASSET_CLEANUP_STRICT" envDefault:"false"`

	// ReconcileIntervalSec is how often the reconciliation worker polls.
	ReconcileIntervalSec int `env:"RECONCILE_INTERVAL_SECONDS" envDefault:"60"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load catalog config: %w", err)
	}
	return cfg, nil
}
