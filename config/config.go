package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	// Server Configuration
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Storage Configuration
	Postgres PostgresConfig
	Redis    RedisConfig
	MinIO    MinIOConfig

	// Pipeline Configuration
	Digest DigestConfig
	Trend  TrendConfig

	// Delivery Configuration
	SMTP SMTPConfig

	// Authentication & Security Configuration
	JWT            JWTConfig
	InternalConfig InternalConfig

	// Monitoring & Notification Configuration
	Discord DiscordConfig
}

// HTTPServerConfig is the configuration for the HTTP server.
type HTTPServerConfig struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port int    `env:"HTTP_PORT" envDefault:"8080"`
	Mode string `env:"HTTP_MODE" envDefault:"release"`

	// PublicBaseURL is the externally reachable base URL used to build
	// acknowledgement links embedded in digest emails.
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`
}

// LoggerConfig is the configuration for the logger.
type LoggerConfig struct {
	Level        string `env:"LOGGER_LEVEL" envDefault:"info"`
	Mode         string `env:"LOGGER_MODE" envDefault:"production"`
	Encoding     string `env:"LOGGER_ENCODING" envDefault:"json"`
	ColorEnabled bool   `env:"LOGGER_COLOR_ENABLED" envDefault:"false"`
}

// PostgresConfig is the configuration for PostgreSQL.
type PostgresConfig struct {
	Host     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	User     string `env:"POSTGRES_USER" envDefault:"postgres"`
	Password string `env:"POSTGRES_PASSWORD"`
	DBName   string `env:"POSTGRES_DB" envDefault:"aquasentry"`
	SSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

	MaxOpenConns    int           `env:"POSTGRES_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"POSTGRES_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"POSTGRES_CONN_MAX_LIFETIME" envDefault:"30m"`
}

// RedisConfig is the configuration for Redis.
// Note: Only standalone mode is supported.
type RedisConfig struct {
	Host     string `env:"REDIS_HOST" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`

	// Connection pool settings
	MaxRetries      int           `env:"REDIS_MAX_RETRIES" envDefault:"3"`
	MinIdleConns    int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"10"`
	PoolSize        int           `env:"REDIS_POOL_SIZE" envDefault:"100"`
	PoolTimeout     time.Duration `env:"REDIS_POOL_TIMEOUT" envDefault:"4s"`
	ConnMaxIdleTime time.Duration `env:"REDIS_CONN_MAX_IDLE_TIME" envDefault:"5m"`
	ConnMaxLifetime time.Duration `env:"REDIS_CONN_MAX_LIFETIME" envDefault:"30m"`
}

// MinIOConfig is the configuration for the digest archive bucket.
// The archive is optional: when Endpoint is empty, archiving is disabled.
type MinIOConfig struct {
	Endpoint  string `env:"MINIO_ENDPOINT"`
	AccessKey string `env:"MINIO_ACCESS_KEY"`
	SecretKey string `env:"MINIO_SECRET_KEY"`
	Bucket    string `env:"MINIO_BUCKET" envDefault:"digest-archive"`
	UseSSL    bool   `env:"MINIO_USE_SSL" envDefault:"false"`
	Region    string `env:"MINIO_REGION"`
}

// DigestConfig tunes digest aggregation and scheduling.
// Defaults mirror the long-standing production values.
type DigestConfig struct {
	MaxItems          int           `env:"DIGEST_MAX_ITEMS" envDefault:"10"`
	MaxAttempts       int           `env:"DIGEST_MAX_ATTEMPTS" envDefault:"3"`
	Cooldown          time.Duration `env:"DIGEST_COOLDOWN" envDefault:"24h"`
	SchedulerInterval time.Duration `env:"DIGEST_SCHEDULER_INTERVAL" envDefault:"6h"`
	PageSize          int           `env:"DIGEST_PAGE_SIZE" envDefault:"50"`
	TxMaxRetries      int           `env:"DIGEST_TX_MAX_RETRIES" envDefault:"5"`
}

// TrendConfig tunes trend severity banding (percent change thresholds).
type TrendConfig struct {
	CriticalPct float64 `env:"TREND_CRITICAL_PCT" envDefault:"30"`
	WarningPct  float64 `env:"TREND_WARNING_PCT" envDefault:"20"`
}

// SMTPConfig is the configuration for the email delivery channel.
type SMTPConfig struct {
	Host     string        `env:"SMTP_HOST"`
	Port     int           `env:"SMTP_PORT" envDefault:"587"`
	Username string        `env:"SMTP_USERNAME"`
	Password string        `env:"SMTP_PASSWORD"`
	From     string        `env:"SMTP_FROM"`
	UseTLS   bool          `env:"SMTP_USE_TLS" envDefault:"false"`
	Timeout  time.Duration `env:"SMTP_TIMEOUT" envDefault:"15s"`
}

// JWTConfig is the configuration for the JWT.
type JWTConfig struct {
	SecretKey string `env:"JWT_SECRET_KEY"`
}

// InternalConfig holds the shared key protecting internal endpoints.
type InternalConfig struct {
	InternalKey string `env:"INTERNAL_KEY"`
}

// DiscordConfig is the configuration for Discord webhook notifications.
type DiscordConfig struct {
	WebhookID    string `env:"DISCORD_WEBHOOK_ID"`
	WebhookToken string `env:"DISCORD_WEBHOOK_TOKEN"`
}

// Load loads the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.JWT.SecretKey == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if len(cfg.JWT.SecretKey) < 32 {
		return fmt.Errorf("JWT_SECRET_KEY must be at least 32 characters")
	}
	if cfg.InternalConfig.InternalKey == "" {
		return fmt.Errorf("INTERNAL_KEY is required")
	}
	if cfg.Digest.MaxItems < 1 {
		return fmt.Errorf("DIGEST_MAX_ITEMS must be positive")
	}
	if cfg.Digest.MaxAttempts < 1 {
		return fmt.Errorf("DIGEST_MAX_ATTEMPTS must be positive")
	}
	if cfg.Trend.WarningPct >= cfg.Trend.CriticalPct {
		return fmt.Errorf("TREND_WARNING_PCT must be below TREND_CRITICAL_PCT")
	}
	return nil
}
