package httpserver

import (
	"database/sql"
	"errors"

	"aquasentry-srv/internal/alert"
	"aquasentry-srv/internal/digest"
	"aquasentry-srv/internal/ingest"
	"aquasentry-srv/internal/scheduler"
	"aquasentry-srv/internal/threshold"
	"aquasentry-srv/pkg/discord"
	"aquasentry-srv/pkg/jwt"
	"aquasentry-srv/pkg/log"
	pkgRedis "aquasentry-srv/pkg/redis"

	"github.com/gin-gonic/gin"
)

// HTTPServer represents the HTTP server with all dependencies.
// New() only wires dependencies and validates them.
// Run() (in httpserver.go) starts the scheduler and HTTP serving.
type HTTPServer struct {
	// Server configuration
	gin  *gin.Engine
	l    log.Logger
	port int
	mode string

	// Pipeline usecases
	ingestUC    ingest.UseCase
	digestUC    digest.UseCase
	alertUC     alert.UseCase
	thresholdUC threshold.UseCase

	// Background services
	scheduler *scheduler.Scheduler

	// Auth & security
	jwtV        *jwt.Validator
	internalKey string

	// External services
	db      *sql.DB
	redis   pkgRedis.IRedis
	discord discord.IDiscord
}

// Config is the constructor input for HTTPServer.
type Config struct {
	Port int
	Mode string

	IngestUC    ingest.UseCase
	DigestUC    digest.UseCase
	AlertUC     alert.UseCase
	ThresholdUC threshold.UseCase

	Scheduler *scheduler.Scheduler

	JWTValidator *jwt.Validator
	InternalKey  string

	DB      *sql.DB
	Redis   pkgRedis.IRedis
	Discord discord.IDiscord
}

// New creates a new HTTPServer instance with the provided configuration.
// No goroutines start here; use (*HTTPServer).Run().
func New(l log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		gin:  gin.New(),
		l:    l,
		port: cfg.Port,
		mode: cfg.Mode,

		ingestUC:    cfg.IngestUC,
		digestUC:    cfg.DigestUC,
		alertUC:     cfg.AlertUC,
		thresholdUC: cfg.ThresholdUC,

		scheduler: cfg.Scheduler,

		jwtV:        cfg.JWTValidator,
		internalKey: cfg.InternalKey,

		db:      cfg.DB,
		redis:   cfg.Redis,
		discord: cfg.Discord,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

// validate ensures all required dependencies are provided.
func (s *HTTPServer) validate() error {
	if s.l == nil {
		return errors.New("logger is required")
	}
	if s.port == 0 {
		return errors.New("port is required")
	}
	if s.ingestUC == nil || s.digestUC == nil || s.alertUC == nil || s.thresholdUC == nil {
		return errors.New("pipeline usecases are required")
	}
	if s.jwtV == nil {
		return errors.New("JWT validator is required")
	}
	if s.internalKey == "" {
		return errors.New("internal key is required")
	}
	if s.db == nil {
		return errors.New("database handle is required")
	}
	if s.redis == nil {
		return errors.New("Redis client is required")
	}

	return nil
}
