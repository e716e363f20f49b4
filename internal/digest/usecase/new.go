package usecase

import (
	"time"

	"aquasentry-srv/internal/digest"
	"aquasentry-srv/internal/digest/repository"
	pkgLog "aquasentry-srv/pkg/log"
	"aquasentry-srv/pkg/mail"
	"aquasentry-srv/pkg/minio"
	"aquasentry-srv/pkg/token"
)

const (
	defaultMaxItems    = 10
	defaultMaxAttempts = 3
	defaultCooldown    = 24 * time.Hour
	defaultPageSize    = 50
)

// Config tunes digest aggregation and dispatch.
type Config struct {
	MaxItems      int
	MaxAttempts   int
	Cooldown      time.Duration
	PageSize      int64
	PublicBaseURL string
}

func (c *Config) adjust() {
	if c.MaxItems <= 0 {
		c.MaxItems = defaultMaxItems
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = defaultMaxAttempts
	}
	if c.Cooldown <= 0 {
		c.Cooldown = defaultCooldown
	}
	if c.PageSize <= 0 {
		c.PageSize = defaultPageSize
	}
}

type implUseCase struct {
	l        pkgLog.Logger
	repo     repository.Repository
	notifier mail.Notifier
	archiver minio.Archiver // nil when archiving is disabled
	cfg      Config
	clock    func() time.Time
	newToken func() (string, error)
}

var _ digest.UseCase = &implUseCase{}

func New(l pkgLog.Logger, repo repository.Repository, notifier mail.Notifier, archiver minio.Archiver, cfg Config) *implUseCase {
	cfg.adjust()
	return &implUseCase{
		l:        l,
		repo:     repo,
		notifier: notifier,
		archiver: archiver,
		cfg:      cfg,
		clock:    time.Now,
		newToken: token.New,
	}
}

// SetClock overrides the time source. Tests only.
func (uc *implUseCase) SetClock(clock func() time.Time) {
	uc.clock = clock
}
