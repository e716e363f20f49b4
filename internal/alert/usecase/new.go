package usecase

import (
	"time"

	"aquasentry-srv/internal/alert"
	"aquasentry-srv/internal/alert/repository"
	deviceRepo "aquasentry-srv/internal/device/repository"
	pkgLog "aquasentry-srv/pkg/log"
)

type implUseCase struct {
	l       pkgLog.Logger
	repo    repository.Repository
	devices deviceRepo.Registry
	clock   func() time.Time
}

var _ alert.UseCase = &implUseCase{}

func New(l pkgLog.Logger, repo repository.Repository, devices deviceRepo.Registry) alert.UseCase {
	return &implUseCase{
		l:       l,
		repo:    repo,
		devices: devices,
		clock:   time.Now,
	}
}

// SetClock overrides the time source. Tests only.
func (uc *implUseCase) SetClock(clock func() time.Time) {
	uc.clock = clock
}
