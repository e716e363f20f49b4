package usecase

import (
	"time"

	"aquasentry-srv/internal/preference/repository"
	"aquasentry-srv/internal/recipient"
	pkgLog "aquasentry-srv/pkg/log"
)

type implUseCase struct {
	l     pkgLog.Logger
	prefs repository.Repository
	clock func() time.Time
}

var _ recipient.UseCase = &implUseCase{}

func New(l pkgLog.Logger, prefs repository.Repository) *implUseCase {
	return &implUseCase{
		l:     l,
		prefs: prefs,
		clock: time.Now,
	}
}

// SetClock overrides the time source. Tests only.
func (uc *implUseCase) SetClock(clock func() time.Time) {
	uc.clock = clock
}
