package usecase

import (
	"aquasentry-srv/internal/threshold"
	"aquasentry-srv/internal/threshold/repository"
	pkgLog "aquasentry-srv/pkg/log"
)

type implUseCase struct {
	l    pkgLog.Logger
	repo repository.Repository
}

var _ threshold.UseCase = &implUseCase{}

func New(l pkgLog.Logger, repo repository.Repository) threshold.UseCase {
	return &implUseCase{
		l:    l,
		repo: repo,
	}
}
