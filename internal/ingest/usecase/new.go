package usecase

import (
	"aquasentry-srv/internal/alert"
	"aquasentry-srv/internal/digest"
	"aquasentry-srv/internal/evaluator"
	"aquasentry-srv/internal/ingest"
	readingRepo "aquasentry-srv/internal/reading/repository"
	"aquasentry-srv/internal/recipient"
	"aquasentry-srv/internal/threshold"
	pkgLog "aquasentry-srv/pkg/log"
)

type implUseCase struct {
	l          pkgLog.Logger
	readings   readingRepo.Repository
	thresholds threshold.UseCase
	evaluator  evaluator.UseCase
	alerts     alert.UseCase
	recipients recipient.UseCase
	digests    digest.UseCase
}

var _ ingest.UseCase = &implUseCase{}

func New(
	l pkgLog.Logger,
	readings readingRepo.Repository,
	thresholds threshold.UseCase,
	ev evaluator.UseCase,
	alerts alert.UseCase,
	recipients recipient.UseCase,
	digests digest.UseCase,
) ingest.UseCase {
	return &implUseCase{
		l:          l,
		readings:   readings,
		thresholds: thresholds,
		evaluator:  ev,
		alerts:     alerts,
		recipients: recipients,
		digests:    digests,
	}
}
