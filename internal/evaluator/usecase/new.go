package usecase

import (
	"aquasentry-srv/internal/evaluator"
	"aquasentry-srv/pkg/log"
)

type implUseCase struct {
	l     log.Logger
	bands evaluator.TrendBands
}

// New creates the threshold/trend evaluator.
func New(l log.Logger, bands evaluator.TrendBands) evaluator.UseCase {
	if bands.CriticalPct == 0 && bands.WarningPct == 0 {
		bands = evaluator.DefaultTrendBands()
	}
	return &implUseCase{
		l:     l,
		bands: bands,
	}
}
