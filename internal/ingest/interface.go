package ingest

import (
	"context"

	"aquasentry-srv/internal/model"
)

// UseCase drives the pipeline for one incoming reading: persist,
// evaluate, store alerts, resolve recipients, aggregate digests.
type UseCase interface {
	ProcessReading(ctx context.Context, input ProcessInput) (ProcessOutput, error)
}

// ProcessInput carries one pushed sensor reading.
type ProcessInput struct {
	Reading model.SensorReading
}

// ProcessOutput summarizes what the reading produced.
type ProcessOutput struct {
	Alerts []model.AlertEvent
}
