package repository

import (
	"context"

	"aquasentry-srv/internal/model"
)

// Repository stores sensor readings and serves the bounded history
// window used by trend detection.
type Repository interface {
	Create(ctx context.Context, reading model.SensorReading) error
	Recent(ctx context.Context, opts RecentOptions) ([]model.SensorReading, error)
}
