package repository

import (
	"context"
	"errors"

	"aquasentry-srv/internal/model"
)

// ErrNotFound is returned when no configuration has been stored yet.
var ErrNotFound = errors.New("threshold configuration not found")

// Repository persists the single active threshold configuration.
type Repository interface {
	Detail(ctx context.Context) (model.ThresholdConfig, error)
	Upsert(ctx context.Context, cfg model.ThresholdConfig) error
}
