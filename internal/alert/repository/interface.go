package repository

import (
	"context"

	"aquasentry-srv/internal/model"
)

// Repository is the append-only alert event store.
type Repository interface {
	Create(ctx context.Context, event model.AlertEvent) error
	Get(ctx context.Context, opts GetOptions) ([]model.AlertEvent, int64, error)
}
