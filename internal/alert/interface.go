package alert

import (
	"context"

	"aquasentry-srv/internal/model"
	"aquasentry-srv/pkg/paginator"
)

// UseCase persists alert events and serves the alert history.
type UseCase interface {
	Create(ctx context.Context, input CreateInput) (model.AlertEvent, error)
	Get(ctx context.Context, input GetInput) (GetOutput, error)
}

// GetOutput is one page of alert history.
type GetOutput struct {
	Alerts    []model.AlertEvent
	Paginator paginator.Paginator
}
