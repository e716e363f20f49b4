package threshold

import (
	"context"

	"aquasentry-srv/internal/model"
)

// UseCase serves and updates the threshold configuration used by the
// evaluator. Reads always succeed: when the store is unavailable the
// compiled-in defaults are returned so evaluation never stalls.
type UseCase interface {
	Current(ctx context.Context) model.ThresholdConfig
	Update(ctx context.Context, input UpdateInput) (model.ThresholdConfig, error)
}

// UpdateInput replaces the active threshold configuration.
type UpdateInput struct {
	Scope  model.Scope
	Config model.ThresholdConfig
}
