package recipient

import (
	"context"

	"aquasentry-srv/internal/model"
)

// UseCase resolves which recipients should receive a given alert event.
type UseCase interface {
	Resolve(ctx context.Context, event model.AlertEvent) ([]Recipient, error)
}

// Recipient is one matched delivery target.
type Recipient struct {
	UserID string
	Email  string
}
