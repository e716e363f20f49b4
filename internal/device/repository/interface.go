package repository

import (
	"context"
	"errors"

	"aquasentry-srv/internal/model"
)

// ErrNotFound is returned when the device is not in the registry.
var ErrNotFound = errors.New("device not found")

// Registry is the read-side of the externally-owned device registry.
type Registry interface {
	Detail(ctx context.Context, id string) (model.Device, error)
}
