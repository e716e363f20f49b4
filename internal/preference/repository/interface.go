package repository

import (
	"context"

	"aquasentry-srv/internal/model"
)

// Repository reads notification preference snapshots. The data is
// owned by the user-management collaborator and is read-only here.
type Repository interface {
	ListEnabled(ctx context.Context) ([]model.NotificationPreference, error)
}
