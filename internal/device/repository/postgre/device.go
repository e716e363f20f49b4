package postgres

import (
	"context"
	"database/sql"

	"aquasentry-srv/internal/device/repository"
	"aquasentry-srv/internal/model"

	"github.com/aarondl/null/v8"
	"github.com/friendsofgo/errors"
)

const detailQuery = `SELECT id, name, location FROM devices WHERE id = $1`

func (r *implRegistry) Detail(ctx context.Context, id string) (model.Device, error) {
	var (
		dev      model.Device
		location null.String
	)

	err := r.db.QueryRowContext(ctx, detailQuery, id).Scan(&dev.ID, &dev.Name, &location)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Device{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.device.repository.postgres.Detail.Scan: %v", err)
		return model.Device{}, errors.Wrap(err, "query device")
	}

	dev.Location = location.Ptr()
	return dev, nil
}
