package postgres

import (
	"context"

	"aquasentry-srv/internal/model"
	"aquasentry-srv/internal/reading/repository"

	"github.com/friendsofgo/errors"
)

const (
	insertQuery = `
		INSERT INTO sensor_readings (device_id, parameter, value, observed_at)
		VALUES ($1, $2, $3, $4)`

	recentQuery = `
		SELECT device_id, parameter, value, observed_at
		FROM sensor_readings
		WHERE device_id = $1 AND parameter = $2
		  AND observed_at >= $3 AND observed_at < $4
		ORDER BY observed_at DESC
		LIMIT $5`
)

func (r *implRepository) Create(ctx context.Context, reading model.SensorReading) error {
	_, err := r.db.ExecContext(ctx, insertQuery,
		reading.DeviceID, reading.Parameter, reading.Value, reading.ObservedAt)
	if err != nil {
		r.l.Errorf(ctx, "internal.reading.repository.postgres.Create.Exec: %v", err)
		return errors.Wrap(err, "insert reading")
	}
	return nil
}

// Recent returns the newest readings in the window, re-ordered oldest first.
func (r *implRepository) Recent(ctx context.Context, opts repository.RecentOptions) ([]model.SensorReading, error) {
	limit := opts.Limit
	if limit <= 0 || limit > repository.DefaultRecentLimit {
		limit = repository.DefaultRecentLimit
	}

	rows, err := r.db.QueryContext(ctx, recentQuery,
		opts.DeviceID, opts.Parameter, opts.Since, opts.Until, limit)
	if err != nil {
		r.l.Errorf(ctx, "internal.reading.repository.postgres.Recent.Query: %v", err)
		return nil, errors.Wrap(err, "query recent readings")
	}
	defer rows.Close()

	var res []model.SensorReading
	for rows.Next() {
		var rd model.SensorReading
		if err := rows.Scan(&rd.DeviceID, &rd.Parameter, &rd.Value, &rd.ObservedAt); err != nil {
			r.l.Errorf(ctx, "internal.reading.repository.postgres.Recent.Scan: %v", err)
			return nil, errors.Wrap(err, "scan reading")
		}
		res = append(res, rd)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate readings")
	}

	// Reverse into chronological order for the evaluator.
	for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
		res[i], res[j] = res[j], res[i]
	}

	return res, nil
}
