package postgres

import (
	"context"
	"fmt"
	"strings"

	"aquasentry-srv/internal/alert/repository"
	"aquasentry-srv/internal/model"

	"github.com/aarondl/null/v8"
	"github.com/friendsofgo/errors"
)

const insertQuery = `
	INSERT INTO alert_events
		(id, device_id, device_name, device_location, parameter, kind, severity,
		 value, threshold, trend_direction, message, recommended_action,
		 observed_at, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

func (r *implRepository) Create(ctx context.Context, event model.AlertEvent) error {
	_, err := r.db.ExecContext(ctx, insertQuery,
		event.ID,
		event.DeviceID,
		event.DeviceName,
		null.StringFromPtr(event.DeviceLocation),
		event.Parameter,
		event.Kind,
		event.Severity,
		event.Value,
		null.Float64FromPtr(event.Threshold),
		null.NewString(string(event.TrendDirection), event.TrendDirection != ""),
		event.Message,
		event.RecommendedAction,
		event.ObservedAt,
		event.CreatedAt,
	)
	if err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.Create.Exec: %v", err)
		return errors.Wrap(err, "insert alert event")
	}
	return nil
}

func (r *implRepository) Get(ctx context.Context, opts repository.GetOptions) ([]model.AlertEvent, int64, error) {
	where, args := buildWhere(opts.Filter)

	var total int64
	countQuery := "SELECT COUNT(*) FROM alert_events" + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.Get.Count: %v", err)
		return nil, 0, errors.Wrap(err, "count alert events")
	}

	listQuery := fmt.Sprintf(`
		SELECT id, device_id, device_name, device_location, parameter, kind, severity,
		       value, threshold, trend_direction, message, recommended_action,
		       observed_at, created_at
		FROM alert_events%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, opts.Limit, opts.Offset)

	rows, err := r.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.Get.Query: %v", err)
		return nil, 0, errors.Wrap(err, "query alert events")
	}
	defer rows.Close()

	var events []model.AlertEvent
	for rows.Next() {
		var (
			ev        model.AlertEvent
			location  null.String
			threshold null.Float64
			direction null.String
		)
		err := rows.Scan(
			&ev.ID, &ev.DeviceID, &ev.DeviceName, &location, &ev.Parameter,
			&ev.Kind, &ev.Severity, &ev.Value, &threshold, &direction,
			&ev.Message, &ev.RecommendedAction, &ev.ObservedAt, &ev.CreatedAt,
		)
		if err != nil {
			r.l.Errorf(ctx, "internal.alert.repository.postgres.Get.Scan: %v", err)
			return nil, 0, errors.Wrap(err, "scan alert event")
		}
		ev.DeviceLocation = location.Ptr()
		ev.Threshold = threshold.Ptr()
		ev.TrendDirection = model.TrendDirection(direction.String)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.Wrap(err, "iterate alert events")
	}

	return events, total, nil
}

func buildWhere(f repository.GetFilter) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)
	if f.DeviceID != "" {
		args = append(args, f.DeviceID)
		conds = append(conds, fmt.Sprintf("device_id = $%d", len(args)))
	}
	if f.Parameter != "" {
		args = append(args, f.Parameter)
		conds = append(conds, fmt.Sprintf("parameter = $%d", len(args)))
	}
	if f.Severity != "" {
		args = append(args, f.Severity)
		conds = append(conds, fmt.Sprintf("severity = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
