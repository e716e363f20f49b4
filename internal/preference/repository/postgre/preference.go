package postgres

import (
	"context"

	"aquasentry-srv/internal/model"

	"github.com/aarondl/null/v8"
	"github.com/friendsofgo/errors"
	"github.com/lib/pq"
)

const listEnabledQuery = `
	SELECT user_id, email, severities, parameters, device_ids,
	       quiet_hours_enabled, quiet_hours_start, quiet_hours_end, timezone
	FROM notification_preferences
	WHERE email_enabled = TRUE`

// ListEnabled returns the preference snapshot of every recipient with
// email delivery switched on.
func (r *implRepository) ListEnabled(ctx context.Context) ([]model.NotificationPreference, error) {
	rows, err := r.db.QueryContext(ctx, listEnabledQuery)
	if err != nil {
		r.l.Errorf(ctx, "internal.preference.repository.postgres.ListEnabled.Query: %v", err)
		return nil, errors.Wrap(err, "query preferences")
	}
	defer rows.Close()

	var prefs []model.NotificationPreference
	for rows.Next() {
		var (
			p          model.NotificationPreference
			severities pq.StringArray
			parameters pq.StringArray
			deviceIDs  pq.StringArray
			quietStart null.String
			quietEnd   null.String
			timezone   null.String
		)
		err := rows.Scan(
			&p.UserID, &p.Email, &severities, &parameters, &deviceIDs,
			&p.QuietHoursEnabled, &quietStart, &quietEnd, &timezone,
		)
		if err != nil {
			r.l.Errorf(ctx, "internal.preference.repository.postgres.ListEnabled.Scan: %v", err)
			return nil, errors.Wrap(err, "scan preference")
		}

		p.EmailEnabled = true
		for _, s := range severities {
			p.Severities = append(p.Severities, model.Severity(s))
		}
		for _, s := range parameters {
			p.Parameters = append(p.Parameters, model.Parameter(s))
		}
		p.DeviceIDs = deviceIDs
		p.QuietHoursStart = quietStart.String
		p.QuietHoursEnd = quietEnd.String
		p.Timezone = timezone.String

		prefs = append(prefs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate preferences")
	}

	return prefs, nil
}
