package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"aquasentry-srv/internal/model"
	"aquasentry-srv/internal/recipient"
)

// Resolve matches the event against every email-enabled preference
// snapshot. A recipient is included when the severity is subscribed,
// the parameter and device filters pass, and the recipient is not
// inside a quiet-hours window at resolution time.
func (uc *implUseCase) Resolve(ctx context.Context, event model.AlertEvent) ([]recipient.Recipient, error) {
	prefs, err := uc.prefs.ListEnabled(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "internal.recipient.usecase.Resolve.ListEnabled: %v", err)
		return nil, err
	}

	now := uc.clock()

	var out []recipient.Recipient
	for _, p := range prefs {
		if !p.WantsSeverity(event.Severity) {
			continue
		}
		if !p.WantsParameter(event.Parameter) {
			continue
		}
		if !p.WantsDevice(event.DeviceID) {
			continue
		}
		if uc.inQuietHours(ctx, p, now) {
			continue
		}
		out = append(out, recipient.Recipient{
			UserID: p.UserID,
			Email:  p.Email,
		})
	}

	return out, nil
}

// inQuietHours reports whether now falls inside the preference's quiet
// window, evaluated at minute precision in the recipient's timezone.
// Windows may wrap midnight ("22:00".."07:00"). A malformed window is
// treated as disabled so a bad row never mutes a recipient forever.
func (uc *implUseCase) inQuietHours(ctx context.Context, p model.NotificationPreference, now time.Time) bool {
	if !p.QuietHoursEnabled {
		return false
	}

	start, okStart := parseClock(p.QuietHoursStart)
	end, okEnd := parseClock(p.QuietHoursEnd)
	if !okStart || !okEnd {
		uc.l.Warnf(ctx, "internal.recipient.usecase.inQuietHours.ParseWindow: user=%s start=%q end=%q",
			p.UserID, p.QuietHoursStart, p.QuietHoursEnd)
		return false
	}

	loc := time.UTC
	if p.Timezone != "" {
		l, err := time.LoadLocation(p.Timezone)
		if err != nil {
			uc.l.Warnf(ctx, "internal.recipient.usecase.inQuietHours.LoadLocation: user=%s tz=%q: %v",
				p.UserID, p.Timezone, err)
		} else {
			loc = l
		}
	}

	local := now.In(loc)
	cur := local.Hour()*60 + local.Minute()

	if start == end {
		// Degenerate window covers nothing.
		return false
	}
	if start < end {
		return cur >= start && cur < end
	}
	// Wrapping window, e.g. 22:00..07:00.
	return cur >= start || cur < end
}

// parseClock parses "HH:MM" into minutes since midnight.
func parseClock(s string) (int, bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
