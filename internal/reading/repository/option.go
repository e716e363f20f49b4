package repository

import (
	"time"

	"aquasentry-srv/internal/model"
)

// DefaultRecentLimit caps the history window for trend checks.
const DefaultRecentLimit = 10

// RecentOptions selects the history window for one device/parameter.
type RecentOptions struct {
	DeviceID  string
	Parameter model.Parameter
	Since     time.Time
	Until     time.Time
	Limit     int
}
