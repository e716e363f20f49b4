package model

// NotificationPreference is one operator's delivery preference snapshot.
// Owned by the user-management collaborator; read-only here.
// Empty Parameters/DeviceIDs means "no filter, match all".
type NotificationPreference struct {
	UserID            string      `json:"user_id"`
	Email             string      `json:"email"`
	EmailEnabled      bool        `json:"email_enabled"`
	Severities        []Severity  `json:"severities"`
	Parameters        []Parameter `json:"parameters"`
	DeviceIDs         []string    `json:"device_ids"`
	QuietHoursEnabled bool        `json:"quiet_hours_enabled"`
	QuietHoursStart   string      `json:"quiet_hours_start,omitempty"` // "HH:MM"
	QuietHoursEnd     string      `json:"quiet_hours_end,omitempty"`   // "HH:MM"
	Timezone          string      `json:"timezone,omitempty"`          // IANA name, UTC when empty
}

// WantsSeverity reports whether the preference subscribes to the severity.
func (p NotificationPreference) WantsSeverity(s Severity) bool {
	for _, sev := range p.Severities {
		if sev == s {
			return true
		}
	}
	return false
}

// WantsParameter reports whether the preference subscribes to the parameter.
func (p NotificationPreference) WantsParameter(param Parameter) bool {
	if len(p.Parameters) == 0 {
		return true
	}
	for _, pp := range p.Parameters {
		if pp == param {
			return true
		}
	}
	return false
}

// WantsDevice reports whether the preference subscribes to the device.
func (p NotificationPreference) WantsDevice(deviceID string) bool {
	if len(p.DeviceIDs) == 0 {
		return true
	}
	for _, id := range p.DeviceIDs {
		if id == deviceID {
			return true
		}
	}
	return false
}
