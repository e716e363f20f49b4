package model

import "time"

// Severity classifies how serious an alert is.
type Severity string

const (
	SeverityAdvisory Severity = "advisory"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// IsValid checks if the severity is a known value.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityAdvisory, SeverityWarning, SeverityCritical:
		return true
	default:
		return false
	}
}

// String returns the string representation of the severity.
func (s Severity) String() string {
	return string(s)
}

// AlertKind distinguishes threshold breaches from trend anomalies.
type AlertKind string

const (
	AlertKindThreshold AlertKind = "threshold"
	AlertKindTrend     AlertKind = "trend"
)

// TrendDirection is the direction of a detected trend.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
)

// AlertCandidate is a detected anomaly before it is assigned identity.
// Produced by the evaluator, consumed by the alert store.
type AlertCandidate struct {
	DeviceID          string
	Parameter         Parameter
	Kind              AlertKind
	Severity          Severity
	Value             float64
	Threshold         *float64 // breached bound for threshold alerts, nil for trends
	TrendDirection    TrendDirection
	Message           string
	RecommendedAction string
	ObservedAt        time.Time
}

// Validate reports the first structural problem with the candidate.
func (c AlertCandidate) Validate() error {
	if c.DeviceID == "" {
		return ErrMissingRequiredField("device_id")
	}
	if !c.Parameter.IsValid() {
		return ErrInvalidValue("parameter", string(c.Parameter))
	}
	if !c.Severity.IsValid() {
		return ErrInvalidValue("severity", string(c.Severity))
	}
	if c.Kind != AlertKindThreshold && c.Kind != AlertKindTrend {
		return ErrInvalidValue("kind", string(c.Kind))
	}
	if c.Message == "" {
		return ErrMissingRequiredField("message")
	}
	return nil
}

// AlertEvent is a persisted, immutable anomaly record.
// Status transitions (acknowledge/resolve of individual alerts) are
// owned by the CRUD collaborator, not this service.
type AlertEvent struct {
	ID                string         `json:"id"`
	DeviceID          string         `json:"device_id"`
	DeviceName        string         `json:"device_name"`
	DeviceLocation    *string        `json:"device_location,omitempty"`
	Parameter         Parameter      `json:"parameter"`
	Kind              AlertKind      `json:"kind"`
	Severity          Severity       `json:"severity"`
	Value             float64        `json:"value"`
	Threshold         *float64       `json:"threshold,omitempty"`
	TrendDirection    TrendDirection `json:"trend_direction,omitempty"`
	Message           string         `json:"message"`
	RecommendedAction string         `json:"recommended_action"`
	ObservedAt        time.Time      `json:"observed_at"`
	CreatedAt         time.Time      `json:"created_at"`
}
