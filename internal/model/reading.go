package model

import (
	"math"
	"time"
)

// Parameter is a measured water-quality parameter.
type Parameter string

const (
	ParameterTDS       Parameter = "tds"
	ParameterPH        Parameter = "ph"
	ParameterTurbidity Parameter = "turbidity"
)

// IsValid checks if the parameter is a known value.
func (p Parameter) IsValid() bool {
	switch p {
	case ParameterTDS, ParameterPH, ParameterTurbidity:
		return true
	default:
		return false
	}
}

// String returns the string representation of the parameter.
func (p Parameter) String() string {
	return string(p)
}

// SensorReading is a single measurement pushed by the telemetry collaborator.
// Immutable once produced.
type SensorReading struct {
	DeviceID   string    `json:"device_id"`
	Parameter  Parameter `json:"parameter"`
	Value      float64   `json:"value"`
	ObservedAt time.Time `json:"observed_at"`
}

// Validate reports the first structural problem with the reading.
// Telemetry is lossy by nature: callers drop and log invalid readings
// rather than failing the pipeline.
func (r SensorReading) Validate() error {
	if r.DeviceID == "" {
		return ErrMissingRequiredField("device_id")
	}
	if !r.Parameter.IsValid() {
		return ErrInvalidValue("parameter", string(r.Parameter))
	}
	if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
		return ErrInvalidValue("value", "must be finite")
	}
	if r.ObservedAt.IsZero() {
		return ErrMissingRequiredField("observed_at")
	}
	return nil
}
