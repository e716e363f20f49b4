package evaluator

import "aquasentry-srv/internal/model"

// EvaluateInput is the evaluation request.
// History holds recent readings for the same device and parameter,
// ordered oldest first, already bounded by the trend window.
type EvaluateInput struct {
	Reading model.SensorReading
	Config  model.ThresholdConfig
	History []model.SensorReading
}

// TrendBands configures trend severity banding by absolute percent change.
type TrendBands struct {
	CriticalPct float64
	WarningPct  float64
}

// DefaultTrendBands are the long-standing production bands.
func DefaultTrendBands() TrendBands {
	return TrendBands{CriticalPct: 30, WarningPct: 20}
}
