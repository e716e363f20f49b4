package model

// ParameterThreshold holds the warning and critical bounds for one parameter.
// Nil bounds are not checked.
type ParameterThreshold struct {
	WarningMin  *float64 `json:"warning_min,omitempty"`
	WarningMax  *float64 `json:"warning_max,omitempty"`
	CriticalMin *float64 `json:"critical_min,omitempty"`
	CriticalMax *float64 `json:"critical_max,omitempty"`
	Unit        string   `json:"unit"`
}

// TrendDetection configures relative-change trend alerts.
type TrendDetection struct {
	Enabled             bool    `json:"enabled"`
	ThresholdPercentage float64 `json:"threshold_percentage"`
	TimeWindowMinutes   int     `json:"time_window_minutes"`
}

// ThresholdConfig is the operator-writable evaluation configuration document.
// Read-mostly; loaded per evaluation.
type ThresholdConfig struct {
	Parameters     map[Parameter]ParameterThreshold `json:"parameters"`
	TrendDetection TrendDetection                   `json:"trend_detection"`
}

func f(v float64) *float64 { return &v }

// DefaultThresholdConfig returns the built-in fallback used when the
// configuration store is unavailable.
func DefaultThresholdConfig() ThresholdConfig {
	return ThresholdConfig{
		Parameters: map[Parameter]ParameterThreshold{
			ParameterTDS: {
				WarningMin:  f(0),
				WarningMax:  f(500),
				CriticalMin: f(0),
				CriticalMax: f(1000),
				Unit:        "ppm",
			},
			ParameterPH: {
				WarningMin:  f(6.0),
				WarningMax:  f(8.5),
				CriticalMin: f(5.5),
				CriticalMax: f(9.0),
				Unit:        "pH",
			},
			ParameterTurbidity: {
				WarningMin:  f(0),
				WarningMax:  f(5),
				CriticalMin: f(0),
				CriticalMax: f(10),
				Unit:        "NTU",
			},
		},
		TrendDetection: TrendDetection{
			Enabled:             true,
			ThresholdPercentage: 15,
			TimeWindowMinutes:   30,
		},
	}
}
