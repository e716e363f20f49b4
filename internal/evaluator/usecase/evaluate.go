package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"aquasentry-srv/internal/evaluator"
	"aquasentry-srv/internal/model"
)

// trendMinSamples is the minimum history size for a trend check,
// including the current reading.
const trendMinSamples = 2

func (uc *implUseCase) Evaluate(ctx context.Context, input evaluator.EvaluateInput) []model.AlertCandidate {
	reading := input.Reading
	if err := reading.Validate(); err != nil {
		uc.l.Warnf(ctx, "internal.evaluator.usecase.Evaluate.Validate: dropping reading: %v", err)
		return nil
	}

	var candidates []model.AlertCandidate

	if c := uc.checkThreshold(reading, input.Config); c != nil {
		candidates = append(candidates, *c)
	}

	// A reading can legitimately produce both a threshold and a trend
	// candidate for the same parameter; they stay independent.
	if input.Config.TrendDetection.Enabled {
		if c := uc.checkTrend(reading, input.Config.TrendDetection, input.History); c != nil {
			candidates = append(candidates, *c)
		}
	}

	return candidates
}

// checkThreshold applies bounds in priority order:
// criticalMax > criticalMin > warningMax > warningMin.
// The first breached bound wins and fixes the severity.
func (uc *implUseCase) checkThreshold(r model.SensorReading, cfg model.ThresholdConfig) *model.AlertCandidate {
	th, ok := cfg.Parameters[r.Parameter]
	if !ok {
		return nil
	}

	switch {
	case th.CriticalMax != nil && r.Value > *th.CriticalMax:
		return uc.thresholdCandidate(r, th, model.SeverityCritical, *th.CriticalMax, "above")
	case th.CriticalMin != nil && r.Value < *th.CriticalMin:
		return uc.thresholdCandidate(r, th, model.SeverityCritical, *th.CriticalMin, "below")
	case th.WarningMax != nil && r.Value > *th.WarningMax:
		return uc.thresholdCandidate(r, th, model.SeverityWarning, *th.WarningMax, "above")
	case th.WarningMin != nil && r.Value < *th.WarningMin:
		return uc.thresholdCandidate(r, th, model.SeverityWarning, *th.WarningMin, "below")
	default:
		return nil
	}
}

func (uc *implUseCase) thresholdCandidate(r model.SensorReading, th model.ParameterThreshold, sev model.Severity, bound float64, side string) *model.AlertCandidate {
	b := bound
	return &model.AlertCandidate{
		DeviceID:          r.DeviceID,
		Parameter:         r.Parameter,
		Kind:              model.AlertKindThreshold,
		Severity:          sev,
		Value:             r.Value,
		Threshold:         &b,
		Message:           fmt.Sprintf("%s reading %.2f %s is %s the %s limit of %.2f %s", parameterLabel(r.Parameter), r.Value, th.Unit, side, sev, bound, th.Unit),
		RecommendedAction: recommendedAction(r.Parameter, sev),
		ObservedAt:        r.ObservedAt,
	}
}

// checkTrend compares the current value against the earliest reading
// inside the window. Requires at least two samples.
func (uc *implUseCase) checkTrend(r model.SensorReading, td model.TrendDetection, history []model.SensorReading) *model.AlertCandidate {
	window := time.Duration(td.TimeWindowMinutes) * time.Minute
	cutoff := r.ObservedAt.Add(-window)

	var earliest *model.SensorReading
	samples := 1 // current reading
	for i := range history {
		h := history[i]
		if h.Parameter != r.Parameter || h.DeviceID != r.DeviceID {
			continue
		}
		if h.ObservedAt.Before(cutoff) || h.ObservedAt.After(r.ObservedAt) {
			continue
		}
		samples++
		if earliest == nil || h.ObservedAt.Before(earliest.ObservedAt) {
			earliest = &h
		}
	}
	if earliest == nil || samples < trendMinSamples {
		return nil
	}
	if earliest.Value == 0 {
		// Relative change is undefined from a zero baseline.
		return nil
	}

	changeRate := (r.Value - earliest.Value) / earliest.Value * 100
	if math.Abs(changeRate) < td.ThresholdPercentage {
		return nil
	}

	direction := model.TrendIncreasing
	if changeRate < 0 {
		direction = model.TrendDecreasing
	}

	sev := model.SeverityAdvisory
	switch {
	case math.Abs(changeRate) > uc.bands.CriticalPct:
		sev = model.SeverityCritical
	case math.Abs(changeRate) > uc.bands.WarningPct:
		sev = model.SeverityWarning
	}

	return &model.AlertCandidate{
		DeviceID:          r.DeviceID,
		Parameter:         r.Parameter,
		Kind:              model.AlertKindTrend,
		Severity:          sev,
		Value:             r.Value,
		TrendDirection:    direction,
		Message:           fmt.Sprintf("%s changed %.1f%% (%s) over the last %d minutes", parameterLabel(r.Parameter), changeRate, direction, td.TimeWindowMinutes),
		RecommendedAction: recommendedAction(r.Parameter, sev),
		ObservedAt:        r.ObservedAt,
	}
}

func parameterLabel(p model.Parameter) string {
	switch p {
	case model.ParameterTDS:
		return "TDS"
	case model.ParameterPH:
		return "pH"
	case model.ParameterTurbidity:
		return "Turbidity"
	default:
		return string(p)
	}
}

func recommendedAction(p model.Parameter, sev model.Severity) string {
	if sev == model.SeverityAdvisory {
		return "Monitor the parameter; no immediate action required."
	}
	switch p {
	case model.ParameterTDS:
		return "Inspect the filtration membrane and verify the dosing system."
	case model.ParameterPH:
		return "Check the pH dosing pump and recalibrate the pH probe."
	case model.ParameterTurbidity:
		return "Backwash the filter and inspect the intake for contamination."
	default:
		return "Inspect the device and verify sensor calibration."
	}
}
