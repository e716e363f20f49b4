package usecase

import (
	"context"
	"testing"
	"time"

	"aquasentry-srv/internal/evaluator"
	"aquasentry-srv/internal/model"
)

var noopLogger = testLogger{}

type testLogger struct{}

func (testLogger) Debug(ctx context.Context, arg ...any)                   {}
func (testLogger) Debugf(ctx context.Context, template string, arg ...any) {}
func (testLogger) Info(ctx context.Context, arg ...any)                    {}
func (testLogger) Infof(ctx context.Context, template string, arg ...any)  {}
func (testLogger) Warn(ctx context.Context, arg ...any)                    {}
func (testLogger) Warnf(ctx context.Context, template string, arg ...any)  {}
func (testLogger) Error(ctx context.Context, arg ...any)                   {}
func (testLogger) Errorf(ctx context.Context, template string, arg ...any) {}
func (testLogger) Fatal(ctx context.Context, arg ...any)                   {}
func (testLogger) Fatalf(ctx context.Context, template string, arg ...any) {}

func phReading(value float64, at time.Time) model.SensorReading {
	return model.SensorReading{
		DeviceID:   "dev-1",
		Parameter:  model.ParameterPH,
		Value:      value,
		ObservedAt: at,
	}
}

func TestEvaluate_ThresholdBanding(t *testing.T) {
	uc := New(noopLogger, evaluator.DefaultTrendBands())
	cfg := model.DefaultThresholdConfig()
	cfg.TrendDetection.Enabled = false
	now := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		value         float64
		wantCount     int
		wantSeverity  model.Severity
		wantThreshold float64
	}{
		{name: "above critical max", value: 9.2, wantCount: 1, wantSeverity: model.SeverityCritical, wantThreshold: 9.0},
		{name: "above warning max", value: 8.7, wantCount: 1, wantSeverity: model.SeverityWarning, wantThreshold: 8.5},
		{name: "below critical min", value: 5.2, wantCount: 1, wantSeverity: model.SeverityCritical, wantThreshold: 5.5},
		{name: "below warning min", value: 5.8, wantCount: 1, wantSeverity: model.SeverityWarning, wantThreshold: 6.0},
		{name: "in range", value: 7.0, wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := uc.Evaluate(context.Background(), evaluator.EvaluateInput{
				Reading: phReading(tt.value, now),
				Config:  cfg,
			})
			if len(got) != tt.wantCount {
				t.Fatalf("Evaluate() returned %d candidates, want %d", len(got), tt.wantCount)
			}
			if tt.wantCount == 0 {
				return
			}
			c := got[0]
			if c.Kind != model.AlertKindThreshold {
				t.Errorf("kind = %s, want threshold", c.Kind)
			}
			if c.Severity != tt.wantSeverity {
				t.Errorf("severity = %s, want %s", c.Severity, tt.wantSeverity)
			}
			if c.Threshold == nil || *c.Threshold != tt.wantThreshold {
				t.Errorf("threshold = %v, want %v", c.Threshold, tt.wantThreshold)
			}
		})
	}
}

func TestEvaluate_TrendBanding(t *testing.T) {
	uc := New(noopLogger, evaluator.DefaultTrendBands())
	cfg := model.DefaultThresholdConfig()
	now := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)

	history := func(baseline float64) []model.SensorReading {
		return []model.SensorReading{
			phReading(baseline, now.Add(-20*time.Minute)),
			phReading(baseline+0.1, now.Add(-10*time.Minute)),
		}
	}

	tests := []struct {
		name          string
		value         float64
		baseline      float64
		wantTrend     bool
		wantSeverity  model.Severity
		wantDirection model.TrendDirection
	}{
		// 6.0 -> 8.1 is +35%
		{name: "critical increase", value: 8.1, baseline: 6.0, wantTrend: true, wantSeverity: model.SeverityCritical, wantDirection: model.TrendIncreasing},
		// 6.0 -> 7.5 is +25%
		{name: "warning increase", value: 7.5, baseline: 6.0, wantTrend: true, wantSeverity: model.SeverityWarning, wantDirection: model.TrendIncreasing},
		// 8.0 -> 6.6 is -17.5%
		{name: "advisory decrease", value: 6.6, baseline: 8.0, wantTrend: true, wantSeverity: model.SeverityAdvisory, wantDirection: model.TrendDecreasing},
		// 7.0 -> 7.2 is ~+2.9%, below the 15% detection threshold
		{name: "below detection threshold", value: 7.2, baseline: 7.0, wantTrend: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := uc.Evaluate(context.Background(), evaluator.EvaluateInput{
				Reading: phReading(tt.value, now),
				Config:  cfg,
				History: history(tt.baseline),
			})

			var trend *model.AlertCandidate
			for i := range got {
				if got[i].Kind == model.AlertKindTrend {
					trend = &got[i]
				}
			}
			if (trend != nil) != tt.wantTrend {
				t.Fatalf("trend candidate present = %v, want %v", trend != nil, tt.wantTrend)
			}
			if trend == nil {
				return
			}
			if trend.Severity != tt.wantSeverity {
				t.Errorf("severity = %s, want %s", trend.Severity, tt.wantSeverity)
			}
			if trend.TrendDirection != tt.wantDirection {
				t.Errorf("direction = %s, want %s", trend.TrendDirection, tt.wantDirection)
			}
		})
	}
}

func TestEvaluate_TrendRequiresTwoSamples(t *testing.T) {
	uc := New(noopLogger, evaluator.DefaultTrendBands())
	cfg := model.DefaultThresholdConfig()
	now := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)

	got := uc.Evaluate(context.Background(), evaluator.EvaluateInput{
		Reading: phReading(7.0, now),
		Config:  cfg,
		History: nil,
	})
	for _, c := range got {
		if c.Kind == model.AlertKindTrend {
			t.Error("trend candidate emitted with a single sample")
		}
	}

	// History outside the window does not count either.
	got = uc.Evaluate(context.Background(), evaluator.EvaluateInput{
		Reading: phReading(9.5, now),
		Config:  cfg,
		History: []model.SensorReading{phReading(6.0, now.Add(-2*time.Hour))},
	})
	for _, c := range got {
		if c.Kind == model.AlertKindTrend {
			t.Error("trend candidate emitted from stale history")
		}
	}
}

func TestEvaluate_ThresholdAndTrendAreIndependent(t *testing.T) {
	uc := New(noopLogger, evaluator.DefaultTrendBands())
	cfg := model.DefaultThresholdConfig()
	now := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)

	// 9.2 breaches criticalMax AND is +53% vs a 6.0 baseline.
	got := uc.Evaluate(context.Background(), evaluator.EvaluateInput{
		Reading: phReading(9.2, now),
		Config:  cfg,
		History: []model.SensorReading{phReading(6.0, now.Add(-15*time.Minute))},
	})
	if len(got) != 2 {
		t.Fatalf("Evaluate() returned %d candidates, want 2 (threshold + trend)", len(got))
	}
}

func TestEvaluate_DropsInvalidReading(t *testing.T) {
	uc := New(noopLogger, evaluator.DefaultTrendBands())

	got := uc.Evaluate(context.Background(), evaluator.EvaluateInput{
		Reading: model.SensorReading{Parameter: "salinity", Value: 1},
		Config:  model.DefaultThresholdConfig(),
	})
	if got != nil {
		t.Errorf("Evaluate() = %v, want nil for invalid reading", got)
	}
}
