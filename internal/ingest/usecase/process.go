package usecase

import (
	"context"
	"time"

	"aquasentry-srv/internal/alert"
	"aquasentry-srv/internal/digest"
	"aquasentry-srv/internal/evaluator"
	"aquasentry-srv/internal/ingest"
	"aquasentry-srv/internal/model"
	readingRepo "aquasentry-srv/internal/reading/repository"
)

// ProcessReading runs the pipeline for one reading. Invalid readings
// are dropped with a log line. Downstream failures past the alert
// store degrade per-recipient: an aggregation error is logged and the
// remaining recipients still get their digests.
func (uc *implUseCase) ProcessReading(ctx context.Context, input ingest.ProcessInput) (ingest.ProcessOutput, error) {
	reading := input.Reading
	if err := reading.Validate(); err != nil {
		uc.l.Warnf(ctx, "internal.ingest.usecase.ProcessReading.Validate: device=%s: %v", reading.DeviceID, err)
		return ingest.ProcessOutput{}, ingest.ErrInvalidReading
	}

	cfg := uc.thresholds.Current(ctx)
	history := uc.loadHistory(ctx, reading, cfg)

	// Persist after loading history so the current reading never
	// counts as its own trend baseline.
	if err := uc.readings.Create(ctx, reading); err != nil {
		uc.l.Warnf(ctx, "internal.ingest.usecase.ProcessReading.SaveReading: device=%s: %v", reading.DeviceID, err)
	}

	candidates := uc.evaluator.Evaluate(ctx, evaluator.EvaluateInput{
		Reading: reading,
		Config:  cfg,
		History: history,
	})

	var out ingest.ProcessOutput
	for _, candidate := range candidates {
		event, err := uc.alerts.Create(ctx, alert.CreateInput{Candidate: candidate})
		if err != nil {
			uc.l.Errorf(ctx, "internal.ingest.usecase.ProcessReading.CreateAlert: device=%s: %v", reading.DeviceID, err)
			continue
		}
		out.Alerts = append(out.Alerts, event)

		uc.fanOut(ctx, event)
	}

	return out, nil
}

// fanOut resolves recipients and folds the event into their digests.
func (uc *implUseCase) fanOut(ctx context.Context, event model.AlertEvent) {
	recipients, err := uc.recipients.Resolve(ctx, event)
	if err != nil {
		uc.l.Errorf(ctx, "internal.ingest.usecase.fanOut.Resolve: event=%s: %v", event.ID, err)
		return
	}

	for _, rc := range recipients {
		err := uc.digests.Aggregate(ctx, digest.AggregateInput{
			RecipientID:    rc.UserID,
			RecipientEmail: rc.Email,
			Event:          event,
		})
		if err != nil {
			uc.l.Errorf(ctx, "internal.ingest.usecase.fanOut.Aggregate: event=%s recipient=%s: %v",
				event.ID, rc.UserID, err)
		}
	}
}

// loadHistory fetches the trend window for the reading. A history
// failure only disables trend detection for this reading.
func (uc *implUseCase) loadHistory(ctx context.Context, reading model.SensorReading, cfg model.ThresholdConfig) []model.SensorReading {
	if !cfg.TrendDetection.Enabled {
		return nil
	}

	window := time.Duration(cfg.TrendDetection.TimeWindowMinutes) * time.Minute
	history, err := uc.readings.Recent(ctx, readingRepo.RecentOptions{
		DeviceID:  reading.DeviceID,
		Parameter: reading.Parameter,
		Since:     reading.ObservedAt.Add(-window),
		Until:     reading.ObservedAt,
		Limit:     readingRepo.DefaultRecentLimit,
	})
	if err != nil {
		uc.l.Warnf(ctx, "internal.ingest.usecase.loadHistory.Recent: device=%s: %v", reading.DeviceID, err)
		return nil
	}
	return history
}
