package usecase

import (
	"context"

	"aquasentry-srv/internal/alert"
	"aquasentry-srv/internal/alert/repository"
	"aquasentry-srv/internal/model"
	"aquasentry-srv/pkg/paginator"
	postgres "aquasentry-srv/pkg/postgre"
)

// Create assigns identity to a candidate, enriches it with registry
// metadata and appends it to the store. A registry miss never blocks
// the alert; the event falls back to a placeholder name.
func (uc *implUseCase) Create(ctx context.Context, input alert.CreateInput) (model.AlertEvent, error) {
	if err := input.Candidate.Validate(); err != nil {
		uc.l.Warnf(ctx, "internal.alert.usecase.Create.Validate: %v", err)
		return model.AlertEvent{}, alert.ErrInvalidCandidate
	}

	c := input.Candidate
	event := model.AlertEvent{
		ID:                postgres.NewUUID(),
		DeviceID:          c.DeviceID,
		DeviceName:        model.UnknownDeviceName,
		Parameter:         c.Parameter,
		Kind:              c.Kind,
		Severity:          c.Severity,
		Value:             c.Value,
		Threshold:         c.Threshold,
		TrendDirection:    c.TrendDirection,
		Message:           c.Message,
		RecommendedAction: c.RecommendedAction,
		ObservedAt:        c.ObservedAt,
		CreatedAt:         uc.clock(),
	}

	dev, err := uc.devices.Detail(ctx, c.DeviceID)
	if err != nil {
		uc.l.Warnf(ctx, "internal.alert.usecase.Create.DeviceDetail: %v", err)
	} else {
		event.DeviceName = dev.Name
		event.DeviceLocation = dev.Location
	}

	if err := uc.repo.Create(ctx, event); err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.Create.repo.Create: %v", err)
		return model.AlertEvent{}, err
	}

	return event, nil
}

func (uc *implUseCase) Get(ctx context.Context, input alert.GetInput) (alert.GetOutput, error) {
	input.PagQuery.Adjust()

	events, total, err := uc.repo.Get(ctx, repository.GetOptions{
		Filter: repository.GetFilter{
			DeviceID:  input.Filter.DeviceID,
			Parameter: input.Filter.Parameter,
			Severity:  input.Filter.Severity,
		},
		Limit:  input.PagQuery.Limit,
		Offset: input.PagQuery.Offset(),
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.Get.repo.Get: %v", err)
		return alert.GetOutput{}, err
	}

	return alert.GetOutput{
		Alerts: events,
		Paginator: paginator.Paginator{
			Total:       total,
			Count:       int64(len(events)),
			PerPage:     input.PagQuery.Limit,
			CurrentPage: input.PagQuery.Page,
		},
	}, nil
}
