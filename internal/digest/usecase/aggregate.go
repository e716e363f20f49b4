package usecase

import (
	"context"

	"aquasentry-srv/internal/digest"
	"aquasentry-srv/internal/model"
)

// Aggregate folds the event into the recipient's digest for the
// event's category and the current UTC day. The whole read-check-write
// runs inside one optimistic transaction: a duplicate event commits
// nothing, a full digest evicts its oldest item first.
func (uc *implUseCase) Aggregate(ctx context.Context, input digest.AggregateInput) error {
	now := uc.clock()
	category := model.DigestCategory(input.Event.Parameter, input.Event.Severity)
	id := model.DigestID(input.RecipientID, category, now)

	ackToken, err := uc.newToken()
	if err != nil {
		uc.l.Errorf(ctx, "internal.digest.usecase.Aggregate.NewToken: %v", err)
		return err
	}

	item := model.DigestItem{
		EventID:        input.Event.ID,
		Summary:        input.Event.Message,
		Severity:       input.Event.Severity,
		Parameter:      input.Event.Parameter,
		Kind:           input.Event.Kind,
		TrendDirection: input.Event.TrendDirection,
		DeviceName:     input.Event.DeviceName,
		Value:          input.Event.Value,
		ObservedAt:     input.Event.ObservedAt,
	}

	err = uc.repo.Mutate(ctx, id, func(rec *model.DigestRecord, found bool) (bool, error) {
		if !found {
			*rec = model.DigestRecord{
				ID:             id,
				RecipientID:    input.RecipientID,
				RecipientEmail: input.RecipientEmail,
				Category:       category,
				Items:          []model.DigestItem{item},
				CreatedAt:      now,
				LastUpdatedAt:  now,
				CooldownUntil:  now,
				SendAttempts:   0,
				MaxAttempts:    uc.cfg.MaxAttempts,
				AckToken:       ackToken,
			}
			return true, nil
		}

		if rec.HasEvent(input.Event.ID) {
			return false, nil
		}

		rec.Items = append(rec.Items, item)
		if len(rec.Items) > uc.cfg.MaxItems {
			rec.Items = rec.Items[len(rec.Items)-uc.cfg.MaxItems:]
		}
		rec.LastUpdatedAt = now
		return true, nil
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.digest.usecase.Aggregate.Mutate: id=%s: %v", id, err)
		return err
	}

	return nil
}
