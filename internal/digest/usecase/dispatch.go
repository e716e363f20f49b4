package usecase

import (
	"context"
	"fmt"

	"aquasentry-srv/internal/digest"
	"aquasentry-srv/internal/model"
)

// DispatchDue processes every send-eligible digest in pages. Each
// digest is rendered and sent at most once per pass; the attempt
// counter moves on both success and failure, while the cooldown only
// advances after a successful send.
func (uc *implUseCase) DispatchDue(ctx context.Context) (digest.DispatchOutput, error) {
	var out digest.DispatchOutput
	seen := make(map[string]struct{})

	for {
		recs, err := uc.repo.ListEligible(ctx, uc.clock(), uc.cfg.PageSize)
		if err != nil {
			uc.l.Errorf(ctx, "internal.digest.usecase.DispatchDue.ListEligible: %v", err)
			return out, err
		}

		progressed := false
		for _, rec := range recs {
			if _, ok := seen[rec.ID]; ok {
				continue
			}
			seen[rec.ID] = struct{}{}
			progressed = true

			if uc.dispatchOne(ctx, rec) {
				out.Sent++
			} else {
				out.Failed++
			}
		}

		if !progressed || int64(len(recs)) < uc.cfg.PageSize {
			break
		}
	}

	return out, nil
}

// dispatchOne renders, sends and records the outcome for one digest.
// Reports whether the send succeeded.
func (uc *implUseCase) dispatchOne(ctx context.Context, rec model.DigestRecord) bool {
	subject, body, err := uc.render(rec)
	if err != nil {
		uc.l.Errorf(ctx, "internal.digest.usecase.dispatchOne.render: id=%s: %v", rec.ID, err)
		uc.recordOutcome(ctx, rec.ID, false)
		return false
	}

	sendErr := uc.notifier.Send(ctx, rec.RecipientEmail, subject, body)
	if sendErr != nil {
		uc.l.Errorf(ctx, "internal.digest.usecase.dispatchOne.Send: id=%s: %v", rec.ID, sendErr)
	} else if uc.archiver != nil {
		uc.archive(ctx, rec, body)
	}

	uc.recordOutcome(ctx, rec.ID, sendErr == nil)
	return sendErr == nil
}

// recordOutcome bumps the attempt counter and, on success, stamps the
// send time and pushes the cooldown forward from that same instant.
func (uc *implUseCase) recordOutcome(ctx context.Context, id string, sent bool) {
	t := uc.clock()
	err := uc.repo.Mutate(ctx, id, func(r *model.DigestRecord, found bool) (bool, error) {
		if !found {
			return false, nil
		}
		r.SendAttempts++
		if sent {
			sentAt := t
			r.LastSentAt = &sentAt
			r.CooldownUntil = t.Add(uc.cfg.Cooldown)
		}
		return true, nil
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.digest.usecase.recordOutcome.Mutate: id=%s: %v", id, err)
	}
}

// archive stores the rendered body next to the digest state. Failures
// are logged and swallowed: archiving never blocks delivery accounting.
func (uc *implUseCase) archive(ctx context.Context, rec model.DigestRecord, body string) {
	name := fmt.Sprintf("%s/attempt-%d.html", rec.ID, rec.SendAttempts+1)
	if err := uc.archiver.Put(ctx, name, []byte(body), "text/html"); err != nil {
		uc.l.Warnf(ctx, "internal.digest.usecase.archive.Put: id=%s: %v", rec.ID, err)
	}
}
