package usecase

import (
	"context"

	"aquasentry-srv/internal/digest"
	"aquasentry-srv/internal/digest/repository"
	"aquasentry-srv/internal/model"
	"aquasentry-srv/pkg/token"

	"github.com/friendsofgo/errors"
)

// Acknowledge marks the digest behind the token as handled. The call
// is idempotent: a digest that is already acknowledged stays untouched
// and its original acknowledgement time is preserved.
func (uc *implUseCase) Acknowledge(ctx context.Context, input digest.AcknowledgeInput) (model.DigestRecord, error) {
	if !token.IsWellFormed(input.Token) {
		return model.DigestRecord{}, digest.ErrTokenMalformed
	}

	rec, err := uc.resolveAckTarget(ctx, input)
	if err != nil {
		return model.DigestRecord{}, err
	}

	if input.Scope.UserID != "" && rec.RecipientID != input.Scope.UserID && input.Scope.Role != roleAdmin {
		return model.DigestRecord{}, digest.ErrPermissionDenied
	}

	if rec.IsAcknowledged {
		return rec, nil
	}

	now := uc.clock()
	var out model.DigestRecord
	err = uc.repo.Mutate(ctx, rec.ID, func(r *model.DigestRecord, found bool) (bool, error) {
		if !found {
			return false, digest.ErrNotFound
		}
		if r.AckToken != input.Token {
			return false, digest.ErrNotFound
		}
		if r.IsAcknowledged {
			out = *r
			return false, nil
		}
		r.IsAcknowledged = true
		r.AcknowledgedAt = &now
		out = *r
		return true, nil
	})
	if err != nil {
		if errors.Is(err, digest.ErrNotFound) {
			return model.DigestRecord{}, digest.ErrNotFound
		}
		uc.l.Errorf(ctx, "internal.digest.usecase.Acknowledge.Mutate: id=%s: %v", rec.ID, err)
		return model.DigestRecord{}, err
	}

	return out, nil
}

// resolveAckTarget locates the digest the token refers to. With an
// explicit digest ID the token must match that digest's own token;
// otherwise the token index decides.
func (uc *implUseCase) resolveAckTarget(ctx context.Context, input digest.AcknowledgeInput) (model.DigestRecord, error) {
	if input.DigestID != "" {
		rec, err := uc.repo.Detail(ctx, input.DigestID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return model.DigestRecord{}, digest.ErrNotFound
			}
			uc.l.Errorf(ctx, "internal.digest.usecase.resolveAckTarget.Detail: %v", err)
			return model.DigestRecord{}, err
		}
		if rec.AckToken != input.Token {
			return model.DigestRecord{}, digest.ErrPermissionDenied
		}
		return rec, nil
	}

	rec, err := uc.repo.DetailByToken(ctx, input.Token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.DigestRecord{}, digest.ErrNotFound
		}
		uc.l.Errorf(ctx, "internal.digest.usecase.resolveAckTarget.DetailByToken: %v", err)
		return model.DigestRecord{}, err
	}
	return rec, nil
}
