package usecase

import (
	"context"
	"sort"

	"aquasentry-srv/internal/digest"
	"aquasentry-srv/internal/digest/repository"
	"aquasentry-srv/internal/model"

	"github.com/friendsofgo/errors"
)

const roleAdmin = "admin"

func (uc *implUseCase) Get(ctx context.Context, input digest.GetInput) ([]model.DigestRecord, error) {
	recs, err := uc.repo.ListByRecipient(ctx, input.Scope.UserID)
	if err != nil {
		uc.l.Errorf(ctx, "internal.digest.usecase.Get.ListByRecipient: %v", err)
		return nil, err
	}

	sort.Slice(recs, func(i, j int) bool {
		return recs[i].LastUpdatedAt.After(recs[j].LastUpdatedAt)
	})

	return recs, nil
}

func (uc *implUseCase) Detail(ctx context.Context, input digest.DetailInput) (model.DigestRecord, error) {
	rec, err := uc.repo.Detail(ctx, input.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.DigestRecord{}, digest.ErrNotFound
		}
		uc.l.Errorf(ctx, "internal.digest.usecase.Detail.repo.Detail: %v", err)
		return model.DigestRecord{}, err
	}

	if rec.RecipientID != input.Scope.UserID && input.Scope.Role != roleAdmin {
		return model.DigestRecord{}, digest.ErrPermissionDenied
	}

	return rec, nil
}
