package repository

import (
	"context"
	"errors"
	"time"

	"aquasentry-srv/internal/model"
)

// ErrNotFound is returned when the digest record does not exist.
var ErrNotFound = errors.New("digest record not found")

// MutateFunc inspects and optionally rewrites one digest record inside
// an optimistic transaction. found reports whether the record existed;
// when it is false rec is zero-valued and the func may initialize it.
// Returning write=false commits nothing.
type MutateFunc func(rec *model.DigestRecord, found bool) (write bool, err error)

// Repository is the digest state store. Mutations are optimistic: a
// concurrent writer causes a bounded retry, so MutateFuncs must be
// side-effect free.
type Repository interface {
	Detail(ctx context.Context, id string) (model.DigestRecord, error)
	DetailByToken(ctx context.Context, token string) (model.DigestRecord, error)
	Mutate(ctx context.Context, id string, fn MutateFunc) error
	ListEligible(ctx context.Context, now time.Time, limit int64) ([]model.DigestRecord, error)
	ListByRecipient(ctx context.Context, recipientID string) ([]model.DigestRecord, error)
}
