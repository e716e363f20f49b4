package digest

import (
	"context"

	"aquasentry-srv/internal/model"
)

// UseCase owns the digest lifecycle: aggregation of alert events into
// per-recipient batches, scheduled dispatch, and acknowledgement.
type UseCase interface {
	// Aggregate folds one alert event into the recipient's digest for
	// the event's category and day. Idempotent per (digest, event).
	Aggregate(ctx context.Context, input AggregateInput) error

	// DispatchDue sends every digest whose cooldown has elapsed and
	// that still has attempts left. One failed send never aborts the
	// rest of the batch.
	DispatchDue(ctx context.Context) (DispatchOutput, error)

	// Acknowledge marks a digest as handled using its one-time token.
	// Repeat calls with the same token succeed without changing state.
	Acknowledge(ctx context.Context, input AcknowledgeInput) (model.DigestRecord, error)

	// Get lists the digests belonging to one recipient.
	Get(ctx context.Context, input GetInput) ([]model.DigestRecord, error)

	// Detail fetches one digest, enforcing recipient ownership unless
	// the scope is an admin.
	Detail(ctx context.Context, input DetailInput) (model.DigestRecord, error)
}
