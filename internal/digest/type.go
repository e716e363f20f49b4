package digest

import (
	"aquasentry-srv/internal/model"
)

// AggregateInput folds one event into one recipient's digest.
type AggregateInput struct {
	RecipientID    string
	RecipientEmail string
	Event          model.AlertEvent
}

// AcknowledgeInput identifies the digest by its acknowledgement token.
// DigestID is optional; when present the token must belong to that
// exact digest. Scope is zero for the public email link: holding the
// token is the capability there. Authenticated calls additionally
// enforce ownership.
type AcknowledgeInput struct {
	DigestID string
	Token    string
	Scope    model.Scope
}

// GetInput lists digests for one recipient.
type GetInput struct {
	Scope model.Scope
}

// DetailInput fetches a single digest.
type DetailInput struct {
	Scope model.Scope
	ID    string
}

// DispatchOutput summarizes one dispatch pass.
type DispatchOutput struct {
	Sent   int
	Failed int
}
