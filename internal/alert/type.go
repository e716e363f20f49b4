package alert

import (
	"aquasentry-srv/internal/model"
	"aquasentry-srv/pkg/paginator"
)

// CreateInput carries one evaluated candidate into the store.
type CreateInput struct {
	Candidate model.AlertCandidate
}

// GetFilter narrows the alert history listing.
type GetFilter struct {
	DeviceID  string
	Parameter string
	Severity  string
}

// GetInput lists alert history, newest first.
type GetInput struct {
	Filter   GetFilter
	PagQuery paginator.PaginateQuery
}
