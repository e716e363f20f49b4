package evaluator

import (
	"context"

	"aquasentry-srv/internal/model"
)

// UseCase turns one sensor reading into zero or more alert candidates.
// Evaluation is pure over its input; history is supplied by the caller.
type UseCase interface {
	Evaluate(ctx context.Context, input EvaluateInput) []model.AlertCandidate
}
