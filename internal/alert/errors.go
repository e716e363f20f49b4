package alert

import "errors"

var (
	ErrInvalidCandidate = errors.New("invalid alert candidate")
)
