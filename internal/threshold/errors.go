package threshold

import "errors"

var (
	ErrInvalidConfig    = errors.New("invalid threshold configuration")
	ErrPermissionDenied = errors.New("caller may not update thresholds")
)
