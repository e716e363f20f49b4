package digest

import "errors"

var (
	ErrNotFound         = errors.New("digest not found")
	ErrTokenMalformed   = errors.New("acknowledgement token is malformed")
	ErrPermissionDenied = errors.New("digest does not belong to the caller")
)
