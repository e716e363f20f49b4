package ingest

import "errors"

// ErrInvalidReading is returned for readings that fail validation.
// The reading is dropped; the pipeline never sees it.
var ErrInvalidReading = errors.New("invalid sensor reading")
