package repository

// GetFilter narrows the listing. Zero values match everything.
type GetFilter struct {
	DeviceID  string
	Parameter string
	Severity  string
}

// GetOptions pages through alert history, newest first.
type GetOptions struct {
	Filter GetFilter
	Limit  int64
	Offset int64
}
