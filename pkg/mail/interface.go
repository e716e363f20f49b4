package mail

import "context"

// Notifier delivers a rendered message to a single recipient.
// The transport behind it is opaque to callers.
type Notifier interface {
	Send(ctx context.Context, to string, subject string, htmlBody string) error
}
