package mail

import "errors"

var (
	// ErrHostRequired means the SMTP host is not configured.
	ErrHostRequired = errors.New("mail: smtp host is required")

	// ErrFromRequired means the sender address is not configured.
	ErrFromRequired = errors.New("mail: from address is required")

	// ErrAddressInvalid means an address contains control characters (CRLF injection).
	ErrAddressInvalid = errors.New("mail: address contains invalid characters")

	// ErrSendFailed wraps transport-level delivery failures.
	ErrSendFailed = errors.New("mail: failed to send message")
)
