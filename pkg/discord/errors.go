package discord

import "errors"

var (
	errWebhookRequired = errors.New("discord: webhook ID and token are required")

	// ErrSendFailed indicates the webhook request was rejected after retries.
	ErrSendFailed = errors.New("discord: failed to send webhook message")
)
