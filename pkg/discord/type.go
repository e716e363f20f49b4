package discord

import (
	"net/http"
	"time"

	"aquasentry-srv/pkg/log"
)

// DiscordWebhook contains webhook information for the Discord API.
type DiscordWebhook struct {
	ID    string
	Token string
}

// Config holds HTTP behavior for the webhook client.
type Config struct {
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// DefaultConfig returns the default webhook client configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:    10 * time.Second,
		MaxRetries: 2,
		RetryDelay: 500 * time.Millisecond,
	}
}

// MessageType selects the embed color scheme.
type MessageType int

const (
	MessageTypeInfo MessageType = iota
	MessageTypeWarning
	MessageTypeError
	MessageTypeSuccess
)

// EmbedField is a single field in a Discord embed.
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// EmbedFooter is the footer of a Discord embed.
type EmbedFooter struct {
	Text string `json:"text"`
}

// MessageOptions describes an embed message.
type MessageOptions struct {
	Type        MessageType
	Title       string
	Description string
	Fields      []EmbedField
	Footer      *EmbedFooter
	Timestamp   time.Time
}

type implDiscord struct {
	l       log.Logger
	webhook *DiscordWebhook
	config  Config
	client  *http.Client
}
