package discord

import "context"

// IDiscord sends operational notifications to a Discord webhook.
type IDiscord interface {
	SendMessage(ctx context.Context, content string) error
	SendEmbed(ctx context.Context, options MessageOptions) error
	SendError(ctx context.Context, title, description string, err error) error
	ReportBug(ctx context.Context, message string) error
	GetWebhookURL() string
	Close() error
}
