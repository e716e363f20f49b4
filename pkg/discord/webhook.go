package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const webhookURLFormat = "https://discord.com/api/webhooks/%s/%s"

type embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
}

type webhookPayload struct {
	Content string  `json:"content,omitempty"`
	Embeds  []embed `json:"embeds,omitempty"`
}

func (t MessageType) color() int {
	switch t {
	case MessageTypeError:
		return 0xE74C3C
	case MessageTypeWarning:
		return 0xFFA500
	case MessageTypeSuccess:
		return 0x2ECC71
	default:
		return 0x3498DB
	}
}

// GetWebhookURL returns the Discord webhook URL.
func (d *implDiscord) GetWebhookURL() string {
	return fmt.Sprintf(webhookURLFormat, d.webhook.ID, d.webhook.Token)
}

// Close releases idle connections held by the client.
func (d *implDiscord) Close() error {
	d.client.CloseIdleConnections()
	return nil
}

// SendMessage sends a plain text message to the webhook.
func (d *implDiscord) SendMessage(ctx context.Context, content string) error {
	return d.post(ctx, webhookPayload{Content: content})
}

// SendEmbed sends an embed message to the webhook.
func (d *implDiscord) SendEmbed(ctx context.Context, options MessageOptions) error {
	e := embed{
		Title:       options.Title,
		Description: options.Description,
		Color:       options.Type.color(),
		Fields:      options.Fields,
		Footer:      options.Footer,
	}
	if !options.Timestamp.IsZero() {
		e.Timestamp = options.Timestamp.UTC().Format(time.RFC3339)
	}
	return d.post(ctx, webhookPayload{Embeds: []embed{e}})
}

// SendError sends an error embed with the error string attached.
func (d *implDiscord) SendError(ctx context.Context, title, description string, err error) error {
	opts := MessageOptions{
		Type:        MessageTypeError,
		Title:       title,
		Description: description,
		Timestamp:   time.Now(),
	}
	if err != nil {
		opts.Fields = append(opts.Fields, EmbedField{Name: "Error", Value: err.Error()})
	}
	return d.SendEmbed(ctx, opts)
}

// ReportBug sends a raw report message, used for 500-class error reports.
func (d *implDiscord) ReportBug(ctx context.Context, message string) error {
	return d.post(ctx, webhookPayload{Content: fmt.Sprintf("```\n%s\n```", message)})
}

func (d *implDiscord) post(ctx context.Context, payload webhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("discord: marshal payload: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= d.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(d.config.RetryDelay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.GetWebhookURL(), bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := d.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil
		}
		lastErr = fmt.Errorf("%w: status %d", ErrSendFailed, resp.StatusCode)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			break
		}
	}
	if d.l != nil {
		d.l.Errorf(ctx, "pkg.discord.post: %v", lastErr)
	}
	return lastErr
}
