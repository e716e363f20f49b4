package discord

import (
	"net/http"
	"time"

	"aquasentry-srv/pkg/log"
)

// New creates a new Discord webhook client.
// Logger can be nil, logging is skipped if not provided.
func New(l log.Logger, webhook *DiscordWebhook) (IDiscord, error) {
	if webhook == nil || webhook.ID == "" || webhook.Token == "" {
		return nil, errWebhookRequired
	}

	config := DefaultConfig()

	client := &http.Client{
		Timeout: config.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     30 * time.Second,
		},
	}

	return &implDiscord{
		l:       l,
		webhook: webhook,
		config:  config,
		client:  client,
	}, nil
}
