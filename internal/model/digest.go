package model

import (
	"fmt"
	"time"
)

// digestDayFormat is the UTC date component of a digest identity.
const digestDayFormat = "2006-01-02"

// DigestID builds the digest identity string.
// The "{recipientId}_{category}_{YYYY-MM-DD}" format is load-bearing:
// idempotent re-aggregation and lookup-by-day both depend on it.
func DigestID(recipientID, category string, day time.Time) string {
	return fmt.Sprintf("%s_%s_%s", recipientID, category, day.UTC().Format(digestDayFormat))
}

// DigestCategory derives the grouping key for an alert, so that all
// alerts of one parameter/severity band for a recipient land in a
// single digest per day instead of fragmenting.
func DigestCategory(p Parameter, s Severity) string {
	return fmt.Sprintf("%s_%s", p, s)
}

// DigestItem is one alert embedded in a digest.
type DigestItem struct {
	EventID        string         `json:"event_id"`
	Summary        string         `json:"summary"`
	Severity       Severity       `json:"severity"`
	Parameter      Parameter      `json:"parameter"`
	Kind           AlertKind      `json:"kind"`
	TrendDirection TrendDirection `json:"trend_direction,omitempty"`
	DeviceName     string         `json:"device_name"`
	Value          float64        `json:"value"`
	ObservedAt     time.Time      `json:"observed_at"`
}

// DigestRecord is a per-recipient, per-category, per-day batch of alert
// items awaiting notification. Never physically deleted by this service.
type DigestRecord struct {
	ID             string       `json:"id"`
	RecipientID    string       `json:"recipient_id"`
	RecipientEmail string       `json:"recipient_email"`
	Category       string       `json:"category"`
	Items          []DigestItem `json:"items"`
	CreatedAt      time.Time    `json:"created_at"`
	LastUpdatedAt  time.Time    `json:"last_updated_at"`
	LastSentAt     *time.Time   `json:"last_sent_at,omitempty"`
	CooldownUntil  time.Time    `json:"cooldown_until"`
	SendAttempts   int          `json:"send_attempts"`
	MaxAttempts    int          `json:"max_attempts"`
	IsAcknowledged bool         `json:"is_acknowledged"`
	AcknowledgedAt *time.Time   `json:"acknowledged_at,omitempty"`
	AckToken       string       `json:"ack_token"`
}

// HasEvent reports whether the digest already contains the event.
func (d DigestRecord) HasEvent(eventID string) bool {
	for _, item := range d.Items {
		if item.EventID == eventID {
			return true
		}
	}
	return false
}

// IsSendEligible reports whether the record qualifies for a send at now.
func (d DigestRecord) IsSendEligible(now time.Time) bool {
	return !d.IsAcknowledged &&
		d.SendAttempts < d.MaxAttempts &&
		!d.CooldownUntil.After(now)
}

// RemainingAttempts returns how many sends the record has left.
func (d DigestRecord) RemainingAttempts() int {
	n := d.MaxAttempts - d.SendAttempts
	if n < 0 {
		return 0
	}
	return n
}
