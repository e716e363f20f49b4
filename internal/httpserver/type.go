package httpserver

import (
	"time"

	"aquasentry-srv/internal/model"
)

type processReadingReq struct {
	DeviceID   string    `json:"device_id" binding:"required"`
	Parameter  string    `json:"parameter" binding:"required"`
	Value      float64   `json:"value"`
	ObservedAt time.Time `json:"observed_at" binding:"required"`
}

func (r processReadingReq) toReading() model.SensorReading {
	return model.SensorReading{
		DeviceID:   r.DeviceID,
		Parameter:  model.Parameter(r.Parameter),
		Value:      r.Value,
		ObservedAt: r.ObservedAt,
	}
}

type processReadingResp struct {
	AlertsCreated int                `json:"alerts_created"`
	Alerts        []model.AlertEvent `json:"alerts,omitempty"`
}

type acknowledgeReq struct {
	DigestID string `json:"digest_id"`
	Token    string `json:"token" binding:"required"`
}

// digestResp is the outward shape of a digest. The acknowledgement
// token never leaves the service through listing endpoints.
type digestResp struct {
	ID             string             `json:"id"`
	RecipientID    string             `json:"recipient_id"`
	Category       string             `json:"category"`
	Items          []model.DigestItem `json:"items"`
	CreatedAt      time.Time          `json:"created_at"`
	LastUpdatedAt  time.Time          `json:"last_updated_at"`
	LastSentAt     *time.Time         `json:"last_sent_at,omitempty"`
	CooldownUntil  time.Time          `json:"cooldown_until"`
	SendAttempts   int                `json:"send_attempts"`
	MaxAttempts    int                `json:"max_attempts"`
	IsAcknowledged bool               `json:"is_acknowledged"`
	AcknowledgedAt *time.Time         `json:"acknowledged_at,omitempty"`
}

func toDigestResp(rec model.DigestRecord) digestResp {
	return digestResp{
		ID:             rec.ID,
		RecipientID:    rec.RecipientID,
		Category:       rec.Category,
		Items:          rec.Items,
		CreatedAt:      rec.CreatedAt,
		LastUpdatedAt:  rec.LastUpdatedAt,
		LastSentAt:     rec.LastSentAt,
		CooldownUntil:  rec.CooldownUntil,
		SendAttempts:   rec.SendAttempts,
		MaxAttempts:    rec.MaxAttempts,
		IsAcknowledged: rec.IsAcknowledged,
		AcknowledgedAt: rec.AcknowledgedAt,
	}
}

func toDigestResps(recs []model.DigestRecord) []digestResp {
	out := make([]digestResp, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toDigestResp(rec))
	}
	return out
}
