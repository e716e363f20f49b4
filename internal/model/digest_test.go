package model

import (
	"testing"
	"time"
)

func TestDigestID(t *testing.T) {
	day := time.Date(2025, 3, 7, 23, 59, 59, 0, time.UTC)

	tests := []struct {
		name        string
		recipientID string
		category    string
		day         time.Time
		want        string
	}{
		{
			name:        "basic",
			recipientID: "user-1",
			category:    "ph_critical",
			day:         day,
			want:        "user-1_ph_critical_2025-03-07",
		},
		{
			name:        "non-UTC time is normalized to the UTC date",
			recipientID: "user-1",
			category:    "tds_warning",
			day:         time.Date(2025, 3, 7, 22, 0, 0, 0, time.FixedZone("UTC+7", 7*3600)),
			want:        "user-1_tds_warning_2025-03-07",
		},
		{
			name:        "late local evening rolls into the next UTC day",
			recipientID: "u",
			category:    "turbidity_advisory",
			day:         time.Date(2025, 3, 7, 23, 0, 0, 0, time.FixedZone("UTC-7", -7*3600)),
			want:        "u_turbidity_advisory_2025-03-08",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DigestID(tt.recipientID, tt.category, tt.day); got != tt.want {
				t.Errorf("DigestID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDigestRecord_IsSendEligible(t *testing.T) {
	now := time.Date(2025, 3, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		rec  DigestRecord
		want bool
	}{
		{
			name: "eligible",
			rec:  DigestRecord{CooldownUntil: now.Add(-time.Minute), SendAttempts: 0, MaxAttempts: 3},
			want: true,
		},
		{
			name: "cooldown boundary counts as eligible",
			rec:  DigestRecord{CooldownUntil: now, SendAttempts: 0, MaxAttempts: 3},
			want: true,
		},
		{
			name: "in cooldown",
			rec:  DigestRecord{CooldownUntil: now.Add(time.Hour), SendAttempts: 0, MaxAttempts: 3},
			want: false,
		},
		{
			name: "attempts exhausted",
			rec:  DigestRecord{CooldownUntil: now.Add(-time.Hour), SendAttempts: 3, MaxAttempts: 3},
			want: false,
		},
		{
			name: "acknowledged",
			rec:  DigestRecord{CooldownUntil: now.Add(-time.Hour), MaxAttempts: 3, IsAcknowledged: true},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.IsSendEligible(now); got != tt.want {
				t.Errorf("IsSendEligible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDigestRecord_HasEvent(t *testing.T) {
	rec := DigestRecord{Items: []DigestItem{{EventID: "e1"}, {EventID: "e2"}}}
	if !rec.HasEvent("e1") {
		t.Error("HasEvent(e1) = false, want true")
	}
	if rec.HasEvent("e3") {
		t.Error("HasEvent(e3) = true, want false")
	}
}
