package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"aquasentry-srv/internal/model"
)

var noopLogger = testLogger{}

type testLogger struct{}

func (testLogger) Debug(ctx context.Context, arg ...any)                   {}
func (testLogger) Debugf(ctx context.Context, template string, arg ...any) {}
func (testLogger) Info(ctx context.Context, arg ...any)                    {}
func (testLogger) Infof(ctx context.Context, template string, arg ...any)  {}
func (testLogger) Warn(ctx context.Context, arg ...any)                    {}
func (testLogger) Warnf(ctx context.Context, template string, arg ...any)  {}
func (testLogger) Error(ctx context.Context, arg ...any)                   {}
func (testLogger) Errorf(ctx context.Context, template string, arg ...any) {}
func (testLogger) Fatal(ctx context.Context, arg ...any)                   {}
func (testLogger) Fatalf(ctx context.Context, template string, arg ...any) {}

type fakePrefRepo struct {
	prefs []model.NotificationPreference
	err   error
}

func (f *fakePrefRepo) ListEnabled(ctx context.Context) ([]model.NotificationPreference, error) {
	return f.prefs, f.err
}

func criticalEvent(deviceID string) model.AlertEvent {
	return model.AlertEvent{
		ID:        "evt-1",
		DeviceID:  deviceID,
		Parameter: model.ParameterPH,
		Kind:      model.AlertKindThreshold,
		Severity:  model.SeverityCritical,
	}
}

func at(hour, minute int) func() time.Time {
	return func() time.Time {
		return time.Date(2025, 3, 7, hour, minute, 0, 0, time.UTC)
	}
}

func TestResolve_Matching(t *testing.T) {
	prefs := []model.NotificationPreference{
		{
			UserID:     "u-critical",
			Email:      "critical@example.com",
			Severities: []model.Severity{model.SeverityCritical},
		},
		{
			UserID:     "u-warning-only",
			Email:      "warning@example.com",
			Severities: []model.Severity{model.SeverityWarning},
		},
		{
			UserID:     "u-other-device",
			Email:      "other@example.com",
			Severities: []model.Severity{model.SeverityCritical},
			DeviceIDs:  []string{"dev-2"},
		},
		{
			UserID:     "u-other-parameter",
			Email:      "tds@example.com",
			Severities: []model.Severity{model.SeverityCritical},
			Parameters: []model.Parameter{model.ParameterTDS},
		},
	}

	uc := New(noopLogger, &fakePrefRepo{prefs: prefs})
	uc.SetClock(at(10, 0))

	got, err := uc.Resolve(context.Background(), criticalEvent("dev-1"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("recipients = %d, want 1", len(got))
	}
	if got[0].UserID != "u-critical" {
		t.Errorf("recipient = %s, want u-critical", got[0].UserID)
	}
}

func TestResolve_EmptySeveritiesMatchNothing(t *testing.T) {
	prefs := []model.NotificationPreference{
		{UserID: "u-1", Email: "u1@example.com"},
	}

	uc := New(noopLogger, &fakePrefRepo{prefs: prefs})
	uc.SetClock(at(10, 0))

	got, err := uc.Resolve(context.Background(), criticalEvent("dev-1"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("recipients = %d, want 0", len(got))
	}
}

func TestResolve_QuietHours(t *testing.T) {
	pref := model.NotificationPreference{
		UserID:            "u-1",
		Email:             "u1@example.com",
		Severities:        []model.Severity{model.SeverityCritical},
		QuietHoursEnabled: true,
		QuietHoursStart:   "22:00",
		QuietHoursEnd:     "07:00",
	}

	tests := []struct {
		name  string
		clock func() time.Time
		want  int
	}{
		{name: "inside window before midnight", clock: at(23, 0), want: 0},
		{name: "inside window after midnight", clock: at(6, 30), want: 0},
		{name: "at window start", clock: at(22, 0), want: 0},
		{name: "at window end is outside", clock: at(7, 0), want: 1},
		{name: "outside window", clock: at(10, 0), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := New(noopLogger, &fakePrefRepo{prefs: []model.NotificationPreference{pref}})
			uc.SetClock(tt.clock)

			got, err := uc.Resolve(context.Background(), criticalEvent("dev-1"))
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("recipients = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestResolve_QuietHoursTimezone(t *testing.T) {
	pref := model.NotificationPreference{
		UserID:            "u-1",
		Email:             "u1@example.com",
		Severities:        []model.Severity{model.SeverityCritical},
		QuietHoursEnabled: true,
		QuietHoursStart:   "22:00",
		QuietHoursEnd:     "07:00",
		Timezone:          "Asia/Ho_Chi_Minh", // UTC+7
	}

	uc := New(noopLogger, &fakePrefRepo{prefs: []model.NotificationPreference{pref}})
	// 16:00 UTC is 23:00 local, inside the window.
	uc.SetClock(at(16, 0))

	got, err := uc.Resolve(context.Background(), criticalEvent("dev-1"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("recipients = %d, want 0", len(got))
	}
}

func TestResolve_MalformedQuietWindowDelivers(t *testing.T) {
	pref := model.NotificationPreference{
		UserID:            "u-1",
		Email:             "u1@example.com",
		Severities:        []model.Severity{model.SeverityCritical},
		QuietHoursEnabled: true,
		QuietHoursStart:   "25:00",
		QuietHoursEnd:     "07:00",
	}

	uc := New(noopLogger, &fakePrefRepo{prefs: []model.NotificationPreference{pref}})
	uc.SetClock(at(23, 0))

	got, err := uc.Resolve(context.Background(), criticalEvent("dev-1"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("recipients = %d, want 1", len(got))
	}
}

func TestResolve_RepoError(t *testing.T) {
	repoErr := errors.New("db down")
	uc := New(noopLogger, &fakePrefRepo{err: repoErr})
	uc.SetClock(at(10, 0))

	_, err := uc.Resolve(context.Background(), criticalEvent("dev-1"))
	if !errors.Is(err, repoErr) {
		t.Fatalf("err = %v, want %v", err, repoErr)
	}
}
