package usecase

import (
	"context"
	"sort"
	"testing"
	"time"

	alertRepo "aquasentry-srv/internal/alert/repository"
	alertUC "aquasentry-srv/internal/alert/usecase"
	deviceRepo "aquasentry-srv/internal/device/repository"
	digestPkg "aquasentry-srv/internal/digest"
	digestRepo "aquasentry-srv/internal/digest/repository"
	digestUC "aquasentry-srv/internal/digest/usecase"
	"aquasentry-srv/internal/evaluator"
	evaluatorUC "aquasentry-srv/internal/evaluator/usecase"
	"aquasentry-srv/internal/ingest"
	"aquasentry-srv/internal/model"
	readingRepo "aquasentry-srv/internal/reading/repository"
	recipientUC "aquasentry-srv/internal/recipient/usecase"
	"aquasentry-srv/internal/threshold"
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

type memReadingRepo struct {
	readings []model.SensorReading
}

func (m *memReadingRepo) Create(ctx context.Context, r model.SensorReading) error {
	m.readings = append(m.readings, r)
	return nil
}

func (m *memReadingRepo) Recent(ctx context.Context, opts readingRepo.RecentOptions) ([]model.SensorReading, error) {
	var out []model.SensorReading
	for _, r := range m.readings {
		if r.DeviceID != opts.DeviceID || r.Parameter != opts.Parameter {
			continue
		}
		if r.ObservedAt.Before(opts.Since) || !r.ObservedAt.Before(opts.Until) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ObservedAt.Before(out[j].ObservedAt) })
	return out, nil
}

type memAlertRepo struct {
	events []model.AlertEvent
}

func (m *memAlertRepo) Create(ctx context.Context, ev model.AlertEvent) error {
	m.events = append(m.events, ev)
	return nil
}

func (m *memAlertRepo) Get(ctx context.Context, opts alertRepo.GetOptions) ([]model.AlertEvent, int64, error) {
	return m.events, int64(len(m.events)), nil
}

type memDeviceRegistry struct{}

func (memDeviceRegistry) Detail(ctx context.Context, id string) (model.Device, error) {
	return model.Device{}, deviceRepo.ErrNotFound
}

type fixedThresholds struct {
	cfg model.ThresholdConfig
}

func (f fixedThresholds) Current(ctx context.Context) model.ThresholdConfig {
	return f.cfg
}

func (f fixedThresholds) Update(ctx context.Context, input threshold.UpdateInput) (model.ThresholdConfig, error) {
	return f.cfg, nil
}

type memPrefRepo struct {
	prefs []model.NotificationPreference
}

func (m *memPrefRepo) ListEnabled(ctx context.Context) ([]model.NotificationPreference, error) {
	return m.prefs, nil
}

type memDigestRepo struct {
	recs map[string]model.DigestRecord
}

func newMemDigestRepo() *memDigestRepo {
	return &memDigestRepo{recs: make(map[string]model.DigestRecord)}
}

func (m *memDigestRepo) Detail(ctx context.Context, id string) (model.DigestRecord, error) {
	rec, ok := m.recs[id]
	if !ok {
		return model.DigestRecord{}, digestRepo.ErrNotFound
	}
	return rec, nil
}

func (m *memDigestRepo) DetailByToken(ctx context.Context, token string) (model.DigestRecord, error) {
	for _, rec := range m.recs {
		if rec.AckToken == token {
			return rec, nil
		}
	}
	return model.DigestRecord{}, digestRepo.ErrNotFound
}

func (m *memDigestRepo) Mutate(ctx context.Context, id string, fn digestRepo.MutateFunc) error {
	rec, found := m.recs[id]
	write, err := fn(&rec, found)
	if err != nil {
		return err
	}
	if write {
		m.recs[id] = rec
	}
	return nil
}

func (m *memDigestRepo) ListEligible(ctx context.Context, now time.Time, limit int64) ([]model.DigestRecord, error) {
	var out []model.DigestRecord
	for _, rec := range m.recs {
		if rec.IsSendEligible(now) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memDigestRepo) ListByRecipient(ctx context.Context, recipientID string) ([]model.DigestRecord, error) {
	var out []model.DigestRecord
	for _, rec := range m.recs {
		if rec.RecipientID == recipientID {
			out = append(out, rec)
		}
	}
	return out, nil
}

type memNotifier struct {
	sent []string
}

func (m *memNotifier) Send(ctx context.Context, to, subject, htmlBody string) error {
	m.sent = append(m.sent, to)
	return nil
}

func TestProcessReading_EndToEnd(t *testing.T) {
	now := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)

	readings := &memReadingRepo{}
	alerts := &memAlertRepo{}
	digests := newMemDigestRepo()
	notifier := &memNotifier{}

	prefs := &memPrefRepo{prefs: []model.NotificationPreference{{
		UserID:     "user-1",
		Email:      "user1@example.com",
		Severities: []model.Severity{model.SeverityCritical},
	}}}

	alertUseCase := alertUC.New(noopLogger, alerts, memDeviceRegistry{})

	recipients := recipientUC.New(noopLogger, prefs)
	recipients.SetClock(func() time.Time { return now })

	digestUseCase := digestUC.New(noopLogger, digests, notifier, nil, digestUC.Config{
		MaxItems:      10,
		MaxAttempts:   3,
		Cooldown:      24 * time.Hour,
		PageSize:      50,
		PublicBaseURL: "http://aqua.local",
	})
	digestUseCase.SetClock(func() time.Time { return now })

	uc := New(
		noopLogger,
		readings,
		fixedThresholds{cfg: model.DefaultThresholdConfig()},
		evaluatorUC.New(noopLogger, evaluator.DefaultTrendBands()),
		alertUseCase,
		recipients,
		digestUseCase,
	)

	// Three critical pH readings within one window.
	for i, value := range []float64{9.2, 9.4, 9.6} {
		out, err := uc.ProcessReading(context.Background(), ingest.ProcessInput{
			Reading: model.SensorReading{
				DeviceID:   "dev-1",
				Parameter:  model.ParameterPH,
				Value:      value,
				ObservedAt: now.Add(time.Duration(i) * time.Minute),
			},
		})
		if err != nil {
			t.Fatalf("ProcessReading #%d: %v", i+1, err)
		}
		if len(out.Alerts) != 1 {
			t.Fatalf("reading #%d produced %d alerts, want 1", i+1, len(out.Alerts))
		}
	}

	if len(alerts.events) != 3 {
		t.Fatalf("alert events = %d, want 3", len(alerts.events))
	}

	// All three events fold into a single digest.
	id := model.DigestID("user-1", "ph_critical", now)
	rec, ok := digests.recs[id]
	if !ok {
		t.Fatalf("digest %q not created", id)
	}
	if len(rec.Items) != 3 {
		t.Fatalf("digest items = %d, want 3", len(rec.Items))
	}
	if rec.Items[0].DeviceName != model.UnknownDeviceName {
		t.Errorf("device name = %q, want placeholder", rec.Items[0].DeviceName)
	}

	// One dispatch sends exactly one email.
	out, err := digestUseCase.DispatchDue(context.Background())
	if err != nil {
		t.Fatalf("DispatchDue: %v", err)
	}
	if out.Sent != 1 {
		t.Fatalf("sent = %d, want 1", out.Sent)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("notifier sent = %v, want one email", notifier.sent)
	}

	// Acknowledge, move past the cooldown, and verify silence.
	tok := digests.recs[id].AckToken
	if _, err := digestUseCase.Acknowledge(context.Background(), digestPkg.AcknowledgeInput{Token: tok}); err != nil {
		t.Fatalf("Acknowledge: %v", err)
	}

	digestUseCase.SetClock(func() time.Time { return now.Add(48 * time.Hour) })
	out, err = digestUseCase.DispatchDue(context.Background())
	if err != nil {
		t.Fatalf("DispatchDue after ack: %v", err)
	}
	if out.Sent != 0 {
		t.Errorf("acknowledged digest still dispatched: %+v", out)
	}
}

func TestProcessReading_InvalidReadingDropped(t *testing.T) {
	uc := New(
		noopLogger,
		&memReadingRepo{},
		fixedThresholds{cfg: model.DefaultThresholdConfig()},
		evaluatorUC.New(noopLogger, evaluator.DefaultTrendBands()),
		alertUC.New(noopLogger, &memAlertRepo{}, memDeviceRegistry{}),
		recipientUC.New(noopLogger, &memPrefRepo{}),
		digestUC.New(noopLogger, newMemDigestRepo(), &memNotifier{}, nil, digestUC.Config{}),
	)

	_, err := uc.ProcessReading(context.Background(), ingest.ProcessInput{
		Reading: model.SensorReading{Parameter: "salinity", Value: 1},
	})
	if err != ingest.ErrInvalidReading {
		t.Fatalf("err = %v, want ErrInvalidReading", err)
	}
}
