package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"aquasentry-srv/internal/digest"
	"aquasentry-srv/internal/digest/repository"
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

type fakeRepo struct {
	recs map[string]model.DigestRecord
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{recs: make(map[string]model.DigestRecord)}
}

func (f *fakeRepo) Detail(ctx context.Context, id string) (model.DigestRecord, error) {
	rec, ok := f.recs[id]
	if !ok {
		return model.DigestRecord{}, repository.ErrNotFound
	}
	return rec, nil
}

func (f *fakeRepo) DetailByToken(ctx context.Context, token string) (model.DigestRecord, error) {
	for _, rec := range f.recs {
		if rec.AckToken == token {
			return rec, nil
		}
	}
	return model.DigestRecord{}, repository.ErrNotFound
}

func (f *fakeRepo) Mutate(ctx context.Context, id string, fn repository.MutateFunc) error {
	rec, found := f.recs[id]
	write, err := fn(&rec, found)
	if err != nil {
		return err
	}
	if write {
		f.recs[id] = rec
	}
	return nil
}

func (f *fakeRepo) ListEligible(ctx context.Context, now time.Time, limit int64) ([]model.DigestRecord, error) {
	var out []model.DigestRecord
	for _, rec := range f.recs {
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

func (f *fakeRepo) ListByRecipient(ctx context.Context, recipientID string) ([]model.DigestRecord, error) {
	var out []model.DigestRecord
	for _, rec := range f.recs {
		if rec.RecipientID == recipientID {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeNotifier struct {
	sent    []string // recipient emails in send order
	failFor map[string]error
}

func (f *fakeNotifier) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err, ok := f.failFor[to]; ok {
		return err
	}
	f.sent = append(f.sent, to)
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func tokenSeq() func() (string, error) {
	n := 0
	return func() (string, error) {
		n++
		return strings.Repeat("a", 63) + string(rune('0'+n%10)), nil
	}
}

func newTestUseCase(repo *fakeRepo, notifier *fakeNotifier, now time.Time) *implUseCase {
	uc := New(noopLogger, repo, notifier, nil, Config{
		MaxItems:      3,
		MaxAttempts:   3,
		Cooldown:      24 * time.Hour,
		PageSize:      50,
		PublicBaseURL: "http://aqua.local",
	})
	uc.SetClock(fixedClock(now))
	uc.newToken = tokenSeq()
	return uc
}

func phEvent(id string, value float64, at time.Time) model.AlertEvent {
	return model.AlertEvent{
		ID:         id,
		DeviceID:   "dev-1",
		DeviceName: "Tank A",
		Parameter:  model.ParameterPH,
		Kind:       model.AlertKindThreshold,
		Severity:   model.SeverityCritical,
		Value:      value,
		Message:    "pH critically high",
		ObservedAt: at,
	}
}

func aggregate(t *testing.T, uc *implUseCase, event model.AlertEvent) {
	t.Helper()
	err := uc.Aggregate(context.Background(), digest.AggregateInput{
		RecipientID:    "user-1",
		RecipientEmail: "user1@example.com",
		Event:          event,
	})
	if err != nil {
		t.Fatalf("Aggregate(%s): %v", event.ID, err)
	}
}

func TestAggregate_CreatesDigest(t *testing.T) {
	now := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	uc := newTestUseCase(repo, &fakeNotifier{}, now)

	aggregate(t, uc, phEvent("evt-1", 9.2, now))

	wantID := "user-1_ph_critical_2025-03-07"
	rec, ok := repo.recs[wantID]
	if !ok {
		t.Fatalf("digest %q not created, have %v", wantID, repo.recs)
	}
	if rec.Category != "ph_critical" {
		t.Errorf("category = %q, want ph_critical", rec.Category)
	}
	if len(rec.Items) != 1 || rec.Items[0].EventID != "evt-1" {
		t.Errorf("items = %+v, want single evt-1", rec.Items)
	}
	if !rec.CooldownUntil.Equal(now) {
		t.Errorf("cooldownUntil = %v, want %v (immediately eligible)", rec.CooldownUntil, now)
	}
	if rec.MaxAttempts != 3 || rec.SendAttempts != 0 {
		t.Errorf("attempts = %d/%d, want 0/3", rec.SendAttempts, rec.MaxAttempts)
	}
	if rec.AckToken == "" {
		t.Error("ack token not assigned")
	}
}

func TestAggregate_IdempotentPerEvent(t *testing.T) {
	now := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	uc := newTestUseCase(repo, &fakeNotifier{}, now)

	event := phEvent("evt-1", 9.2, now)
	aggregate(t, uc, event)

	before := repo.recs["user-1_ph_critical_2025-03-07"]

	uc.SetClock(fixedClock(now.Add(time.Hour)))
	aggregate(t, uc, event)

	after := repo.recs["user-1_ph_critical_2025-03-07"]
	if len(after.Items) != 1 {
		t.Fatalf("items = %d, want 1 after duplicate", len(after.Items))
	}
	if !after.LastUpdatedAt.Equal(before.LastUpdatedAt) {
		t.Errorf("duplicate event moved lastUpdatedAt: %v -> %v", before.LastUpdatedAt, after.LastUpdatedAt)
	}
}

func TestAggregate_FIFOCap(t *testing.T) {
	now := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	uc := newTestUseCase(repo, &fakeNotifier{}, now) // MaxItems = 3

	for i, id := range []string{"evt-1", "evt-2", "evt-3", "evt-4", "evt-5"} {
		aggregate(t, uc, phEvent(id, 9.2, now.Add(time.Duration(i)*time.Minute)))
	}

	rec := repo.recs["user-1_ph_critical_2025-03-07"]
	if len(rec.Items) != 3 {
		t.Fatalf("items = %d, want 3", len(rec.Items))
	}
	want := []string{"evt-3", "evt-4", "evt-5"}
	for i, item := range rec.Items {
		if item.EventID != want[i] {
			t.Errorf("items[%d] = %s, want %s", i, item.EventID, want[i])
		}
	}
}

func TestDispatchDue_SendsAndAdvancesCooldown(t *testing.T) {
	now := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	uc := newTestUseCase(repo, notifier, now)

	aggregate(t, uc, phEvent("evt-1", 9.2, now))

	out, err := uc.DispatchDue(context.Background())
	if err != nil {
		t.Fatalf("DispatchDue: %v", err)
	}
	if out.Sent != 1 || out.Failed != 0 {
		t.Fatalf("dispatch = %+v, want 1 sent", out)
	}
	if len(notifier.sent) != 1 || notifier.sent[0] != "user1@example.com" {
		t.Fatalf("sent = %v", notifier.sent)
	}

	rec := repo.recs["user-1_ph_critical_2025-03-07"]
	if rec.SendAttempts != 1 {
		t.Errorf("sendAttempts = %d, want 1", rec.SendAttempts)
	}
	if rec.LastSentAt == nil || !rec.LastSentAt.Equal(now) {
		t.Errorf("lastSentAt = %v, want %v", rec.LastSentAt, now)
	}
	if !rec.CooldownUntil.Equal(now.Add(24 * time.Hour)) {
		t.Errorf("cooldownUntil = %v, want lastSentAt+24h", rec.CooldownUntil)
	}

	// A second pass inside the cooldown sends nothing.
	out, err = uc.DispatchDue(context.Background())
	if err != nil {
		t.Fatalf("DispatchDue second pass: %v", err)
	}
	if out.Sent != 0 {
		t.Errorf("second pass sent = %d, want 0", out.Sent)
	}

	// After the cooldown elapses it becomes eligible again.
	uc.SetClock(fixedClock(now.Add(24 * time.Hour)))
	out, err = uc.DispatchDue(context.Background())
	if err != nil {
		t.Fatalf("DispatchDue third pass: %v", err)
	}
	if out.Sent != 1 {
		t.Errorf("post-cooldown sent = %d, want 1", out.Sent)
	}
}

func TestDispatchDue_FailureKeepsBatchGoing(t *testing.T) {
	now := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	notifier := &fakeNotifier{failFor: map[string]error{
		"user1@example.com": errors.New("smtp unavailable"),
	}}
	uc := newTestUseCase(repo, notifier, now)

	aggregate(t, uc, phEvent("evt-1", 9.2, now))

	err := uc.Aggregate(context.Background(), digest.AggregateInput{
		RecipientID:    "user-2",
		RecipientEmail: "user2@example.com",
		Event:          phEvent("evt-1", 9.2, now),
	})
	if err != nil {
		t.Fatalf("Aggregate for user-2: %v", err)
	}

	out, err := uc.DispatchDue(context.Background())
	if err != nil {
		t.Fatalf("DispatchDue: %v", err)
	}
	if out.Sent != 1 || out.Failed != 1 {
		t.Fatalf("dispatch = %+v, want 1 sent 1 failed", out)
	}

	failed := repo.recs["user-1_ph_critical_2025-03-07"]
	if failed.SendAttempts != 1 {
		t.Errorf("failed sendAttempts = %d, want 1", failed.SendAttempts)
	}
	if failed.LastSentAt != nil {
		t.Errorf("failed lastSentAt = %v, want nil", failed.LastSentAt)
	}
	if !failed.CooldownUntil.Equal(now) {
		t.Errorf("failed cooldownUntil moved to %v", failed.CooldownUntil)
	}
}

func TestDispatchDue_AttemptExhaustion(t *testing.T) {
	now := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	notifier := &fakeNotifier{failFor: map[string]error{
		"user1@example.com": errors.New("smtp unavailable"),
	}}
	uc := newTestUseCase(repo, notifier, now) // MaxAttempts = 3

	aggregate(t, uc, phEvent("evt-1", 9.2, now))

	for i := 0; i < 3; i++ {
		if _, err := uc.DispatchDue(context.Background()); err != nil {
			t.Fatalf("DispatchDue pass %d: %v", i+1, err)
		}
	}

	rec := repo.recs["user-1_ph_critical_2025-03-07"]
	if rec.SendAttempts != 3 {
		t.Fatalf("sendAttempts = %d, want 3", rec.SendAttempts)
	}

	// Delivery recovers, but the budget is spent.
	notifier.failFor = nil
	out, err := uc.DispatchDue(context.Background())
	if err != nil {
		t.Fatalf("DispatchDue after exhaustion: %v", err)
	}
	if out.Sent != 0 || out.Failed != 0 {
		t.Errorf("dispatch after exhaustion = %+v, want none", out)
	}
}

func TestAcknowledge(t *testing.T) {
	now := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	uc := newTestUseCase(repo, &fakeNotifier{}, now)

	aggregate(t, uc, phEvent("evt-1", 9.2, now))
	tok := repo.recs["user-1_ph_critical_2025-03-07"].AckToken

	ackAt := now.Add(time.Hour)
	uc.SetClock(fixedClock(ackAt))

	rec, err := uc.Acknowledge(context.Background(), digest.AcknowledgeInput{Token: tok})
	if err != nil {
		t.Fatalf("Acknowledge: %v", err)
	}
	if !rec.IsAcknowledged {
		t.Fatal("record not acknowledged")
	}
	if rec.AcknowledgedAt == nil || !rec.AcknowledgedAt.Equal(ackAt) {
		t.Errorf("acknowledgedAt = %v, want %v", rec.AcknowledgedAt, ackAt)
	}

	// Repeat acknowledgement keeps the original timestamp.
	uc.SetClock(fixedClock(ackAt.Add(time.Hour)))
	again, err := uc.Acknowledge(context.Background(), digest.AcknowledgeInput{Token: tok})
	if err != nil {
		t.Fatalf("Acknowledge repeat: %v", err)
	}
	if !again.AcknowledgedAt.Equal(ackAt) {
		t.Errorf("repeat moved acknowledgedAt: %v", again.AcknowledgedAt)
	}

	// An acknowledged digest never dispatches again.
	out, err := uc.DispatchDue(context.Background())
	if err != nil {
		t.Fatalf("DispatchDue: %v", err)
	}
	if out.Sent != 0 {
		t.Errorf("acknowledged digest dispatched: %+v", out)
	}
}

func TestAcknowledge_BadTokens(t *testing.T) {
	now := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)
	uc := newTestUseCase(newFakeRepo(), &fakeNotifier{}, now)

	if _, err := uc.Acknowledge(context.Background(), digest.AcknowledgeInput{Token: "nope"}); !errors.Is(err, digest.ErrTokenMalformed) {
		t.Errorf("malformed token err = %v, want ErrTokenMalformed", err)
	}

	unknown := strings.Repeat("f", 64)
	if _, err := uc.Acknowledge(context.Background(), digest.AcknowledgeInput{Token: unknown}); !errors.Is(err, digest.ErrNotFound) {
		t.Errorf("unknown token err = %v, want ErrNotFound", err)
	}
}

func TestAcknowledge_ExplicitDigestID(t *testing.T) {
	now := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	uc := newTestUseCase(repo, &fakeNotifier{}, now)

	aggregate(t, uc, phEvent("evt-1", 9.2, now))
	id := "user-1_ph_critical_2025-03-07"
	tok := repo.recs[id].AckToken

	rec, err := uc.Acknowledge(context.Background(), digest.AcknowledgeInput{DigestID: id, Token: tok})
	if err != nil {
		t.Fatalf("Acknowledge with matching digest id: %v", err)
	}
	if !rec.IsAcknowledged {
		t.Fatal("record not acknowledged")
	}

	if _, err := uc.Acknowledge(context.Background(), digest.AcknowledgeInput{
		DigestID: id,
		Token:    strings.Repeat("f", 64),
	}); !errors.Is(err, digest.ErrPermissionDenied) {
		t.Errorf("mismatched token err = %v, want ErrPermissionDenied", err)
	}

	if _, err := uc.Acknowledge(context.Background(), digest.AcknowledgeInput{
		DigestID: "user-9_ph_critical_2025-03-07",
		Token:    tok,
	}); !errors.Is(err, digest.ErrNotFound) {
		t.Errorf("unknown digest id err = %v, want ErrNotFound", err)
	}
}

func TestDetail_Ownership(t *testing.T) {
	now := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	uc := newTestUseCase(repo, &fakeNotifier{}, now)

	aggregate(t, uc, phEvent("evt-1", 9.2, now))
	id := "user-1_ph_critical_2025-03-07"

	if _, err := uc.Detail(context.Background(), digest.DetailInput{
		Scope: model.Scope{UserID: "user-1"},
		ID:    id,
	}); err != nil {
		t.Errorf("owner Detail: %v", err)
	}

	if _, err := uc.Detail(context.Background(), digest.DetailInput{
		Scope: model.Scope{UserID: "user-2"},
		ID:    id,
	}); !errors.Is(err, digest.ErrPermissionDenied) {
		t.Errorf("stranger Detail err = %v, want ErrPermissionDenied", err)
	}

	if _, err := uc.Detail(context.Background(), digest.DetailInput{
		Scope: model.Scope{UserID: "user-2", Role: "admin"},
		ID:    id,
	}); err != nil {
		t.Errorf("admin Detail: %v", err)
	}
}
