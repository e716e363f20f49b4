package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"aquasentry-srv/internal/digest"
	"aquasentry-srv/internal/model"
)

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

type countingDigests struct {
	calls atomic.Int64
}

func (c *countingDigests) Aggregate(ctx context.Context, input digest.AggregateInput) error {
	return nil
}

func (c *countingDigests) DispatchDue(ctx context.Context) (digest.DispatchOutput, error) {
	c.calls.Add(1)
	return digest.DispatchOutput{}, nil
}

func (c *countingDigests) Acknowledge(ctx context.Context, input digest.AcknowledgeInput) (model.DigestRecord, error) {
	return model.DigestRecord{}, nil
}

func (c *countingDigests) Get(ctx context.Context, input digest.GetInput) ([]model.DigestRecord, error) {
	return nil, nil
}

func (c *countingDigests) Detail(ctx context.Context, input digest.DetailInput) (model.DigestRecord, error) {
	return model.DigestRecord{}, nil
}

func TestScheduler_RunsImmediatelyAndOnTicks(t *testing.T) {
	digests := &countingDigests{}
	s := New(testLogger{}, digests, nil, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)

	deadline := time.After(2 * time.Second)
	for digests.calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("dispatch ran %d times, want >= 3", digests.calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-s.Done():
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}
}
