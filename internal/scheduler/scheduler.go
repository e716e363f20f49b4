package scheduler

import (
	"context"
	"time"

	"aquasentry-srv/internal/digest"
	"aquasentry-srv/pkg/discord"
	pkgLog "aquasentry-srv/pkg/log"
)

const defaultInterval = 6 * time.Hour

// Scheduler periodically triggers digest dispatch. One pass runs at
// startup so digests never wait a full interval after a restart.
type Scheduler struct {
	l        pkgLog.Logger
	digests  digest.UseCase
	reporter discord.IDiscord
	interval time.Duration
	done     chan struct{}
}

// New builds a Scheduler. reporter may be nil when error reporting is
// not configured.
func New(l pkgLog.Logger, digests digest.UseCase, reporter discord.IDiscord, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Scheduler{
		l:        l,
		digests:  digests,
		reporter: reporter,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start runs the dispatch loop until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	go s.loop(ctx)
}

func (s *Scheduler) loop(ctx context.Context) {
	defer close(s.done)

	s.dispatch(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.dispatch(ctx)
		}
	}
}

func (s *Scheduler) dispatch(ctx context.Context) {
	out, err := s.digests.DispatchDue(ctx)
	if err != nil {
		s.l.Errorf(ctx, "internal.scheduler.dispatch.DispatchDue: %v", err)
		if s.reporter != nil {
			if repErr := s.reporter.SendError(ctx, "Digest dispatch failed", "scheduled digest dispatch pass aborted", err); repErr != nil {
				s.l.Warnf(ctx, "internal.scheduler.dispatch.SendError: %v", repErr)
			}
		}
		return
	}
	if out.Sent > 0 || out.Failed > 0 {
		s.l.Infof(ctx, "digest dispatch pass finished: sent=%d failed=%d", out.Sent, out.Failed)
	}
}

// Done is closed once the loop has fully stopped.
func (s *Scheduler) Done() <-chan struct{} {
	return s.done
}
