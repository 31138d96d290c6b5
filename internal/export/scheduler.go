package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Destination is a target for exported snapshots (file, git, S3, Postgres).
type Destination interface {
	Name() string
	// Write sends the JSONL payload of snap to the destination.
	Write(ctx context.Context, snap *Snapshot, data []byte) error
}

// SnapshotFunc produces the snapshots to export on each run.
type SnapshotFunc func(ctx context.Context) ([]*Snapshot, error)

// Scheduler runs exports to one or more destinations, once or periodically.
type Scheduler struct {
	source       SnapshotFunc
	destinations []Destination
	interval     time.Duration
	logger       *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler creates a scheduler that exports the snapshots produced by
// source to the given destinations at the specified interval.
func NewScheduler(source SnapshotFunc, destinations []Destination, interval time.Duration, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		source:       source,
		destinations: destinations,
		interval:     interval,
		logger:       logger,
	}
}

// Start begins periodic export. It runs an initial export immediately, then
// on each tick.
func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx)
	}()
}

// Stop cancels the scheduler and waits for the current export (if any) to finish.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *Scheduler) run(ctx context.Context) {
	if err := s.RunOnce(ctx); err != nil {
		s.logger.Error("export failed", "err", err)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.RunOnce(ctx); err != nil {
				s.logger.Error("export failed", "err", err)
			}
		}
	}
}

// RunOnce produces the snapshots and writes each to every destination. A
// failing destination does not stop the others; all failures are joined
// into the returned error.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	snaps, err := s.source(ctx)
	if err != nil {
		return fmt.Errorf("building snapshots: %w", err)
	}

	var errs []error
	total := 0
	for _, snap := range snaps {
		data, err := Encode(snap)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", snap.Page, err))
			continue
		}
		total += len(data)
		for _, dest := range s.destinations {
			if err := dest.Write(ctx, snap, data); err != nil {
				s.logger.Error("export destination write failed",
					"destination", dest.Name(), "page", snap.Page, "err", err)
				errs = append(errs, fmt.Errorf("%s -> %s: %w", snap.Page, dest.Name(), err))
			}
		}
	}

	s.logger.Info("export completed",
		"pages", len(snaps), "destinations", len(s.destinations), "bytes", total, "failures", len(errs))
	return errors.Join(errs...)
}
