package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/accounts/internal/accounts/store"
)

// HousekeepingService purges expired one-time codes on a fixed interval.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration
	Now      func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewHousekeepingService returns a stopped service. A non-positive interval
// means one hour.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}

	return &HousekeepingService{
		Store:    store,
		Logger:   logger,
		Interval: interval,
		Now:      time.Now,
	}
}

// Start launches the purge loop. Calling it on a running service is a no-op.
func (s *HousekeepingService) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.loop(ctx, s.done)

	s.Logger.Info("housekeeping started", slog.Duration("interval", s.Interval))
}

// Stop cancels the loop and waits for an in-flight purge. It is safe to call
// on a service that was never started.
func (s *HousekeepingService) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.Logger.Info("housekeeping stopped")
}

func (s *HousekeepingService) loop(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// First purge right away so a restart does not wait a full interval
	s.Cleanup(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Cleanup(ctx)
		}
	}
}

// Cleanup deletes expired codes once and reports how many were removed.
func (s *HousekeepingService) Cleanup(ctx context.Context) int64 {
	n, err := s.Store.Codes().DeleteExpiredCodes(ctx, s.Now().UTC())
	if err != nil {
		if ctx.Err() == nil {
			s.Logger.Error("failed to delete expired one-time codes", slog.Any("error", err))
		}
		return 0
	}
	if n > 0 {
		s.Logger.Info("expired one-time codes deleted", slog.Int64("count", n))
	}
	return n
}
