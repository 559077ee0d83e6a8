package sweeper

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"lineup-service/internal/logging"
	"lineup-service/internal/metrics"
)

const defaultInterval = 1 * time.Hour

// Purger removes snapshots past their retention window.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// Sweeper runs the retention purge on an interval so expired lineup
// snapshots leave the database instead of merely being filtered on read.
type Sweeper struct {
	purger   Purger
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the sweep loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	LastPurged          int64
}

// IsReady reports whether the sweeper has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Sweeper with sane defaults.
func New(purger Purger, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Sweeper{
		purger:   purger,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start begins sweeping until the context is cancelled or Stop is called.
func (s *Sweeper) Start(ctx context.Context) {
	s.startMu.Lock()
	if s.started {
		s.startMu.Unlock()
		return
	}
	s.started = true
	s.startMu.Unlock()

	s.ticker = time.NewTicker(s.interval)

	go func() {
		s.logInfo("sweeper started", slog.Int64(logging.FieldDurationMS, s.interval.Milliseconds()))
		// Initial sweep to clear backlog on boot.
		s.sweepOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				s.stopTicker()
				s.logInfo("sweeper stopped")
				return
			case <-s.done:
				s.stopTicker()
				s.logInfo("sweeper stopped")
				return
			case <-s.ticker.C:
				s.sweepOnce(ctx)
			}
		}
	}()
}

// Stop halts the sweep loop.
func (s *Sweeper) Stop(ctx context.Context) error {
	_ = ctx
	s.stopOnce.Do(func() {
		close(s.done)
		s.stopTicker()
	})
	return nil
}

func (s *Sweeper) sweepOnce(ctx context.Context) {
	start := time.Now()
	s.recordAttempt(start)

	purged, err := s.purger.PurgeExpired(ctx)
	if s.metrics != nil {
		s.metrics.RecordSweepCycle(time.Since(start), err)
	}
	if err != nil {
		s.logError("sweep failed", err, slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()))
		s.recordFailure(err, start)
		return
	}

	s.recordSuccess(start, purged)
	s.logInfo("sweep purged expired snapshots",
		logging.FieldCount, purged,
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
}

func (s *Sweeper) stopTicker() {
	if s.ticker != nil {
		s.ticker.Stop()
	}
}

func (s *Sweeper) logInfo(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s *Sweeper) logError(msg string, err error, attrs ...any) {
	if s.logger != nil {
		s.logger.Error(msg, append(attrs, "error", err)...)
	}
}

func (s *Sweeper) recordAttempt(at time.Time) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.LastAttempt = at
}

func (s *Sweeper) recordSuccess(at time.Time, purged int64) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.ConsecutiveFailures = 0
	s.status.LastError = ""
	s.status.LastSuccess = at
	s.status.LastPurged = purged
}

func (s *Sweeper) recordFailure(err error, at time.Time) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.ConsecutiveFailures++
	if err != nil {
		s.status.LastError = err.Error()
	}
	s.status.LastAttempt = at
}

// Status returns a snapshot of the sweeper's recent health.
func (s *Sweeper) Status() Status {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()
	return s.status
}
