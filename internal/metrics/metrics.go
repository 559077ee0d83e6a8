package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type persistenceStats struct {
	ops         int
	errors      int
	lastLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about provider calls,
// lineup mutations and persistence writes. It is intentionally simple so
// it can be swapped for a real backend later.
type Recorder struct {
	mu          sync.Mutex
	stats       map[string]*providerStats
	mutations   map[string]int
	persistence map[string]*persistenceStats
	otel        *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:       make(map[string]*providerStats),
		mutations:   make(map[string]int),
		persistence: make(map[string]*persistenceStats),
		otel:        otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	stats := r.ensureStats(provider)
	r.mu.Lock()
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	stats := r.ensureStats(provider)
	r.mu.Lock()
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// RecordMutation counts one lineup mutation by kind (e.g. "assign_major").
func (r *Recorder) RecordMutation(kind string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.mutations[kind]++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordMutation(kind)
	}
}

// MutationCount returns how many mutations of the given kind were recorded.
func (r *Recorder) MutationCount(kind string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mutations[kind]
}

// RecordPersistence tracks one snapshot store operation ("save", "load", "purge").
func (r *Recorder) RecordPersistence(op string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	stats, ok := r.persistence[op]
	if !ok {
		stats = &persistenceStats{}
		r.persistence[op] = stats
	}
	stats.ops++
	stats.lastLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordPersistence(op, duration, err)
	}
}

// PersistenceOps returns the operation/error counts recorded for op.
func (r *Recorder) PersistenceOps(op string) (ops, errs int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if stats, ok := r.persistence[op]; ok {
		return stats.ops, stats.errors
	}
	return 0, 0
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// Snapshot is a copy of the current stats for one provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if stats, ok := r.stats[provider]; ok && stats != nil {
		return Snapshot{
			Calls:           stats.calls,
			Errors:          stats.errors,
			RateLimitHits:   stats.rateLimitHits,
			LastRetryAfter:  stats.lastRetryAfter,
			LastCallLatency: stats.lastCallLatency,
		}
	}
	return Snapshot{}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordSweepCycle tracks retention sweeper cycles and errors.
func (r *Recorder) RecordSweepCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordSweep(duration, err)
}

func (r *Recorder) ensureStats(provider string) *providerStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}
