package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"lineup-service/internal/domain/players"
)

type scriptedProvider struct {
	calls   int
	results []error
	roster  []players.Player
}

func (s *scriptedProvider) FetchPlayers(ctx context.Context, teamID string) ([]players.Player, error) {
	idx := s.calls
	s.calls++
	if idx < len(s.results) && s.results[idx] != nil {
		return nil, s.results[idx]
	}
	return s.roster, nil
}

func newRetrying(inner RosterProvider, attempts int) RosterProvider {
	p := NewRetryingProvider(inner, nil, nil, "test", attempts, time.Millisecond)
	// Collapse backoff so tests stay fast.
	p.(*retryingProvider).backoffFn = func(int) time.Duration { return 0 }
	return p
}

func TestRetryingProviderSucceedsAfterRetries(t *testing.T) {
	inner := &scriptedProvider{
		results: []error{errors.New("boom"), errors.New("boom")},
		roster:  []players.Player{{FamilyName: "Aas"}},
	}
	p := newRetrying(inner, 3)

	roster, err := p.FetchPlayers(context.Background(), "demo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 3 || len(roster) != 1 {
		t.Fatalf("expected 3 attempts and a roster, got calls=%d", inner.calls)
	}
}

func TestRetryingProviderGivesUp(t *testing.T) {
	boom := errors.New("boom")
	inner := &scriptedProvider{results: []error{boom, boom, boom}}
	p := newRetrying(inner, 3)

	_, err := p.FetchPlayers(context.Background(), "demo")
	if !errors.Is(err, boom) {
		t.Fatalf("expected final error, got %v", err)
	}
	if inner.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", inner.calls)
	}
}

func TestRetryingProviderDoesNotRetryNotFound(t *testing.T) {
	inner := &scriptedProvider{results: []error{&NotFoundError{TeamID: "ghost"}}}
	p := newRetrying(inner, 3)

	_, err := p.FetchPlayers(context.Background(), "ghost")
	if _, ok := AsNotFoundError(err); !ok {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("not-found must be terminal, got %d attempts", inner.calls)
	}
}

func TestRetryingProviderHonorsContext(t *testing.T) {
	inner := &scriptedProvider{results: []error{errors.New("boom"), errors.New("boom")}}
	p := NewRetryingProvider(inner, nil, nil, "test", 3, 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.FetchPlayers(ctx, "demo")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}
