package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"lineup-service/internal/config"
	"lineup-service/internal/sweeper"
	"lineup-service/internal/testutil"
)

type stubSweeper struct {
	startCalls int
	stopCalls  int
	statusVal  sweeper.Status
}

func (s *stubSweeper) Start(context.Context) { s.startCalls++ }

func (s *stubSweeper) Stop(context.Context) error { s.stopCalls++; return nil }

func (s *stubSweeper) Status() sweeper.Status { return s.statusVal }

type stubHTTPServer struct {
	addrVal       string
	handlerVal    http.Handler
	listenCalls   int
	shutdownCalls int
	listenErr     error
}

func (s *stubHTTPServer) ListenAndServe() error { s.listenCalls++; return s.listenErr }

func (s *stubHTTPServer) Shutdown(context.Context) error { s.shutdownCalls++; return nil }

func (s *stubHTTPServer) Addr() string { return s.addrVal }

func (s *stubHTTPServer) Handler() http.Handler { return s.handlerVal }

func testConfig(t *testing.T) config.Config {
	t.Helper()

	cfg := config.Load()
	cfg.Port = "0"
	cfg.Provider = "fixture"
	cfg.Snapshots.DBPath = filepath.Join(t.TempDir(), "lineups.db")
	cfg.Metrics.Enabled = false
	return cfg
}

func TestNewWiresEverything(t *testing.T) {
	srv, err := New(testConfig(t), testutil.DiscardLogger())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer srv.snapshots.Close()

	if srv.sessions == nil || srv.rosterService == nil || srv.sweeper == nil {
		t.Fatalf("expected all components wired")
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected healthy server, got %d", rec.Code)
	}
}

func TestNewFailsOnUnwritableStore(t *testing.T) {
	cfg := testConfig(t)
	cfg.Snapshots.DBPath = "/proc/nope/lineups.db"

	if _, err := New(cfg, testutil.DiscardLogger()); err == nil {
		t.Fatalf("expected error for unwritable snapshot path")
	}
}

func TestAdminRouteMountedOnlyWithToken(t *testing.T) {
	cfg := testConfig(t)
	cfg.AdminToken = "secret"
	srv, err := New(cfg, testutil.DiscardLogger())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer srv.snapshots.Close()

	req := httptest.NewRequest(http.MethodPost, "/admin/purge", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected purge to succeed, got %d", rec.Code)
	}

	cfg.AdminToken = ""
	cfg.Snapshots.DBPath = filepath.Join(t.TempDir(), "other.db")
	noAdmin, err := New(cfg, testutil.DiscardLogger())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer noAdmin.snapshots.Close()

	rec = httptest.NewRecorder()
	noAdmin.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/purge", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected admin unmounted without token, got %d", rec.Code)
	}
}

func TestRunStartsAndStops(t *testing.T) {
	httpSrv := &stubHTTPServer{addrVal: ":0"}
	swp := &stubSweeper{}
	srv := newServerWithDeps(testConfig(t), testutil.DiscardLogger(), httpSrv, swp)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("run did not return after cancel")
	}

	if swp.startCalls != 1 || swp.stopCalls != 1 {
		t.Fatalf("expected sweeper start/stop once, got %d/%d", swp.startCalls, swp.stopCalls)
	}
	if httpSrv.shutdownCalls != 1 {
		t.Fatalf("expected one http shutdown, got %d", httpSrv.shutdownCalls)
	}
}

func TestBuildMetricsDisabled(t *testing.T) {
	cfg := testConfig(t)

	rec, metricsSrv, shutdown := buildMetrics(cfg, testutil.DiscardLogger())
	if rec == nil {
		t.Fatalf("expected recorder even when disabled")
	}
	if metricsSrv != nil {
		t.Fatalf("expected no metrics server when disabled")
	}
	if shutdown == nil {
		t.Fatalf("expected shutdown func")
	}
}

func TestSelectProviderFallsBack(t *testing.T) {
	cfg := testConfig(t)
	cfg.Provider = "mystery"
	if p := selectProvider(cfg, testutil.DiscardLogger()); p == nil {
		t.Fatalf("expected fallback provider")
	}
}

func TestNormalizeProviderName(t *testing.T) {
	if got := normalizeProviderName("RosterAPI", nil); got != "rosterapi" {
		t.Fatalf("expected lowercase name, got %q", got)
	}
	if got := normalizeProviderName("", nil); got != "provider" {
		t.Fatalf("expected default name, got %q", got)
	}
}
