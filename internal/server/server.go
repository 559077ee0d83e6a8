package server

import (
	"context"
	"log/slog"
	"net/http"

	"lineup-service/internal/app/roster"
	"lineup-service/internal/app/sessions"
	"lineup-service/internal/config"
	httpserver "lineup-service/internal/http"
	"lineup-service/internal/http/handlers"
	"lineup-service/internal/http/middleware"
	"lineup-service/internal/logging"
	"lineup-service/internal/metrics"
	"lineup-service/internal/providers"
	"lineup-service/internal/store"
	"lineup-service/internal/sweeper"
)

var metricsSetup = metrics.Setup

// openSnapshotStore is a package-level var to allow test injection.
var openSnapshotStore = store.OpenSnapshotStore

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	snapshots     *store.SnapshotStore
	rosterService *roster.Service
	sessions      *sessions.Manager
	httpServer    httpServer
	metricsServer httpServer
	sweeper       Sweeper
	metricsStop   func(context.Context) error
}

// New constructs a server with default provider and sweeper wiring.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServerWithProvider(cfg, logger, nil)
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.DataProvider) (*Server, error) {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger)

	if provider == nil {
		provider = selectProvider(cfg, logger)
	}
	retrying := providers.NewRetryingProvider(provider, logger, recorder, normalizeProviderName(cfg.Provider, provider), 0, 0)

	snapshotStore, err := openSnapshotStore(cfg.Snapshots.DBPath, cfg.Snapshots.RetentionDays, recorder)
	if err != nil {
		return nil, err
	}

	rosterSvc := roster.NewService(retrying, store.NewRosterCache())
	sessionMgr := sessions.NewManager(rosterSvc, snapshotStore, logger, recorder)
	swp := sweeper.New(snapshotStore, logger, recorder, cfg.Snapshots.SweepInterval)
	httpSrv := buildHTTPServer(cfg, sessionMgr, rosterSvc, provider, snapshotStore, logger, recorder, swp)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		snapshots:     snapshotStore,
		rosterService: rosterSvc,
		sessions:      sessionMgr,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		sweeper:       swp,
		metricsStop:   metricsShutdown,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, swp Sweeper) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		sweeper:    swp,
	}
}

func buildHTTPServer(cfg config.Config, sessionMgr *sessions.Manager, rosterSvc *roster.Service, opponents providers.OpponentProvider, snapshotStore *store.SnapshotStore, logger *slog.Logger, recorder *metrics.Recorder, swp Sweeper) httpServer {
	var statusFn func() sweeper.Status
	if swp != nil {
		statusFn = swp.Status
	}

	handler := handlers.NewHandler(sessionMgr, rosterSvc, opponents, logger, statusFn)
	var admin *handlers.AdminHandler
	if cfg.AdminToken != "" {
		admin = handlers.NewAdminHandler(snapshotStore, cfg.AdminToken, logger)
	}
	router := httpserver.NewRouter(handler, admin)

	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the sweeper and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.sweeper.Start(ctx)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if err := s.sweeper.Stop(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("failed to stop sweeper", "error", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	if s.snapshots != nil {
		if err := s.snapshots.Close(); err != nil && s.logger != nil {
			s.logger.Warn("snapshot store close failed", "error", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger) (*metrics.Recorder, httpServer, func(context.Context) error) {
	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
