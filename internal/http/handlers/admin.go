package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"lineup-service/internal/http/requestutil"
	"lineup-service/internal/logging"
)

// Purger removes expired snapshots on demand.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// AdminHandler exposes admin-only endpoints (e.g., retention purge).
type AdminHandler struct {
	purger Purger
	token  string
	logger *slog.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(purger Purger, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		purger: purger,
		token:  token,
		logger: logger,
	}
}

// PurgeSnapshots deletes all snapshots past the retention window.
// Guarded by ADMIN_TOKEN env; returns 401 if missing/invalid.
func (h *AdminHandler) PurgeSnapshots(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.purger == nil {
		writeError(w, r, http.StatusServiceUnavailable, "snapshot store not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	purged, err := h.purger.PurgeExpired(r.Context())
	if err != nil {
		logging.Warn(logger, "admin purge failed", slog.Any("err", err))
		writeError(w, r, http.StatusInternalServerError, "failed to purge snapshots", logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"purged": purged,
		"status": "ok",
	}, logger)
	logging.Info(logger, "admin purge complete", slog.Int64("purged", purged))
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	return r.Header.Get("Authorization") == "Bearer "+h.token
}
