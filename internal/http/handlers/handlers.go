package handlers

import (
	"io"
	"log/slog"
	nethttp "net/http"
	"net/url"
	"strconv"
	"strings"

	"lineup-service/internal/app/roster"
	"lineup-service/internal/app/sessions"
	domainlineup "lineup-service/internal/domain/lineup"
	"lineup-service/internal/domain/players"
	"lineup-service/internal/projection"
	"lineup-service/internal/providers"
	"lineup-service/internal/render"
	"lineup-service/internal/rules"
	"lineup-service/internal/snapshots"
	"lineup-service/internal/sweeper"
	"lineup-service/internal/timeutil"
	"lineup-service/internal/wizard"
)

const maxBodyBytes = 1 << 20

// Handler wires HTTP routes to lineup sessions and providers.
type Handler struct {
	sessions  *sessions.Manager
	rosters   *roster.Service
	opponents providers.OpponentProvider
	renderer  render.Renderer
	logger    *slog.Logger
	statusFn  func() sweeper.Status
}

// NewHandler constructs a Handler.
func NewHandler(mgr *sessions.Manager, rosters *roster.Service, opponents providers.OpponentProvider, logger *slog.Logger, statusFn func() sweeper.Status) *Handler {
	return &Handler{
		sessions:  mgr,
		rosters:   rosters,
		opponents: opponents,
		logger:    logger,
		statusFn:  statusFn,
	}
}

// WithRenderer attaches the external rendering collaborator. Without one
// the image endpoint reports that rendering is unavailable.
func (h *Handler) WithRenderer(r render.Renderer) *Handler {
	h.renderer = r
	return h
}

func (h *Handler) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch {
	case r.URL.Path == "/health":
		h.Health(w, r)
	case r.URL.Path == "/ready":
		h.Ready(w, r)
	case r.URL.Path == "/opponents":
		h.Opponents(w, r)
	case strings.HasPrefix(r.URL.Path, "/teams/"):
		h.teamRoutes(w, r)
	default:
		writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
	}
}

func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	if h.statusFn().IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := h.statusFn().LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Opponents lists the known opposing clubs with their logos.
func (h *Handler) Opponents(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if h.opponents == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "opponent provider not configured", h.logger)
		return
	}

	opponents, err := h.opponents.FetchOpponents(r.Context())
	if err != nil {
		writeError(w, r, nethttp.StatusBadGateway, "failed to fetch opponents", h.logger)
		return
	}

	type opponentPayload struct {
		Name      string `json:"name"`
		ShortName string `json:"shortName"`
		LogoURL   string `json:"logoUrl,omitempty"`
	}
	payload := make([]opponentPayload, 0, len(opponents))
	for _, o := range opponents {
		entry := opponentPayload{Name: o.Name, ShortName: o.ShortName}
		if logo, ok := h.opponents.TeamLogo(o.Name); ok {
			entry.LogoURL = logo
		}
		payload = append(payload, entry)
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{"opponents": payload}, h.logger)
}

func (h *Handler) teamRoutes(w nethttp.ResponseWriter, r *nethttp.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/teams/")
	parts := strings.SplitN(rest, "/", 2)

	teamID, err := url.PathUnescape(parts[0])
	if err != nil || teamID == "" || strings.ContainsAny(teamID, " \t") {
		writeError(w, r, nethttp.StatusBadRequest, "invalid team id", h.logger)
		return
	}

	sub := ""
	if len(parts) == 2 {
		sub = strings.TrimSuffix(parts[1], "/")
	}

	switch {
	case sub == "roster":
		h.Roster(w, r, teamID)
	case sub == "session":
		h.Session(w, r, teamID)
	case sub == "lineup" || strings.HasPrefix(sub, "lineup/"):
		h.lineupRoutes(w, r, teamID, strings.TrimPrefix(sub, "lineup"))
	default:
		writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
	}
}

// Roster returns the team's full roster, coaches included.
func (h *Handler) Roster(w nethttp.ResponseWriter, r *nethttp.Request, teamID string) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	list, err := h.rosters.Players(r.Context(), teamID)
	if err != nil {
		if _, ok := providers.AsNotFoundError(err); ok {
			writeError(w, r, nethttp.StatusNotFound, "team not found", logger)
			return
		}
		writeError(w, r, nethttp.StatusBadGateway, "failed to fetch roster", logger)
		return
	}

	type rosterEntry struct {
		ID string `json:"id"`
		players.Player
	}
	payload := make([]rosterEntry, 0, len(list))
	for _, p := range list {
		payload = append(payload, rosterEntry{ID: p.ID(), Player: p})
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{
		"teamId":  teamID,
		"players": payload,
		"coaches": len(roster.Coaches(list)),
	}, logger)
}

// Session opens or closes the editing session for a team.
func (h *Handler) Session(w nethttp.ResponseWriter, r *nethttp.Request, teamID string) {
	logger := loggerFromContext(r, h.logger)

	switch r.Method {
	case nethttp.MethodPost:
		ctrl, err := h.sessions.Open(r.Context(), teamID)
		if err != nil {
			if _, ok := providers.AsNotFoundError(err); ok {
				writeError(w, r, nethttp.StatusNotFound, "team not found", logger)
				return
			}
			writeError(w, r, nethttp.StatusBadGateway, "failed to open session", logger)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]any{
			"teamId":  teamID,
			"step":    ctrl.Step(),
			"summary": ctrl.Summary(),
		}, logger)
	case nethttp.MethodDelete:
		h.sessions.Close(teamID)
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "closed"}, logger)
	default:
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", logger)
	}
}

func (h *Handler) lineupRoutes(w nethttp.ResponseWriter, r *nethttp.Request, teamID, sub string) {
	sub = strings.TrimPrefix(sub, "/")
	logger := loggerFromContext(r, h.logger)

	ctrl, ok := h.sessions.Get(teamID)
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "no active session for team", logger)
		return
	}

	switch {
	case sub == "":
		h.Lineup(w, r, ctrl)
	case sub == "image":
		h.Image(w, r, ctrl)
	case sub == "eligible":
		h.Eligible(w, r, ctrl)
	case sub == "step":
		h.StepState(w, r, ctrl)
	case sub == "step/next":
		h.StepNext(w, r, ctrl)
	case sub == "step/back":
		h.StepBack(w, r, ctrl)
	case sub == "match-info":
		h.MatchInfo(w, r, ctrl)
	case strings.HasPrefix(sub, "positions/"):
		h.Position(w, r, ctrl, strings.TrimPrefix(sub, "positions/"))
	case sub == "coach":
		h.Coach(w, r, ctrl)
	case strings.HasPrefix(sub, "substitutes/"):
		h.Substitute(w, r, ctrl, strings.TrimPrefix(sub, "substitutes/"))
	case sub == "result/score":
		h.Score(w, r, ctrl)
	case sub == "result/status":
		h.Status(w, r, ctrl)
	case sub == "result/highlights":
		h.AddHighlight(w, r, ctrl)
	case strings.HasPrefix(sub, "result/highlights/"):
		h.RemoveHighlight(w, r, ctrl, strings.TrimPrefix(sub, "result/highlights/"))
	case sub == "result/notes":
		h.Notes(w, r, ctrl)
	case sub == "clear-match-data":
		h.ClearMatchData(w, r, ctrl)
	case sub == "clear-saved-data":
		h.ClearSavedData(w, r, ctrl)
	case sub == "export":
		h.Export(w, r, ctrl)
	case sub == "import":
		h.Import(w, r, ctrl)
	default:
		writeError(w, r, nethttp.StatusNotFound, "not found", logger)
	}
}

// Lineup returns the projected composition summary.
func (h *Handler) Lineup(w nethttp.ResponseWriter, r *nethttp.Request, ctrl *wizard.Controller) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	layout := projection.LayoutGrid
	if raw := r.URL.Query().Get("layout"); raw != "" {
		parsed, ok := projection.ParseLayout(raw)
		if !ok {
			writeError(w, r, nethttp.StatusBadRequest, "invalid layout", logger)
			return
		}
		layout = parsed
	}

	writeJSON(w, nethttp.StatusOK, map[string]any{
		"layout":  layout,
		"step":    ctrl.Step(),
		"summary": ctrl.Summary(),
	}, logger)
}

// Image renders the projected summary through the external renderer.
func (h *Handler) Image(w nethttp.ResponseWriter, r *nethttp.Request, ctrl *wizard.Controller) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	if h.renderer == nil {
		writeError(w, r, nethttp.StatusNotImplemented, "rendering not configured", logger)
		return
	}

	layout := projection.LayoutGrid
	if raw := r.URL.Query().Get("layout"); raw != "" {
		parsed, ok := projection.ParseLayout(raw)
		if !ok {
			writeError(w, r, nethttp.StatusBadRequest, "invalid layout", logger)
			return
		}
		layout = parsed
	}

	image, err := h.renderer.Render(r.Context(), ctrl.Summary(), layout)
	if err != nil {
		writeError(w, r, nethttp.StatusBadGateway, "rendering failed", logger)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(nethttp.StatusOK)
	if _, err := w.Write(image); err != nil && logger != nil {
		logger.Error("failed to write image", "err", err)
	}
}

// Eligible returns the candidate pools for a slot.
func (h *Handler) Eligible(w nethttp.ResponseWriter, r *nethttp.Request, ctrl *wizard.Controller) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	raw := r.URL.Query().Get("position")
	position, ok := players.ParsePosition(raw)
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid position", logger)
		return
	}

	candidates := ctrl.Eligible(position)
	writeJSON(w, nethttp.StatusOK, map[string]any{
		"position": position,
		"exact":    identified(candidates.Exact),
		"other":    identified(candidates.Other),
	}, logger)
}

type identifiedPlayer struct {
	ID string `json:"id"`
	players.Player
}

func identified(list []players.Player) []identifiedPlayer {
	result := make([]identifiedPlayer, 0, len(list))
	for _, p := range list {
		result = append(result, identifiedPlayer{ID: p.ID(), Player: p})
	}
	return result
}

// StepState reports the current wizard step.
func (h *Handler) StepState(w nethttp.ResponseWriter, r *nethttp.Request, ctrl *wizard.Controller) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{"step": ctrl.Step()}, h.logger)
}

// StepNext advances the wizard, rejecting the transition when the lineup is
// incomplete.
func (h *Handler) StepNext(w nethttp.ResponseWriter, r *nethttp.Request, ctrl *wizard.Controller) {
	if !requireMethod(w, r, nethttp.MethodPost, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	step, err := ctrl.Next(r.Context())
	if err != nil {
		if ve, ok := rules.AsValidationError(err); ok {
			writeError(w, r, nethttp.StatusUnprocessableEntity, ve.Error(), logger)
			return
		}
		writeError(w, r, nethttp.StatusInternalServerError, "transition failed", logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{"step": step}, logger)
}

// StepBack retreats the wizard unconditionally.
func (h *Handler) StepBack(w nethttp.ResponseWriter, r *nethttp.Request, ctrl *wizard.Controller) {
	if !requireMethod(w, r, nethttp.MethodPost, h.logger) {
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{"step": ctrl.Back()}, h.logger)
}

// MatchInfo replaces the match logistics.
func (h *Handler) MatchInfo(w nethttp.ResponseWriter, r *nethttp.Request, ctrl *wizard.Controller) {
	if !requireMethod(w, r, nethttp.MethodPut, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	var info domainlineup.MatchInfo
	if !decodeBody(w, r, &info, logger) {
		return
	}
	if info.Date != "" && info.Date != domainlineup.TBD && !timeutil.ValidDate(info.Date) {
		writeError(w, r, nethttp.StatusBadRequest, "invalid date format (expected YYYY-MM-DD)", logger)
		return
	}
	ctrl.SetMatchInfo(r.Context(), info)
	writeJSON(w, nethttp.StatusOK, map[string]any{"summary": ctrl.Summary()}, logger)
}

type assignRequest struct {
	PlayerID string `json:"playerId"`
}

// Position assigns or clears a tactical slot.
func (h *Handler) Position(w nethttp.ResponseWriter, r *nethttp.Request, ctrl *wizard.Controller, raw string) {
	if !requireMethod(w, r, nethttp.MethodPut, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	position, ok := players.ParsePosition(raw)
	if !ok || !position.IsTactical() {
		writeError(w, r, nethttp.StatusBadRequest, "invalid position", logger)
		return
	}

	var req assignRequest
	if !decodeBody(w, r, &req, logger) {
		return
	}
	ctrl.AssignMajor(r.Context(), position, req.PlayerID)
	writeJSON(w, nethttp.StatusOK, map[string]any{"summary": ctrl.Summary()}, logger)
}

// Coach assigns or clears the coach slot.
func (h *Handler) Coach(w nethttp.ResponseWriter, r *nethttp.Request, ctrl *wizard.Controller) {
	if !requireMethod(w, r, nethttp.MethodPut, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	var req assignRequest
	if !decodeBody(w, r, &req, logger) {
		return
	}
	ctrl.AssignCoach(r.Context(), req.PlayerID)
	writeJSON(w, nethttp.StatusOK, map[string]any{"summary": ctrl.Summary()}, logger)
}

// Substitute assigns or clears a bench slot.
func (h *Handler) Substitute(w nethttp.ResponseWriter, r *nethttp.Request, ctrl *wizard.Controller, raw string) {
	if !requireMethod(w, r, nethttp.MethodPut, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 || index >= domainlineup.MaxSubstitutes {
		writeError(w, r, nethttp.StatusBadRequest, "invalid substitute index", logger)
		return
	}

	var req assignRequest
	if !decodeBody(w, r, &req, logger) {
		return
	}
	ctrl.AssignSubstitute(r.Context(), index, req.PlayerID)
	writeJSON(w, nethttp.StatusOK, map[string]any{"summary": ctrl.Summary()}, logger)
}

// Score records the final score.
func (h *Handler) Score(w nethttp.ResponseWriter, r *nethttp.Request, ctrl *wizard.Controller) {
	if !requireMethod(w, r, nethttp.MethodPut, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	var req struct {
		Home int `json:"home"`
		Away int `json:"away"`
	}
	if !decodeBody(w, r, &req, logger) {
		return
	}
	if req.Home < 0 || req.Away < 0 {
		writeError(w, r, nethttp.StatusBadRequest, "scores must be non-negative", logger)
		return
	}
	ctrl.SetScore(r.Context(), req.Home, req.Away)
	writeJSON(w, nethttp.StatusOK, map[string]any{"summary": ctrl.Summary()}, logger)
}

// Status overrides the derived match status.
func (h *Handler) Status(w nethttp.ResponseWriter, r *nethttp.Request, ctrl *wizard.Controller) {
	if !requireMethod(w, r, nethttp.MethodPut, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	var req struct {
		Status string `json:"status"`
	}
	if !decodeBody(w, r, &req, logger) {
		return
	}
	status, ok := domainlineup.ParseMatchStatus(req.Status)
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid match status", logger)
		return
	}
	ctrl.SetStatus(r.Context(), status)
	writeJSON(w, nethttp.StatusOK, map[string]any{"summary": ctrl.Summary()}, logger)
}

// AddHighlight appends a highlight entry.
func (h *Handler) AddHighlight(w nethttp.ResponseWriter, r *nethttp.Request, ctrl *wizard.Controller) {
	if !requireMethod(w, r, nethttp.MethodPost, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	var req struct {
		Text string `json:"text"`
	}
	if !decodeBody(w, r, &req, logger) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, r, nethttp.StatusBadRequest, "highlight text required", logger)
		return
	}
	ctrl.AddHighlight(r.Context(), req.Text)
	writeJSON(w, nethttp.StatusOK, map[string]any{"summary": ctrl.Summary()}, logger)
}

// RemoveHighlight drops the highlight at index.
func (h *Handler) RemoveHighlight(w nethttp.ResponseWriter, r *nethttp.Request, ctrl *wizard.Controller, raw string) {
	if !requireMethod(w, r, nethttp.MethodDelete, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		writeError(w, r, nethttp.StatusBadRequest, "invalid highlight index", logger)
		return
	}
	ctrl.RemoveHighlight(r.Context(), index)
	writeJSON(w, nethttp.StatusOK, map[string]any{"summary": ctrl.Summary()}, logger)
}

// Notes replaces the free-form match notes.
func (h *Handler) Notes(w nethttp.ResponseWriter, r *nethttp.Request, ctrl *wizard.Controller) {
	if !requireMethod(w, r, nethttp.MethodPut, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	var req struct {
		Notes string `json:"notes"`
	}
	if !decodeBody(w, r, &req, logger) {
		return
	}
	ctrl.SetNotes(r.Context(), req.Notes)
	writeJSON(w, nethttp.StatusOK, map[string]any{"summary": ctrl.Summary()}, logger)
}

type confirmRequest struct {
	Confirm bool `json:"confirm"`
}

// ClearMatchData resets the match logistics after explicit confirmation.
func (h *Handler) ClearMatchData(w nethttp.ResponseWriter, r *nethttp.Request, ctrl *wizard.Controller) {
	if !requireMethod(w, r, nethttp.MethodPost, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	var req confirmRequest
	if !decodeBody(w, r, &req, logger) {
		return
	}
	if !req.Confirm {
		writeError(w, r, nethttp.StatusBadRequest, "confirmation required", logger)
		return
	}
	ctrl.ClearMatchData(r.Context())
	writeJSON(w, nethttp.StatusOK, map[string]any{"summary": ctrl.Summary()}, logger)
}

// ClearSavedData empties assignments after explicit confirmation.
func (h *Handler) ClearSavedData(w nethttp.ResponseWriter, r *nethttp.Request, ctrl *wizard.Controller) {
	if !requireMethod(w, r, nethttp.MethodPost, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	var req confirmRequest
	if !decodeBody(w, r, &req, logger) {
		return
	}
	if !req.Confirm {
		writeError(w, r, nethttp.StatusBadRequest, "confirmation required", logger)
		return
	}
	ctrl.ClearSavedData(r.Context())
	writeJSON(w, nethttp.StatusOK, map[string]any{"summary": ctrl.Summary()}, logger)
}

// Export streams the composition as a downloadable document.
func (h *Handler) Export(w nethttp.ResponseWriter, r *nethttp.Request, ctrl *wizard.Controller) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	data, filename, err := ctrl.Export(r.Context())
	if err != nil {
		writeError(w, r, nethttp.StatusInternalServerError, "export failed", logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(nethttp.StatusOK)
	if _, err := w.Write(data); err != nil && logger != nil {
		logger.Error("failed to write export", "err", err)
	}
}

// Import replaces the composition from an uploaded document.
func (h *Handler) Import(w nethttp.ResponseWriter, r *nethttp.Request, ctrl *wizard.Controller) {
	if !requireMethod(w, r, nethttp.MethodPost, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	data, err := io.ReadAll(nethttp.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid request body", logger)
		return
	}

	mode := snapshots.ParseImportMode(r.URL.Query().Get("mode"))
	if err := ctrl.Import(r.Context(), data, mode); err != nil {
		if fe, ok := snapshots.AsFormatError(err); ok {
			writeError(w, r, nethttp.StatusBadRequest, fe.Error(), logger)
			return
		}
		writeError(w, r, nethttp.StatusInternalServerError, "import failed", logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{
		"mode":    mode,
		"summary": ctrl.Summary(),
	}, logger)
}
