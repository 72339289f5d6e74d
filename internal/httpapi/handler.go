// Package httpapi exposes scoring and report delivery over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/handpartners/pmfstudio/core"
	"github.com/handpartners/pmfstudio/internal/contract"
	"github.com/handpartners/pmfstudio/schema"
)

// Reporter renders and delivers a full report, returning a shareable link.
// An empty link with a nil error means delivery was skipped or degraded.
type Reporter interface {
	Deliver(ctx context.Context, startupName string, in schema.SurveyInput, eval schema.Evaluation) (string, error)
}

// Handler provides HTTP API endpoints.
type Handler struct {
	engine      *core.Engine
	tokens      contract.TokenStore
	history     contract.HistoryStore
	reporter    Reporter
	version     string
	authEnabled bool
}

// NewHandler creates a new API handler. The reporter may be nil, in which
// case the report endpoint returns 503.
func NewHandler(
	engine *core.Engine,
	tokens contract.TokenStore,
	history contract.HistoryStore,
	reporter Reporter,
	version string,
	authEnabled bool,
) *Handler {
	return &Handler{
		engine:      engine,
		tokens:      tokens,
		history:     history,
		reporter:    reporter,
		version:     version,
		authEnabled: authEnabled,
	}
}

// RegisterRoutes sets up all API routes.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	// Health and info
	r.HandleFunc("/", h.handleIndex).Methods("GET")
	r.HandleFunc("/health", h.handleHealth).Methods("GET")

	// Scoring and delivery
	r.HandleFunc("/score", h.requireToken(h.handleScore)).Methods("POST")
	r.HandleFunc("/report", h.requireToken(h.handleReport)).Methods("POST")
}

// scoreRequest is the body accepted by the score and report endpoints.
type scoreRequest struct {
	StartupName string         `json:"startup_name"`
	Responses   map[string]any `json:"responses"`
}

// scoreResponse is the body returned by the score endpoint.
type scoreResponse struct {
	PmfScore   *float64                 `json:"pmf_score"`
	Stage      string                   `json:"stage"`
	Note       string                   `json:"note,omitempty"`
	Components schema.ComponentScores   `json:"components"`
	Quality    schema.QualityAssessment `json:"quality"`
}

// reportResponse is the body returned by the report endpoint.
type reportResponse struct {
	PmfScore  *float64 `json:"pmf_score"`
	Stage     string   `json:"stage"`
	DriveLink string   `json:"drive_link"`
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		contract.LogWarn("encoding response", err)
	}
}

// respondError sends a JSON error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// requireToken validates the bearer token before calling the wrapped handler.
// Auth failures are reported with their stable error code so API clients can
// distinguish expired tokens from revoked ones.
func (h *Handler) requireToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.authEnabled {
			next(w, r)
			return
		}

		token := extractToken(r)
		if _, err := h.tokens.ValidateToken(r.Context(), token); err != nil {
			var authErr *contract.AuthError
			if errors.As(err, &authErr) {
				respondError(w, http.StatusUnauthorized, authErr.Code)
				return
			}
			respondError(w, http.StatusInternalServerError, "token validation failed")
			return
		}

		next(w, r)
	}
}

// extractToken pulls the API token from the Authorization header or the
// token query parameter.
func extractToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return r.URL.Query().Get("token")
}

// handleIndex returns server information.
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"service": "pmfstudio",
		"version": h.version,
	})
}

// handleHealth returns server health status.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeScoreRequest parses the request body into a survey input.
func decodeScoreRequest(r *http.Request) (string, schema.SurveyInput, error) {
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", nil, err
	}
	if req.Responses == nil {
		return "", nil, errors.New("responses object is required")
	}
	return strings.TrimSpace(req.StartupName), schema.ParseSurvey(req.Responses), nil
}

// handleScore scores a survey and returns the gated result.
func (h *Handler) handleScore(w http.ResponseWriter, r *http.Request) {
	name, in, err := decodeScoreRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	eval := h.engine.Evaluate(in)
	h.recordHistory(r.Context(), name, eval)

	respondJSON(w, http.StatusOK, scoreResponse{
		PmfScore:   eval.Display.Score,
		Stage:      eval.Display.Stage,
		Note:       eval.Display.Note,
		Components: eval.Components,
		Quality:    eval.Quality,
	})
}

// handleReport scores a survey, then renders and delivers the full report.
func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	if h.reporter == nil {
		respondError(w, http.StatusServiceUnavailable, "report delivery is not configured")
		return
	}

	name, in, err := decodeScoreRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	eval := h.engine.Evaluate(in)
	h.recordHistory(r.Context(), name, eval)

	link, err := h.reporter.Deliver(r.Context(), name, in, eval)
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, reportResponse{
		PmfScore:  eval.Display.Score,
		Stage:     eval.Display.Stage,
		DriveLink: link,
	})
}

// recordHistory persists the evaluation. History failures never fail the request.
func (h *Handler) recordHistory(ctx context.Context, name string, eval schema.Evaluation) {
	if h.history == nil {
		return
	}
	if _, err := h.history.RecordEvaluation(ctx, name, eval); err != nil {
		contract.LogWarn("recording evaluation", err)
	}
}
