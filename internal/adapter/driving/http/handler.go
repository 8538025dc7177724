// Package httphandler is the HTTP driving adapter: a small REST API over
// the issuance, verification, history, and template operations. It stands
// in for the form-based desktop UI as the surrounding application.
package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/efisher/refkey/internal/application"
	"github.com/efisher/refkey/internal/domain/model"
	"github.com/efisher/refkey/internal/message"
	"github.com/efisher/refkey/internal/token"
)

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	issueSvc *application.IssueService
	logger   *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(issueSvc *application.IssueService, logger *slog.Logger) *Handler {
	return &Handler{
		issueSvc: issueSvc,
		logger:   logger,
	}
}

// NewServeMux creates an http.Handler with all routes registered and
// wrapped with logging and recovery middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/keys", h.IssueKey)
	mux.HandleFunc("POST /api/v1/keys/verify", h.VerifyKey)
	mux.HandleFunc("GET /api/v1/history", h.ListHistory)
	mux.HandleFunc("DELETE /api/v1/history", h.ClearHistory)
	mux.HandleFunc("GET /api/v1/history/stats", h.HistoryStats)
	mux.HandleFunc("GET /api/v1/template", h.GetTemplate)
	mux.HandleFunc("PUT /api/v1/template", h.PutTemplate)
	mux.HandleFunc("DELETE /api/v1/template", h.ResetTemplate)
	mux.HandleFunc("POST /api/v1/template/preview", h.PreviewTemplate)
	mux.HandleFunc("GET /api/v1/health", h.Health)

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = loggingMiddleware(logger, wrapped)

	return wrapped
}

// parseKickoff combines the wire date and time fields into one kickoff
// value, interpreted in the server's local zone.
func parseKickoff(dateStr, timeStr string) (time.Time, error) {
	return time.ParseInLocation(model.DateLayout+" "+model.TimeLayout, dateStr+" "+timeStr, time.Local)
}

// IssueKey derives a security key, renders the message, and appends a
// ledger entry.
func (h *Handler) IssueKey(w http.ResponseWriter, r *http.Request) {
	var req IssueKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	kickoff, err := parseKickoff(req.Date, req.Time)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date or time")
		return
	}

	result, err := h.issueSvc.Issue(r.Context(), application.IssueRequest{
		TeamA:   req.TeamA,
		TeamB:   req.TeamB,
		Kickoff: kickoff,
	})
	switch {
	case errors.Is(err, token.ErrEmptyTeam):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, message.ErrTemplateSyntax):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		h.logger.Error("failed to issue key", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, toIssueKeyResponse(*result))
}

// VerifyKey recomputes the expected key for the supplied attributes and
// compares it against the candidate.
func (h *Handler) VerifyKey(w http.ResponseWriter, r *http.Request) {
	var req VerifyKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	kickoff, err := parseKickoff(req.Date, req.Time)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date or time")
		return
	}

	res, err := h.issueSvc.Verify(application.VerifyRequest{
		TeamA:     req.TeamA,
		TeamB:     req.TeamB,
		Kickoff:   kickoff,
		Candidate: req.Candidate,
	})
	switch {
	case errors.Is(err, token.ErrEmptyTeam), errors.Is(err, token.ErrKeyLength):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		h.logger.Error("failed to verify key", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, VerifyKeyResponse{
		Valid:          res.Valid,
		ExpectedMasked: res.ExpectedMasked,
	})
}

// ListHistory returns the full issuance ledger, oldest first.
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.issueSvc.History(r.Context())
	if err != nil {
		h.logger.Error("failed to load history", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, toHistoryEntryResponse(e))
	}

	writeJSON(w, http.StatusOK, resp)
}

// ClearHistory removes every ledger entry. Irreversible.
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.issueSvc.ClearHistory(r.Context()); err != nil {
		h.logger.Error("failed to clear history", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HistoryStats returns ledger totals as of the server clock.
func (h *Handler) HistoryStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.issueSvc.Stats(r.Context())
	if err != nil {
		h.logger.Error("failed to compute history stats", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, HistoryStatsResponse{
		Total:       stats.Total,
		IssuedToday: stats.IssuedToday,
	})
}

// GetTemplate returns the stored message template, or the built-in default
// when the user never saved one.
func (h *Handler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	tmpl, err := h.issueSvc.Template(r.Context())
	if err != nil {
		h.logger.Error("failed to load template", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, TemplateResponse{Template: tmpl})
}

// PutTemplate stores the submitted template.
func (h *Handler) PutTemplate(w http.ResponseWriter, r *http.Request) {
	var req TemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.issueSvc.SetTemplate(r.Context(), req.Template); err != nil {
		h.logger.Error("failed to store template", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ResetTemplate restores the built-in default template.
func (h *Handler) ResetTemplate(w http.ResponseWriter, r *http.Request) {
	if err := h.issueSvc.ResetTemplate(r.Context()); err != nil {
		h.logger.Error("failed to reset template", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PreviewTemplate renders the submitted template (or the stored one when
// the body omits it) with fixture data.
func (h *Handler) PreviewTemplate(w http.ResponseWriter, r *http.Request) {
	var req TemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	text, html, err := h.issueSvc.PreviewTemplate(r.Context(), req.Template)
	switch {
	case errors.Is(err, message.ErrTemplateSyntax):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		h.logger.Error("failed to preview template", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, PreviewResponse{Text: text, HTML: html})
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}
