package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/efisher/refkey/internal/application"
	"github.com/efisher/refkey/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// IssueKeyRequest is the JSON body for the issue endpoint. Date and Time
// use the wire layouts "2006-01-02" and "15:04".
type IssueKeyRequest struct {
	TeamA string `json:"participant_a"`
	TeamB string `json:"participant_b"`
	Date  string `json:"date"`
	Time  string `json:"time"`
}

// IssueKeyResponse is the JSON representation of a successful issuance.
type IssueKeyResponse struct {
	Token    string `json:"token"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	Mailto   string `json:"mailto"`
	IssuedAt string `json:"issued_at"`
}

// VerifyKeyRequest is the JSON body for the verify endpoint.
type VerifyKeyRequest struct {
	TeamA     string `json:"participant_a"`
	TeamB     string `json:"participant_b"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Candidate string `json:"token"`
}

// VerifyKeyResponse reports the verification outcome. ExpectedMasked
// redacts all but the last characters of the recomputed key.
type VerifyKeyResponse struct {
	Valid          bool   `json:"valid"`
	ExpectedMasked string `json:"expected_masked"`
}

// HistoryEntryResponse is the JSON representation of one ledger entry.
type HistoryEntryResponse struct {
	IssuedAt string `json:"issued_at"`
	TeamA    string `json:"participant_a"`
	TeamB    string `json:"participant_b"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Token    string `json:"token"`
}

// HistoryStatsResponse is the JSON representation of the ledger statistics.
type HistoryStatsResponse struct {
	Total       int `json:"total"`
	IssuedToday int `json:"issued_today"`
}

// TemplateResponse carries the current (or submitted) message template.
type TemplateResponse struct {
	Template string `json:"template"`
}

// TemplateRequest is the JSON body for the template update and preview
// endpoints.
type TemplateRequest struct {
	Template string `json:"template"`
}

// PreviewResponse is the rendered fixture preview of a template.
type PreviewResponse struct {
	Text string `json:"text"`
	HTML string `json:"html"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

func toIssueKeyResponse(result application.IssueResult) IssueKeyResponse {
	return IssueKeyResponse{
		Token:    result.Token,
		Subject:  result.Subject,
		Body:     result.Body,
		Mailto:   result.Mailto,
		IssuedAt: result.Entry.IssuedAt.Format(time.RFC3339),
	}
}

func toHistoryEntryResponse(e model.HistoryEntry) HistoryEntryResponse {
	return HistoryEntryResponse{
		IssuedAt: e.IssuedAt.Format(time.RFC3339),
		TeamA:    e.TeamA,
		TeamB:    e.TeamB,
		Date:     e.MatchDate(),
		Time:     e.MatchTime(),
		Token:    e.Token,
	}
}
