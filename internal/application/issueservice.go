// Package application orchestrates the core issuance and verification
// flows. Services depend only on port interfaces and the leaf packages, so
// the HTTP adapter and the storage backends stay swappable.
package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/efisher/refkey/internal/domain/model"
	"github.com/efisher/refkey/internal/domain/port/driven"
	"github.com/efisher/refkey/internal/message"
	"github.com/efisher/refkey/internal/token"
)

// templateSettingName is the settings key the user's custom template is
// stored under, carried over from the original desktop tool.
const templateSettingName = "email_template"

// IssueService implements key issuance, verification, the issuance ledger,
// and template management on top of the driven ports.
type IssueService struct {
	deriver  *token.Deriver
	history  driven.HistoryStore
	settings driven.SettingsStore
	mailTo   string
	now      func() time.Time
}

// NewIssueService creates an IssueService. mailTo is the recipient address
// placed in the generated mailto payload.
func NewIssueService(deriver *token.Deriver, history driven.HistoryStore, settings driven.SettingsStore, mailTo string) *IssueService {
	return &IssueService{
		deriver:  deriver,
		history:  history,
		settings: settings,
		mailTo:   mailTo,
		now:      time.Now,
	}
}

// IssueRequest carries the raw form values for one issuance. Kickoff holds
// both the match date and the time of day.
type IssueRequest struct {
	TeamA   string
	TeamB   string
	Kickoff time.Time
}

// IssueResult is the outcome of a successful issuance: the derived key, the
// rendered message, the mailto payload for the QR encoder, and the ledger
// entry that was appended.
type IssueResult struct {
	Token   string
	Subject string
	Body    string
	Mailto  string
	Entry   model.HistoryEntry
}

// Issue derives the security key for a match, renders the message template
// with the display values, and appends one entry to the ledger. A failed
// render or a failed append aborts the whole issuance; nothing is persisted
// unless every step succeeded.
func (s *IssueService) Issue(ctx context.Context, req IssueRequest) (*IssueResult, error) {
	teamA := strings.TrimSpace(req.TeamA)
	teamB := strings.TrimSpace(req.TeamB)
	if teamA == "" || teamB == "" {
		return nil, token.ErrEmptyTeam
	}

	key := s.deriver.Derive(teamA, teamB, req.Kickoff)

	tmpl, err := s.Template(ctx)
	if err != nil {
		return nil, err
	}

	body, err := message.Render(tmpl, message.Vars{
		TeamA: teamA,
		TeamB: teamB,
		Date:  req.Kickoff.Format(model.DateLayout),
		Time:  req.Kickoff.Format(model.TimeLayout),
		Token: key,
	})
	if err != nil {
		return nil, err
	}

	entry := model.HistoryEntry{
		IssuedAt: s.now(),
		TeamA:    teamA,
		TeamB:    teamB,
		Kickoff:  req.Kickoff,
		Token:    key,
	}
	if err := s.history.Append(ctx, entry); err != nil {
		return nil, err
	}

	return &IssueResult{
		Token:   key,
		Subject: message.Subject,
		Body:    body,
		Mailto:  message.Mailto(s.mailTo, message.Subject, body),
		Entry:   entry,
	}, nil
}

// VerifyRequest carries the attributes and the claimed key to check.
type VerifyRequest struct {
	TeamA     string
	TeamB     string
	Kickoff   time.Time
	Candidate string
}

// Verify recomputes the expected key and compares it against the candidate.
// Purely a query; the ledger is not consulted or modified.
func (s *IssueService) Verify(req VerifyRequest) (token.Result, error) {
	return s.deriver.Verify(req.TeamA, req.TeamB, req.Kickoff, req.Candidate)
}

// History returns the full issuance ledger, oldest first.
func (s *IssueService) History(ctx context.Context) ([]model.HistoryEntry, error) {
	return s.history.Load(ctx)
}

// ClearHistory removes every ledger entry. Irreversible.
func (s *IssueService) ClearHistory(ctx context.Context) error {
	return s.history.Clear(ctx)
}

// Stats returns ledger totals as of the current clock.
func (s *IssueService) Stats(ctx context.Context) (model.HistoryStats, error) {
	return s.history.Stats(ctx, s.now())
}

// Template returns the stored template, or the built-in default when the
// user never saved one.
func (s *IssueService) Template(ctx context.Context) (string, error) {
	stored, err := s.settings.Get(ctx, templateSettingName)
	if errors.Is(err, driven.ErrSettingNotFound) {
		return message.DefaultTemplate, nil
	}
	if err != nil {
		return "", err
	}
	return stored, nil
}

// SetTemplate stores the user's template. The template is not validated
// here: a broken one is caught at render time and leaves the stored value
// untouched, matching the original tool's behavior.
func (s *IssueService) SetTemplate(ctx context.Context, tmpl string) error {
	return s.settings.Set(ctx, templateSettingName, tmpl)
}

// ResetTemplate restores the built-in default by deleting the stored value.
func (s *IssueService) ResetTemplate(ctx context.Context) error {
	return s.settings.Delete(ctx, templateSettingName)
}

// PreviewTemplate renders tmpl with fixture data and returns the text plus
// a sanitized HTML rendering. When tmpl is empty the currently stored
// template is previewed instead.
func (s *IssueService) PreviewTemplate(ctx context.Context, tmpl string) (text, html string, err error) {
	if tmpl == "" {
		tmpl, err = s.Template(ctx)
		if err != nil {
			return "", "", err
		}
	}

	text, err = message.Render(tmpl, message.PreviewVars)
	if err != nil {
		return "", "", err
	}

	return text, message.PreviewHTML(text), nil
}
