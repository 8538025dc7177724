package model

import "time"

// Wire layouts for the match date and kickoff time, locale-independent.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// HistoryEntry records one key issuance. Entries are immutable after
// creation and exclusively owned by the history store: they are only ever
// appended or bulk-cleared, never mutated. TeamA and TeamB hold the
// original display strings (trimmed), not their canonical forms, so the
// stored token stays reproducible by re-deriving from the entry itself.
type HistoryEntry struct {
	IssuedAt time.Time
	TeamA    string
	TeamB    string
	Kickoff  time.Time
	Token    string
}

// MatchDate formats the entry's match date for the wire.
func (e HistoryEntry) MatchDate() string {
	return e.Kickoff.Format(DateLayout)
}

// MatchTime formats the entry's kickoff time for the wire.
func (e HistoryEntry) MatchTime() string {
	return e.Kickoff.Format(TimeLayout)
}

// HistoryStats aggregates the ledger. Total counts every entry since the
// most recent clear; IssuedToday counts entries whose issuance date equals
// the as-of date.
type HistoryStats struct {
	Total       int
	IssuedToday int
}
