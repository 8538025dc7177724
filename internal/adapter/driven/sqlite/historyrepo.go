package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/efisher/refkey/internal/domain/model"
	"github.com/efisher/refkey/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.HistoryStore = (*HistoryRepo)(nil)

// HistoryRepo is the SQLite implementation of the HistoryStore port.
// Inserts are transactional, which gives the same atomicity guarantee the
// JSON backend gets from its temp-file-plus-rename write.
type HistoryRepo struct {
	db *DB
}

// NewHistoryRepo creates a HistoryRepo backed by the given DB.
func NewHistoryRepo(db *DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

// Append inserts one ledger entry. Duplicates are legitimate; every append
// creates a new row.
func (r *HistoryRepo) Append(ctx context.Context, entry model.HistoryEntry) error {
	const query = `
		INSERT INTO history (issued_at, participant_a, participant_b, match_date, match_time, token)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Writer.ExecContext(ctx, query,
		entry.IssuedAt.Format(time.RFC3339),
		strings.TrimSpace(entry.TeamA),
		strings.TrimSpace(entry.TeamB),
		entry.MatchDate(),
		entry.MatchTime(),
		entry.Token,
	)
	if err != nil {
		return fmt.Errorf("append history entry: %w", err)
	}

	return nil
}

// Load returns all entries in insertion order, oldest first. Per the ledger
// contract an unreadable store degrades to an empty history.
func (r *HistoryRepo) Load(ctx context.Context) ([]model.HistoryEntry, error) {
	const query = `
		SELECT issued_at, participant_a, participant_b, match_date, match_time, token
		FROM history
		ORDER BY id
	`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return []model.HistoryEntry{}, nil
	}
	defer rows.Close()

	entries := make([]model.HistoryEntry, 0)
	for rows.Next() {
		var issuedAt, teamA, teamB, matchDate, matchTime, key string
		if err := rows.Scan(&issuedAt, &teamA, &teamB, &matchDate, &matchTime, &key); err != nil {
			return []model.HistoryEntry{}, nil
		}

		entry, err := buildEntry(issuedAt, teamA, teamB, matchDate, matchTime, key)
		if err != nil {
			return []model.HistoryEntry{}, nil
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return []model.HistoryEntry{}, nil
	}

	return entries, nil
}

// Clear removes every entry. Irreversible.
func (r *HistoryRepo) Clear(ctx context.Context) error {
	if _, err := r.db.Writer.ExecContext(ctx, `DELETE FROM history`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// Stats counts all entries plus those issued on the as-of date. issued_at
// is stored as RFC 3339 text, so its first 10 bytes are the date component.
func (r *HistoryRepo) Stats(ctx context.Context, asOf time.Time) (model.HistoryStats, error) {
	var stats model.HistoryStats

	err := r.db.Reader.QueryRowContext(ctx, `SELECT COUNT(*) FROM history`).Scan(&stats.Total)
	if err != nil {
		return model.HistoryStats{}, fmt.Errorf("count history: %w", err)
	}

	const todayQuery = `SELECT COUNT(*) FROM history WHERE substr(issued_at, 1, 10) = ?`
	err = r.db.Reader.QueryRowContext(ctx, todayQuery, asOf.Format(model.DateLayout)).Scan(&stats.IssuedToday)
	if err != nil {
		return model.HistoryStats{}, fmt.Errorf("count today's history: %w", err)
	}

	return stats, nil
}

func buildEntry(issuedAt, teamA, teamB, matchDate, matchTime, key string) (model.HistoryEntry, error) {
	issued, err := time.Parse(time.RFC3339, issuedAt)
	if err != nil {
		return model.HistoryEntry{}, fmt.Errorf("parse issued_at: %w", err)
	}

	kickoff, err := time.Parse(model.DateLayout+" "+model.TimeLayout, matchDate+" "+matchTime)
	if err != nil {
		return model.HistoryEntry{}, fmt.Errorf("parse match date/time: %w", err)
	}

	return model.HistoryEntry{
		IssuedAt: issued,
		TeamA:    teamA,
		TeamB:    teamB,
		Kickoff:  kickoff,
		Token:    key,
	}, nil
}
