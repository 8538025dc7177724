// Package jsonfile persists the issuance ledger as a single JSON document,
// replaced wholesale on every mutation. Each append and clear performs a
// full read-modify-write cycle and lands via a temp file plus rename, so an
// interrupted write can never leave a half-written ledger behind.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/efisher/refkey/internal/domain/model"
	"github.com/efisher/refkey/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.HistoryStore = (*HistoryRepo)(nil)

// HistoryRepo is the JSON-file implementation of the HistoryStore port.
type HistoryRepo struct {
	path string
}

// NewHistoryRepo creates a HistoryRepo backed by the file at path. The file
// is created on first append.
func NewHistoryRepo(path string) *HistoryRepo {
	return &HistoryRepo{path: path}
}

// entryRecord is the wire form of one ledger entry.
type entryRecord struct {
	IssuedAt string `json:"issued_at"`
	TeamA    string `json:"participant_a"`
	TeamB    string `json:"participant_b"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Token    string `json:"token"`
}

func toRecord(e model.HistoryEntry) entryRecord {
	return entryRecord{
		IssuedAt: e.IssuedAt.Format(time.RFC3339),
		TeamA:    strings.TrimSpace(e.TeamA),
		TeamB:    strings.TrimSpace(e.TeamB),
		Date:     e.MatchDate(),
		Time:     e.MatchTime(),
		Token:    e.Token,
	}
}

func (rec entryRecord) toEntry() (model.HistoryEntry, error) {
	issuedAt, err := time.Parse(time.RFC3339, rec.IssuedAt)
	if err != nil {
		return model.HistoryEntry{}, fmt.Errorf("parse issued_at %q: %w", rec.IssuedAt, err)
	}

	kickoff, err := time.Parse(model.DateLayout+" "+model.TimeLayout, rec.Date+" "+rec.Time)
	if err != nil {
		return model.HistoryEntry{}, fmt.Errorf("parse match date/time %q %q: %w", rec.Date, rec.Time, err)
	}

	return model.HistoryEntry{
		IssuedAt: issuedAt,
		TeamA:    rec.TeamA,
		TeamB:    rec.TeamB,
		Kickoff:  kickoff,
		Token:    rec.Token,
	}, nil
}

// Append adds one entry to the ledger and persists the whole collection
// before returning. On write failure the previously persisted state is left
// untouched.
func (r *HistoryRepo) Append(_ context.Context, entry model.HistoryEntry) error {
	records := append(r.read(), toRecord(entry))
	if err := r.write(records); err != nil {
		return fmt.Errorf("append history entry: %w", err)
	}
	return nil
}

// Load returns all entries in insertion order, oldest first. A missing or
// corrupt file yields an empty history, never an error.
func (r *HistoryRepo) Load(_ context.Context) ([]model.HistoryEntry, error) {
	records := r.read()

	entries := make([]model.HistoryEntry, 0, len(records))
	for _, rec := range records {
		entry, err := rec.toEntry()
		if err != nil {
			// A record that no longer parses means the file was edited or
			// truncated by hand; treat the whole store as empty.
			return []model.HistoryEntry{}, nil
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// Clear removes every entry. Irreversible.
func (r *HistoryRepo) Clear(_ context.Context) error {
	if err := r.write(nil); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// Stats counts all entries plus those issued on the as-of date.
func (r *HistoryRepo) Stats(ctx context.Context, asOf time.Time) (model.HistoryStats, error) {
	entries, err := r.Load(ctx)
	if err != nil {
		return model.HistoryStats{}, err
	}

	stats := model.HistoryStats{Total: len(entries)}
	y, m, d := asOf.Date()
	for _, e := range entries {
		ey, em, ed := e.IssuedAt.Date()
		if ey == y && em == m && ed == d {
			stats.IssuedToday++
		}
	}

	return stats, nil
}

// read loads the raw records, degrading to nil on any failure per the
// ledger contract.
func (r *HistoryRepo) read() []entryRecord {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil
	}

	var records []entryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil
	}

	return records
}

// write replaces the ledger file atomically: marshal, write to a temp file
// in the same directory, fsync, rename over the target.
func (r *HistoryRepo) write(records []entryRecord) error {
	if records == nil {
		records = []entryRecord{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace history file: %w", err)
	}

	return nil
}
