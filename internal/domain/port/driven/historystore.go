// Package driven defines the driven ports (persistence interfaces) of the
// application core. Adapters under internal/adapter/driven implement them.
package driven

import (
	"context"
	"time"

	"github.com/efisher/refkey/internal/domain/model"
)

// HistoryStore is the driven port for the append-only issuance ledger.
//
// Append persists the entry synchronously before returning; a write failure
// leaves the previously persisted state unchanged. Load returns all entries
// in insertion order, oldest first; a missing, unreadable, or corrupt
// backing store degrades to an empty history rather than an error, so a
// damaged ledger never blocks issuance. Clear is irreversible. The ledger
// never reorders or deduplicates: reissuing for the same match appends a
// second, distinct entry even though its token matches the first.
type HistoryStore interface {
	Append(ctx context.Context, entry model.HistoryEntry) error
	Load(ctx context.Context) ([]model.HistoryEntry, error)
	Clear(ctx context.Context) error
	Stats(ctx context.Context, asOf time.Time) (model.HistoryStats, error)
}
