package driven

import (
	"context"

	"github.com/season-labs/fifthseason-cli/internal/core/domain"
)

// HistoryStore persists past analysis and story runs.
type HistoryStore interface {
	// Save stores an entry. Entries are immutable once saved.
	Save(ctx context.Context, entry domain.HistoryEntry) error

	// List returns entries newest-first. A limit <= 0 returns all
	// entries; kind "" returns entries of every kind.
	List(ctx context.Context, kind domain.EntryKind, limit int) ([]domain.HistoryEntry, error)

	// Get returns the entry with the given ID, or domain.ErrNotFound.
	Get(ctx context.Context, id string) (domain.HistoryEntry, error)

	// Delete removes the entry with the given ID, or domain.ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Clear removes every entry.
	Clear(ctx context.Context) error

	// Close releases resources.
	Close() error
}
