package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/season-labs/fifthseason-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/season-labs/fifthseason-cli/internal/core/domain"
	"github.com/season-labs/fifthseason-cli/internal/core/ports/driven"
)

var _ driven.HistoryStore = (*Store)(nil)

// Store is a SQLite-backed history store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.fifthseason/data/history.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".fifthseason", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_history.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Save stores or updates a history entry.
func (s *Store) Save(ctx context.Context, entry domain.HistoryEntry) error {
	if entry.ID == "" {
		return domain.ErrInvalidInput
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	payload, err := marshalPayload(entry)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO history (id, kind, created_at, input_text, payload)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			kind = excluded.kind,
			created_at = excluded.created_at,
			input_text = excluded.input_text,
			payload = excluded.payload
	`, entry.ID, string(entry.Kind), entry.CreatedAt, entry.InputText, payload)

	if err != nil {
		return fmt.Errorf("saving history entry: %w", err)
	}
	return nil
}

// List returns entries newest-first, optionally filtered by kind.
func (s *Store) List(ctx context.Context, kind domain.EntryKind, limit int) ([]domain.HistoryEntry, error) {
	query := `
		SELECT id, kind, created_at, input_text, payload
		FROM history
	`
	var args []any
	if kind != "" {
		query += " WHERE kind = ?"
		args = append(args, string(kind))
	}
	query += " ORDER BY created_at DESC, id ASC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []domain.HistoryEntry //nolint:prealloc // size unknown from query
	for rows.Next() {
		entry, err := scanEntryRows(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}

	return entries, nil
}

// Get retrieves a history entry by ID.
func (s *Store) Get(ctx context.Context, id string) (domain.HistoryEntry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, kind, created_at, input_text, payload
		FROM history WHERE id = ?
	`, id)

	return scanEntryRow(row)
}

// Delete removes a history entry.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM history WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting history entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Clear removes all history entries.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM history"); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}

// entryPayload is the JSON document stored in the payload column.
type entryPayload struct {
	Analysis *domain.AnalysisResult `json:"analysis,omitempty"`
	Story    *domain.Story          `json:"story,omitempty"`
}

// marshalPayload serializes the kind-specific part of an entry.
func marshalPayload(entry domain.HistoryEntry) (string, error) {
	data, err := json.Marshal(entryPayload{
		Analysis: entry.Analysis,
		Story:    entry.Story,
	})
	if err != nil {
		return "", fmt.Errorf("marshalling payload: %w", err)
	}
	return string(data), nil
}

// scanEntryRow scans a single history row.
func scanEntryRow(row *sql.Row) (domain.HistoryEntry, error) {
	var entry domain.HistoryEntry
	var kind, payload string
	var createdAt sql.NullTime

	if err := row.Scan(&entry.ID, &kind, &createdAt, &entry.InputText, &payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.HistoryEntry{}, domain.ErrNotFound
		}
		return domain.HistoryEntry{}, fmt.Errorf("scanning history entry: %w", err)
	}

	return finishEntry(entry, kind, createdAt, payload)
}

// scanEntryRows scans a history entry from *sql.Rows.
func scanEntryRows(rows *sql.Rows) (domain.HistoryEntry, error) {
	var entry domain.HistoryEntry
	var kind, payload string
	var createdAt sql.NullTime

	if err := rows.Scan(&entry.ID, &kind, &createdAt, &entry.InputText, &payload); err != nil {
		return domain.HistoryEntry{}, fmt.Errorf("scanning history entry: %w", err)
	}

	return finishEntry(entry, kind, createdAt, payload)
}

func finishEntry(entry domain.HistoryEntry, kind string, createdAt sql.NullTime, payload string) (domain.HistoryEntry, error) {
	entry.Kind = domain.EntryKind(kind)
	if createdAt.Valid {
		entry.CreatedAt = createdAt.Time
	}

	if payload != "" {
		var p entryPayload
		if err := json.Unmarshal([]byte(payload), &p); err != nil {
			return domain.HistoryEntry{}, fmt.Errorf("unmarshalling payload: %w", err)
		}
		entry.Analysis = p.Analysis
		entry.Story = p.Story
	}

	return entry, nil
}
