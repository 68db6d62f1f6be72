// Package sqlite persists ingestion state in a SQLite database so the
// last processed document survives process restarts.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/docsift-labs/docsift-cli/internal/adapters/driven/state/sqlite/migrations"
	"github.com/docsift-labs/docsift-cli/internal/core/domain"
	"github.com/docsift-labs/docsift-cli/internal/core/ports/driven"
	"github.com/docsift-labs/docsift-cli/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.StateStore = (*Store)(nil)

// Store is a SQLite-backed ingestion state store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.docsift/data/state.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docsift", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "state.db")

	db, err := openAndMigrate(dbPath)
	if err != nil {
		// A corrupt state database must read as "nothing ingested",
		// never brick the CLI. Move the bad file aside and start over.
		logger.Warn("state database unusable, starting fresh: %v", err)
		if qErr := quarantine(dbPath); qErr != nil {
			return nil, fmt.Errorf("moving corrupt state database aside: %w", qErr)
		}
		db, err = openAndMigrate(dbPath)
		if err != nil {
			return nil, fmt.Errorf("recreating state database: %w", err)
		}
	}

	return &Store{
		db:   db,
		path: dbPath,
	}, nil
}

// openAndMigrate opens the database with WAL mode and applies pending
// migrations, closing the handle on failure.
func openAndMigrate(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close() //nolint:errcheck
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

// quarantine moves an unusable database file (and its WAL sidecars)
// out of the way so a fresh one can be created in its place.
func quarantine(dbPath string) error {
	backup := dbPath + ".corrupt"
	os.Remove(backup) //nolint:errcheck
	if err := os.Rename(dbPath, backup); err != nil && !os.IsNotExist(err) {
		return err
	}
	for _, sidecar := range []string{dbPath + "-wal", dbPath + "-shm"} {
		os.Remove(sidecar) //nolint:errcheck
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Last returns the most recently ingested document, or (nil, nil) when
// nothing has been ingested yet.
func (s *Store) Last(ctx context.Context) (*domain.IngestState, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT path, file_name, title, chunk_count, processed_at
		FROM ingest_state WHERE id = 1
	`)

	var state domain.IngestState
	var processedAt sql.NullTime
	if err := row.Scan(&state.Path, &state.FileName, &state.Title, &state.ChunkCount, &processedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning ingest state: %w", err)
	}
	if processedAt.Valid {
		state.ProcessedAt = processedAt.Time
	}

	// A row with no path is unusable; treat it like an empty store.
	if state.Path == "" {
		return nil, nil
	}

	return &state, nil
}

// Record replaces the current state and appends to the history log.
func (s *Store) Record(ctx context.Context, state domain.IngestState) error {
	if state.Path == "" {
		return fmt.Errorf("%w: state path is required", domain.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO ingest_state (id, path, file_name, title, chunk_count, processed_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			path = excluded.path,
			file_name = excluded.file_name,
			title = excluded.title,
			chunk_count = excluded.chunk_count,
			processed_at = excluded.processed_at
	`, state.Path, state.FileName, state.Title, state.ChunkCount, state.ProcessedAt)
	if err != nil {
		return fmt.Errorf("saving ingest state: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO ingest_history (path, file_name, title, chunk_count, processed_at)
		VALUES (?, ?, ?, ?, ?)
	`, state.Path, state.FileName, state.Title, state.ChunkCount, state.ProcessedAt)
	if err != nil {
		return fmt.Errorf("appending ingest history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// History returns past ingestions, newest first, capped at limit.
// A non-positive limit returns everything.
func (s *Store) History(ctx context.Context, limit int) ([]domain.IngestState, error) {
	query := `
		SELECT path, file_name, title, chunk_count, processed_at
		FROM ingest_history ORDER BY id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying ingest history: %w", err)
	}
	defer rows.Close()

	var states []domain.IngestState //nolint:prealloc // size unknown from query
	for rows.Next() {
		var state domain.IngestState
		var processedAt sql.NullTime
		if err := rows.Scan(&state.Path, &state.FileName, &state.Title, &state.ChunkCount, &processedAt); err != nil {
			return nil, fmt.Errorf("scanning ingest history: %w", err)
		}
		if processedAt.Valid {
			state.ProcessedAt = processedAt.Time
		}
		states = append(states, state)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ingest history: %w", err)
	}

	return states, nil
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
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
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

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
