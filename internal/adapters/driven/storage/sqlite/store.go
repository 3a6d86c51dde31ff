package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/ingest-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/ingest-cli/internal/core/domain"
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driven"
)

// dbFileName is the database file inside the data directory.
const dbFileName = "ingest.db"

// Store is a unified SQLite-based storage that provides access to
// all metadata store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.ingest/data/ingest.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".ingest", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFileName)

	// WAL lets the TUI read history while an upload is being recorded.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

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

// ConnectorStore returns a ConnectorStore interface backed by this store.
func (s *Store) ConnectorStore() driven.ConnectorStore {
	return &connectorStore{store: s}
}

// UploadStore returns an UploadStore interface backed by this store.
func (s *Store) UploadStore() driven.UploadStore {
	return &uploadStore{store: s}
}

// SchemaVersion returns the highest applied migration.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	row := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&version); err != nil {
		return 0, fmt.Errorf("getting schema version: %w", err)
	}
	return version, nil
}

// migrate runs all pending migrations, each in its own transaction
// together with its schema_migrations row.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	currentVersion, err := s.SchemaVersion(context.Background())
	if err != nil {
		return err
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.applyMigration(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) applyMigration(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(script); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// ==================== Connector Store ====================

// connectorStore implements driven.ConnectorStore.
type connectorStore struct {
	store *Store
}

var _ driven.ConnectorStore = (*connectorStore)(nil)

// ReplaceAll swaps the cached snapshot atomically.
func (s *connectorStore) ReplaceAll(ctx context.Context, connectors []domain.Connector) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM connectors"); err != nil {
		return fmt.Errorf("clearing connectors: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO connectors (position, id, label, source_api_name, object_api_name, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for i, c := range connectors {
		if _, err := stmt.ExecContext(ctx, i, c.ID, c.Label, c.SourceAPIName, c.ObjectAPIName, now); err != nil {
			return fmt.Errorf("inserting connector %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing connectors: %w", err)
	}
	return nil
}

// List returns the cached snapshot in its original order.
func (s *connectorStore) List(ctx context.Context) ([]domain.Connector, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, label, source_api_name, object_api_name
		FROM connectors ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying connectors: %w", err)
	}
	defer rows.Close()

	var connectors []domain.Connector
	for rows.Next() {
		var c domain.Connector
		if err := rows.Scan(&c.ID, &c.Label, &c.SourceAPIName, &c.ObjectAPIName); err != nil {
			return nil, fmt.Errorf("scanning connector: %w", err)
		}
		connectors = append(connectors, c)
	}
	return connectors, rows.Err()
}

// ==================== Upload Store ====================

// uploadStore implements driven.UploadStore.
type uploadStore struct {
	store *Store
}

var _ driven.UploadStore = (*uploadStore)(nil)

const uploadColumns = `id, connector_id, file_name, source_api_name, object_api_name,
	status, error_location, error, row_count, byte_count, started_at, finished_at`

// Save stores or updates an upload record.
func (s *uploadStore) Save(ctx context.Context, r *domain.UploadRecord) error {
	if r == nil || r.ID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO uploads (`+uploadColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			error_location = excluded.error_location,
			error = excluded.error,
			row_count = excluded.row_count,
			byte_count = excluded.byte_count,
			finished_at = excluded.finished_at
	`, r.ID, r.ConnectorID, r.FileName, r.SourceAPIName, r.ObjectAPIName,
		string(r.Status), nullString(r.ErrorLocation), nullString(r.Error),
		r.Rows, r.Bytes, r.StartedAt.UTC(), nullTime(r.FinishedAt))
	if err != nil {
		return fmt.Errorf("saving upload: %w", err)
	}
	return nil
}

// Get retrieves a record by ID.
func (s *uploadStore) Get(ctx context.Context, id string) (*domain.UploadRecord, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT "+uploadColumns+" FROM uploads WHERE id = ?", id)
	r, err := scanUpload(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// List returns the most recent records first.
func (s *uploadStore) List(ctx context.Context, limit int) ([]domain.UploadRecord, error) {
	query := "SELECT " + uploadColumns + " FROM uploads ORDER BY started_at DESC, id DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying uploads: %w", err)
	}
	defer rows.Close()

	var records []domain.UploadRecord
	for rows.Next() {
		r, err := scanUpload(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *r)
	}
	return records, rows.Err()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUpload(row rowScanner) (*domain.UploadRecord, error) {
	var r domain.UploadRecord
	var status string
	var errorLocation, errMsg sql.NullString
	var startedAt, finishedAt sql.NullTime
	if err := row.Scan(&r.ID, &r.ConnectorID, &r.FileName, &r.SourceAPIName, &r.ObjectAPIName,
		&status, &errorLocation, &errMsg, &r.Rows, &r.Bytes, &startedAt, &finishedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning upload: %w", err)
	}

	r.Status = domain.UploadStatus(status)
	r.ErrorLocation = errorLocation.String
	r.Error = errMsg.String
	if startedAt.Valid {
		r.StartedAt = startedAt.Time.UTC()
	}
	if finishedAt.Valid {
		r.FinishedAt = finishedAt.Time.UTC()
	}
	return &r, nil
}

// nullString converts an empty string to sql.NullString.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// nullTime converts a zero time to sql.NullTime.
func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
