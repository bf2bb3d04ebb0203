package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/franz/recipedb/internal/util"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	// CurrentSchemaVersion is stamped into PRAGMA user_version
	CurrentSchemaVersion = 1
)

// Store owns the SQLite snapshot being built
type Store struct {
	db   *sql.DB
	path string
}

// Create deletes any database at path (and its journal files) and builds
// an empty snapshot with the current schema.
func Create(ctx context.Context, path string) (*Store, error) {
	if err := util.RemoveDatabaseFiles(path); err != nil {
		return nil, fmt.Errorf("failed to remove previous snapshot: %w", err)
	}

	s, err := open(path)
	if err != nil {
		return nil, err
	}

	if err := s.applyBuildPragmas(ctx); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to apply build pragmas: %w", err)
	}

	if err := s.createSchema(ctx); err != nil {
		s.Close()
		return nil, fmt.Errorf("schema creation failed: %w", err)
	}

	return s, nil
}

// Open opens an existing snapshot without modifying it
func Open(path string) (*Store, error) {
	if !util.FileExists(path) {
		return nil, fmt.Errorf("%w: %s", util.ErrInputMissing, path)
	}
	return open(path)
}

func open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection, so per-connection pragmas stick for the whole run
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// applyBuildPragmas tunes SQLite for a single bulk writer
func (s *Store) applyBuildPragmas(ctx context.Context) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",

		// NORMAL is safe with WAL; only fsync at checkpoints
		"PRAGMA synchronous = NORMAL",

		"PRAGMA temp_store = MEMORY",

		// Negative value = KB (~20 MB)
		"PRAGMA cache_size = -20000",
	}

	for _, pragma := range pragmas {
		if _, err := s.db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("failed to execute %s: %w", pragma, err)
		}
	}

	return nil
}

// createSchema creates tables and indexes and stamps the schema version
func (s *Store) createSchema(ctx context.Context) error {
	return s.Transaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, schemaV1); err != nil {
			return fmt.Errorf("failed to apply schema v1: %w", err)
		}
		// PRAGMA does not accept bound parameters
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", CurrentSchemaVersion)); err != nil {
			return fmt.Errorf("failed to set schema version: %w", err)
		}
		return nil
	})
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database connection for custom queries
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.path
}

// SchemaVersion returns the version stamped in PRAGMA user_version
func (s *Store) SchemaVersion() (int, error) {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// SQLiteVersion returns the SQLite version string
func SQLiteVersion() string {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return ""
	}
	defer db.Close()

	var version string
	err = db.QueryRow("SELECT sqlite_version()").Scan(&version)
	if err != nil {
		return ""
	}
	return version
}

// CheckIntegrity runs PRAGMA integrity_check on the database
func (s *Store) CheckIntegrity() error {
	var result string
	err := s.db.QueryRow("PRAGMA integrity_check").Scan(&result)
	if err != nil {
		return fmt.Errorf("integrity check query failed: %w", err)
	}

	if result != "ok" {
		return fmt.Errorf("integrity check failed: %s", result)
	}

	return nil
}

// Analyze refreshes the query planner statistics
func (s *Store) Analyze(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "ANALYZE"); err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}
	return nil
}

// Transaction executes a function within a transaction
func (s *Store) Transaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// insertBatch runs one prepared INSERT per row inside a single transaction
func (s *Store) insertBatch(ctx context.Context, query string, n int, args func(i int) []any) (int64, error) {
	if n == 0 {
		return 0, nil
	}

	var inserted int64
	err := s.Transaction(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for i := 0; i < n; i++ {
			if _, err := stmt.ExecContext(ctx, args(i)...); err != nil {
				return fmt.Errorf("insert row %d: %w", i, err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}
