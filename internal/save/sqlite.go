package save

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshot (
	profile TEXT NOT NULL,
	key     TEXT NOT NULL,
	value   TEXT NOT NULL,
	PRIMARY KEY (profile, key)
);`

// SQLiteStore persists snapshots in a local SQLite file.
type SQLiteStore struct {
	sqlDB *sql.DB
}

// Open opens (and if needed creates) a SQLite snapshot store at path.
func Open(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create snapshot table: %w", err)
	}
	return &SQLiteStore{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Put upserts one snapshot field.
func (s *SQLiteStore) Put(ctx context.Context, profile, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if profile == "" || key == "" {
		return fmt.Errorf("profile and key are required")
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO snapshot (profile, key, value) VALUES (?, ?, ?)
		 ON CONFLICT (profile, key) DO UPDATE SET value = excluded.value`,
		profile, key, value)
	if err != nil {
		return fmt.Errorf("put snapshot field: %w", err)
	}
	return nil
}

// PutAll upserts a whole snapshot in one transaction.
func (s *SQLiteStore) PutAll(ctx context.Context, profile string, snap map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if profile == "" {
		return fmt.Errorf("profile is required")
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	for key, value := range snap {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO snapshot (profile, key, value) VALUES (?, ?, ?)
			 ON CONFLICT (profile, key) DO UPDATE SET value = excluded.value`,
			profile, key, value); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("put snapshot field %q: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot tx: %w", err)
	}
	return nil
}

// Get fetches one snapshot field.
func (s *SQLiteStore) Get(ctx context.Context, profile, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var value string
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT value FROM snapshot WHERE profile = ? AND key = ?`,
		profile, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get snapshot field: %w", err)
	}
	return value, nil
}

// All fetches every snapshot field for a profile. A profile with no
// rows yields an empty map, not an error.
func (s *SQLiteStore) All(ctx context.Context, profile string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT key, value FROM snapshot WHERE profile = ?`, profile)
	if err != nil {
		return nil, fmt.Errorf("list snapshot fields: %w", err)
	}
	defer rows.Close()

	snap := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan snapshot field: %w", err)
		}
		snap[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshot fields: %w", err)
	}
	return snap, nil
}
