// Package database persists dashboard preferences in a local SQLite file.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const (
	themeKey     = "theme"
	defaultTheme = "dark"
)

// DBPath returns the path to the settings database under dataDir
func DBPath(dataDir string) string {
	return filepath.Join(dataDir, "tidewatch.db")
}

// Settings is a key/value store backed by the settings table.
type Settings struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path and ensures the
// schema exists.
func Open(path string) (*Settings, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One writer; the dashboard is the only client.
	db.SetMaxOpenConns(1)

	if err := EnsureSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, err
	}
	return &Settings{db: db, now: time.Now}, nil
}

// EnsureSchema creates the settings table if it does not exist. Existing
// rows are kept.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating settings table: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Settings) Close() error {
	return s.db.Close()
}

// Get returns the stored value for key and whether it was present.
func (s *Settings) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading setting %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *Settings) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, s.now().UTC())
	if err != nil {
		return fmt.Errorf("writing setting %s: %w", key, err)
	}
	return nil
}

// Theme returns the saved theme, or fallback when none is saved or the
// saved value is not a known theme.
func (s *Settings) Theme(ctx context.Context, fallback string) (string, error) {
	if fallback == "" {
		fallback = defaultTheme
	}
	value, ok, err := s.Get(ctx, themeKey)
	if err != nil {
		return fallback, err
	}
	if !ok || (value != "dark" && value != "light") {
		return fallback, nil
	}
	return value, nil
}

// SetTheme saves the theme preference.
func (s *Settings) SetTheme(ctx context.Context, theme string) error {
	if theme != "dark" && theme != "light" {
		return fmt.Errorf("unknown theme %q", theme)
	}
	return s.Set(ctx, themeKey, theme)
}
