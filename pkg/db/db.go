// Package db persists processing runs and their reviews in SQLite.
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const DefaultDBName = "film-review-explorer.db"

// pragmas are applied by the driver to every pooled connection.
var pragmas = []string{
	"foreign_keys(1)",
	"busy_timeout(5000)",
}

type DB struct {
	*sql.DB
	path string
}

// dsn builds a modernc.org/sqlite data source name carrying pragmas.
func dsn(dbPath string) string {
	q := url.Values{}
	for _, p := range pragmas {
		q.Add("_pragma", p)
	}
	return "file:" + dbPath + "?" + q.Encode()
}

// Open opens or creates the SQLite database at dbPath and makes sure the
// schema exists. An empty path uses DefaultDBName in the working directory.
func Open(dbPath string) (*DB, error) {
	if dbPath == "" {
		dbPath = DefaultDBName
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	sqlDB, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{DB: sqlDB, path: dbPath}
	if err := db.ensureSchemaExists(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return db, nil
}

// ensureSchemaExists creates the tables on first use.
func (db *DB) ensureSchemaExists() error {
	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'runs'`).Scan(&name)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return db.InitSchema()
	case err != nil:
		return fmt.Errorf("failed to check schema: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// InitSchema creates every table and index. It is safe to call on an
// existing database.
func (db *DB) InitSchema() error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
