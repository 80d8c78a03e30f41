// Package kv implements the persisted key-value store on SQLite.
package kv

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	// Registers the sqlite3 driver.
	_ "github.com/mattn/go-sqlite3"
	"go.trai.ch/parcel/internal/core/domain"
	"go.trai.ch/parcel/internal/core/ports"
)

//go:embed schema.sql
var schemaSQL string

var _ ports.KVStore = (*Store)(nil)

// Store is a ports.KVStore backed by a single SQLite file. The database is
// opened on first use, so commands that never touch state create no file.
type Store struct {
	path string

	once    sync.Once
	db      *sql.DB
	openErr error
}

// NewStore returns a store for the database at path.
func NewStore(path string) *Store {
	return &Store{path: filepath.Clean(path)}
}

func (s *Store) open() (*sql.DB, error) {
	s.once.Do(func() {
		if err := os.MkdirAll(filepath.Dir(s.path), domain.DirPerm); err != nil {
			s.openErr = domain.Fail(domain.ErrStoreCreateFailed, err, "path", s.path)
			return
		}

		db, err := sql.Open("sqlite3", s.path)
		if err != nil {
			s.openErr = domain.Fail(domain.ErrStoreOpenFailed, err, "path", s.path)
			return
		}
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)

		if err := initialize(db); err != nil {
			_ = db.Close()
			s.openErr = domain.Fail(domain.ErrStoreOpenFailed, err, "path", s.path)
			return
		}
		s.db = db
	})
	return s.db, s.openErr
}

func initialize(db *sql.DB) error {
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			return err
		}
	}
	_, err := db.Exec(schemaSQL)
	return err
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	db, err := s.open()
	if err != nil {
		return "", false, err
	}

	var value string
	err = db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", false, nil
	case err != nil:
		return "", false, domain.Fail(domain.ErrStoreReadFailed, err, "key", key)
	}
	return value, true, nil
}

// Set stores value under key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	db, err := s.open()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().Unix())
	if err != nil {
		return domain.Fail(domain.ErrStoreWriteFailed, err, "key", key)
	}
	return nil
}

// Delete removes key.
func (s *Store) Delete(ctx context.Context, key string) error {
	db, err := s.open()
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return domain.Fail(domain.ErrStoreWriteFailed, err, "key", key)
	}
	return nil
}

// Close closes the database if it was opened.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
