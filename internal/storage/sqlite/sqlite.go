// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/valuator/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// FetchAll returns the documents of collection owned by owner, oldest first.
func (s *SQLiteStore) FetchAll(ctx context.Context, collection, owner string) ([]storage.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, data FROM documents WHERE collection = ? AND owner = ? ORDER BY created_at, id",
		collection, owner,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []storage.Document
	for rows.Next() {
		var (
			id   string
			data string
		)
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, storage.Document{ID: id, Data: json.RawMessage(data)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}

	return docs, nil
}

// Persist upserts doc into collection. An empty or unknown id inserts a new
// document under a fresh UUID; a known id is overwritten in place.
func (s *SQLiteStore) Persist(ctx context.Context, collection, id string, doc any) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	var owner string
	if o, ok := doc.(storage.Owned); ok {
		owner = o.Owner()
	}
	now := time.Now().Unix()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	exists := false
	if id != "" {
		var one int
		err := tx.QueryRowContext(ctx,
			"SELECT 1 FROM documents WHERE collection = ? AND id = ?",
			collection, id,
		).Scan(&one)
		switch {
		case err == nil:
			exists = true
		case !errors.Is(err, sql.ErrNoRows):
			return "", fmt.Errorf("failed to look up document: %w", err)
		}
	}

	if exists {
		_, err = tx.ExecContext(ctx,
			"UPDATE documents SET owner = ?, data = ?, updated_at = ? WHERE collection = ? AND id = ?",
			owner, string(data), now, collection, id,
		)
		if err != nil {
			return "", fmt.Errorf("failed to update document: %w", err)
		}
	} else {
		id = uuid.New().String()
		_, err = tx.ExecContext(ctx,
			"INSERT INTO documents (collection, id, owner, data, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
			collection, id, owner, string(data), now, now,
		)
		if err != nil {
			return "", fmt.Errorf("failed to insert document: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}

	return id, nil
}

// OwnerOf returns the owner recorded for a document, or storage.ErrNotFound.
func (s *SQLiteStore) OwnerOf(ctx context.Context, collection, id string) (string, error) {
	var owner string
	err := s.db.QueryRowContext(ctx,
		"SELECT owner FROM documents WHERE collection = ? AND id = ?",
		collection, id,
	).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("document %s/%s: %w", collection, id, storage.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get document owner: %w", err)
	}
	return owner, nil
}
