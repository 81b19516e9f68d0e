// Package storage provides abstractions for document persistence.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mmynk/valuator/internal/models"
)

var (
	// ErrNotFound is returned when a document or user does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when a document belongs to another owner.
	ErrForbidden = errors.New("document owned by another user")
)

// Document is one entry of a collection as returned by FetchAll.
type Document struct {
	ID   string
	Data json.RawMessage
}

// Decode unmarshals the document body into v.
func (d Document) Decode(v any) error {
	if err := json.Unmarshal(d.Data, v); err != nil {
		return fmt.Errorf("decode document %s: %w", d.ID, err)
	}
	return nil
}

// Owned is implemented by records that carry an owner ID.
// Stores use it as the filter key for FetchAll.
type Owned interface {
	Owner() string
}

// DocumentStore is a keyed collection of JSON documents.
// This abstraction lets the valuation store talk to a local database or a
// remote service without knowing which.
type DocumentStore interface {
	// FetchAll returns every document in collection whose owner is owner.
	FetchAll(ctx context.Context, collection, owner string) ([]Document, error)

	// Persist upserts doc. An empty or unknown id creates a new document and
	// returns its freshly assigned ID; otherwise the document is updated and
	// the same id is returned.
	Persist(ctx context.Context, collection, id string, doc any) (string, error)
}

// UserStore holds registered accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Store is the full backend used by the server.
type Store interface {
	DocumentStore
	UserStore

	// OwnerOf returns the owner of a document, or ErrNotFound.
	OwnerOf(ctx context.Context, collection, id string) (string, error)

	// Close releases any resources held by the store.
	Close() error
}
