package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mmynk/valuator/internal/models"
	"github.com/mmynk/valuator/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "nested", "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestDocuments(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("Persist with empty id inserts and assigns ID", func(t *testing.T) {
		v := &models.Valuation{UserID: "u1", Price: 750000}

		id, err := store.Persist(ctx, "valuations", "", v)
		if err != nil {
			t.Fatalf("Persist failed: %v", err)
		}
		if id == "" {
			t.Fatal("Expected a generated ID")
		}

		owner, err := store.OwnerOf(ctx, "valuations", id)
		if err != nil {
			t.Fatalf("OwnerOf failed: %v", err)
		}
		if owner != "u1" {
			t.Errorf("owner = %q, want u1", owner)
		}
	})

	t.Run("Persist with known id updates in place", func(t *testing.T) {
		v := &models.Valuation{UserID: "u2", Price: 100}
		id, err := store.Persist(ctx, "valuations", "", v)
		if err != nil {
			t.Fatalf("Persist failed: %v", err)
		}

		v.Price = 200
		again, err := store.Persist(ctx, "valuations", id, v)
		if err != nil {
			t.Fatalf("Persist update failed: %v", err)
		}
		if again != id {
			t.Errorf("update returned %q, want %q", again, id)
		}

		docs, err := store.FetchAll(ctx, "valuations", "u2")
		if err != nil {
			t.Fatalf("FetchAll failed: %v", err)
		}
		if len(docs) != 1 {
			t.Fatalf("Expected 1 document, got %d", len(docs))
		}
		var got models.Valuation
		if err := docs[0].Decode(&got); err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if got.Price != 200 {
			t.Errorf("Price = %v, want 200", got.Price)
		}
	})

	t.Run("Persist with unknown id inserts under a new ID", func(t *testing.T) {
		id, err := store.Persist(ctx, "valuations", "does-not-exist", &models.Valuation{UserID: "u3"})
		if err != nil {
			t.Fatalf("Persist failed: %v", err)
		}
		if id == "does-not-exist" || id == "" {
			t.Errorf("Expected a fresh ID, got %q", id)
		}
	})

	t.Run("FetchAll filters by owner and collection", func(t *testing.T) {
		if _, err := store.Persist(ctx, "valuations", "", &models.Valuation{UserID: "u4"}); err != nil {
			t.Fatalf("Persist failed: %v", err)
		}
		if _, err := store.Persist(ctx, "drafts", "", &models.Valuation{UserID: "u4"}); err != nil {
			t.Fatalf("Persist failed: %v", err)
		}
		if _, err := store.Persist(ctx, "valuations", "", &models.Valuation{UserID: "someone-else"}); err != nil {
			t.Fatalf("Persist failed: %v", err)
		}

		docs, err := store.FetchAll(ctx, "valuations", "u4")
		if err != nil {
			t.Fatalf("FetchAll failed: %v", err)
		}
		if len(docs) != 1 {
			t.Errorf("Expected 1 document, got %d", len(docs))
		}
	})

	t.Run("Persist without owner stores raw JSON", func(t *testing.T) {
		id, err := store.Persist(ctx, "notes", "", json.RawMessage(`{"text":"hi"}`))
		if err != nil {
			t.Fatalf("Persist failed: %v", err)
		}
		docs, err := store.FetchAll(ctx, "notes", "")
		if err != nil {
			t.Fatalf("FetchAll failed: %v", err)
		}
		if len(docs) != 1 || docs[0].ID != id {
			t.Fatalf("Expected the stored note, got %+v", docs)
		}
		if string(docs[0].Data) != `{"text":"hi"}` {
			t.Errorf("Data = %s", docs[0].Data)
		}
	})

	t.Run("OwnerOf returns ErrNotFound", func(t *testing.T) {
		_, err := store.OwnerOf(ctx, "valuations", "missing")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := models.NewUser("Alice@Example.com", "Alice", "hash")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	t.Run("GetUserByEmail is case-insensitive", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got.ID != user.ID {
			t.Errorf("ID = %s, want %s", got.ID, user.ID)
		}
	})

	t.Run("GetUserByID", func(t *testing.T) {
		got, err := store.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if got.DisplayName != "Alice" {
			t.Errorf("DisplayName = %s, want Alice", got.DisplayName)
		}
	})

	t.Run("duplicate email fails", func(t *testing.T) {
		dup := models.NewUser("alice@example.com", "Other", "hash")
		if err := store.CreateUser(ctx, dup); err == nil {
			t.Error("Expected error for duplicate email")
		}
	})

	t.Run("missing user returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetUserByEmail(ctx, "nobody@example.com")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}
