package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/valuator/internal/middleware"
	"github.com/mmynk/valuator/internal/storage"
	"github.com/mmynk/valuator/pkg/api"
)

var _ api.DocumentServiceHandler = (*DocumentService)(nil)

// DocumentService exposes a storage.Store as a per-user document collection.
type DocumentService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewDocumentService creates a new DocumentService with the given storage backend.
func NewDocumentService(store storage.Store, logger *slog.Logger) *DocumentService {
	return &DocumentService{store: store, logger: logger}
}

// ownedDocument stores raw JSON under the caller's ID.
type ownedDocument struct {
	owner string
	data  json.RawMessage
}

func (d ownedDocument) Owner() string { return d.owner }

func (d ownedDocument) MarshalJSON() ([]byte, error) { return d.data, nil }

// FetchAll returns the caller's documents in a collection.
func (s *DocumentService) FetchAll(ctx context.Context, req *connect.Request[api.FetchAllRequest]) (*connect.Response[api.FetchAllResponse], error) {
	userID := middleware.GetUserID(ctx)
	s.logger.Info("FetchAll request received",
		"collection", req.Msg.Collection,
		"owner", req.Msg.Owner,
		"user", middleware.GetEmail(ctx),
	)

	if req.Msg.Collection == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("collection required"))
	}
	if req.Msg.Owner != userID {
		return nil, connect.NewError(connect.CodePermissionDenied, fmt.Errorf("cannot list documents of another user"))
	}

	docs, err := s.store.FetchAll(ctx, req.Msg.Collection, req.Msg.Owner)
	if err != nil {
		s.logger.Error("FetchAll failed", "collection", req.Msg.Collection, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	out := make([]api.Document, len(docs))
	for i, doc := range docs {
		out[i] = api.Document{ID: doc.ID, Data: doc.Data}
	}

	s.logger.Info("FetchAll successful", "collection", req.Msg.Collection, "count", len(out))

	return connect.NewResponse(&api.FetchAllResponse{Documents: out}), nil
}

// Persist creates or updates one of the caller's documents.
func (s *DocumentService) Persist(ctx context.Context, req *connect.Request[api.PersistRequest]) (*connect.Response[api.PersistResponse], error) {
	userID := middleware.GetUserID(ctx)
	s.logger.Info("Persist request received",
		"collection", req.Msg.Collection,
		"document_id", req.Msg.ID,
		"size", len(req.Msg.Data),
		"user", middleware.GetEmail(ctx),
	)

	if req.Msg.Collection == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("collection required"))
	}
	if len(req.Msg.Data) == 0 || !json.Valid(req.Msg.Data) {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("data must be a JSON document"))
	}

	if req.Msg.ID != "" {
		owner, err := s.store.OwnerOf(ctx, req.Msg.Collection, req.Msg.ID)
		switch {
		case err == nil && owner != userID:
			s.logger.Warn("Persist rejected", "document_id", req.Msg.ID, "user_id", userID)
			return nil, connect.NewError(connect.CodePermissionDenied, storage.ErrForbidden)
		case err != nil && !errors.Is(err, storage.ErrNotFound):
			s.logger.Error("Persist failed - owner lookup", "document_id", req.Msg.ID, "error", err)
			return nil, connect.NewError(connect.CodeInternal, err)
		}
	}

	id, err := s.store.Persist(ctx, req.Msg.Collection, req.Msg.ID, ownedDocument{owner: userID, data: req.Msg.Data})
	if err != nil {
		s.logger.Error("Persist failed", "collection", req.Msg.Collection, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	if id != req.Msg.ID {
		s.logger.Info("Document created", "collection", req.Msg.Collection, "document_id", id)
	} else {
		s.logger.Info("Document updated", "collection", req.Msg.Collection, "document_id", id)
	}

	return connect.NewResponse(&api.PersistResponse{ID: id}), nil
}
