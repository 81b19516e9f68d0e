// Package remote implements storage.DocumentStore on top of the document
// service, so a client-side valuation store can sync with a valuator server.
package remote

import (
	"context"
	"encoding/json"
	"fmt"

	"connectrpc.com/connect"

	"github.com/mmynk/valuator/internal/auth"
	"github.com/mmynk/valuator/internal/middleware"
	"github.com/mmynk/valuator/internal/storage"
	"github.com/mmynk/valuator/pkg/api"
)

// Ensure Client implements storage.DocumentStore
var _ storage.DocumentStore = (*Client)(nil)

// Client is a storage.DocumentStore backed by a remote DocumentService.
type Client struct {
	docs *api.DocumentServiceClient
}

// New creates a client for the server at baseURL. Calls carry session's token.
func New(httpClient connect.HTTPClient, baseURL string, session *auth.Session) *Client {
	return &Client{
		docs: api.NewDocumentServiceClient(httpClient, baseURL,
			connect.WithInterceptors(middleware.BearerToken(session.Token)),
		),
	}
}

// FetchAll lists the documents of collection owned by owner.
func (c *Client) FetchAll(ctx context.Context, collection, owner string) ([]storage.Document, error) {
	resp, err := c.docs.FetchAll(ctx, connect.NewRequest(&api.FetchAllRequest{
		Collection: collection,
		Owner:      owner,
	}))
	if err != nil {
		return nil, fmt.Errorf("remote fetch %s: %w", collection, err)
	}

	docs := make([]storage.Document, len(resp.Msg.Documents))
	for i, d := range resp.Msg.Documents {
		docs[i] = storage.Document{ID: d.ID, Data: d.Data}
	}
	return docs, nil
}

// Persist sends doc as JSON and returns the ID the server stored it under.
func (c *Client) Persist(ctx context.Context, collection, id string, doc any) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}

	resp, err := c.docs.Persist(ctx, connect.NewRequest(&api.PersistRequest{
		Collection: collection,
		ID:         id,
		Data:       data,
	}))
	if err != nil {
		return "", fmt.Errorf("remote persist %s/%s: %w", collection, id, err)
	}
	return resp.Msg.ID, nil
}

// Login signs in against the auth service and returns the resulting session.
func Login(ctx context.Context, httpClient connect.HTTPClient, baseURL, email, password string) (*auth.Session, error) {
	client := api.NewAuthServiceClient(httpClient, baseURL)
	resp, err := client.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: email, Password: password}))
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return auth.NewSession(resp.Msg.User.ID, resp.Msg.Token), nil
}

// Register creates an account and returns its session.
func Register(ctx context.Context, httpClient connect.HTTPClient, baseURL, email, displayName, password string) (*auth.Session, error) {
	client := api.NewAuthServiceClient(httpClient, baseURL)
	resp, err := client.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email:       email,
		DisplayName: displayName,
		Password:    password,
	}))
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return auth.NewSession(resp.Msg.User.ID, resp.Msg.Token), nil
}
