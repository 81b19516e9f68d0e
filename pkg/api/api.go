// Package api defines the wire messages and Connect bindings of the valuator
// services. Messages are plain structs carried by the JSON Codec.
package api

import (
	"encoding/json"
)

const (
	// DocumentServiceName is the fully-qualified name of the document service.
	DocumentServiceName = "valuator.v1.DocumentService"
	// AuthServiceName is the fully-qualified name of the auth service.
	AuthServiceName = "valuator.v1.AuthService"
)

const (
	DocumentServiceFetchAllProcedure = "/valuator.v1.DocumentService/FetchAll"
	DocumentServicePersistProcedure  = "/valuator.v1.DocumentService/Persist"
	AuthServiceRegisterProcedure     = "/valuator.v1.AuthService/Register"
	AuthServiceLoginProcedure        = "/valuator.v1.AuthService/Login"
)

// Codec is a connect.Codec that marshals messages with encoding/json.
// It registers under the name "json", replacing connect's protobuf JSON codec.
type Codec struct{}

func (Codec) Name() string { return "json" }

func (Codec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (Codec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Document is a collection entry.
type Document struct {
	ID   string          `json:"id"`
	Data json.RawMessage `json:"data"`
}

type FetchAllRequest struct {
	Collection string `json:"collection"`
	Owner      string `json:"owner"`
}

type FetchAllResponse struct {
	Documents []Document `json:"documents"`
}

// PersistRequest upserts Data. An empty ID asks the server to create a document.
type PersistRequest struct {
	Collection string          `json:"collection"`
	ID         string          `json:"id"`
	Data       json.RawMessage `json:"data"`
}

type PersistResponse struct {
	ID string `json:"id"`
}

type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	CreatedAt   int64  `json:"createdAt"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
