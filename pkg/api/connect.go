package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// DocumentServiceHandler is implemented by the server side of the document service.
type DocumentServiceHandler interface {
	FetchAll(context.Context, *connect.Request[FetchAllRequest]) (*connect.Response[FetchAllResponse], error)
	Persist(context.Context, *connect.Request[PersistRequest]) (*connect.Response[PersistResponse], error)
}

// AuthServiceHandler is implemented by the server side of the auth service.
type AuthServiceHandler interface {
	Register(context.Context, *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error)
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
}

// NewDocumentServiceHandler returns the path to mount svc on and its handler.
func NewDocumentServiceHandler(svc DocumentServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(DocumentServiceFetchAllProcedure, connect.NewUnaryHandler(DocumentServiceFetchAllProcedure, svc.FetchAll, opts...))
	mux.Handle(DocumentServicePersistProcedure, connect.NewUnaryHandler(DocumentServicePersistProcedure, svc.Persist, opts...))
	return "/" + DocumentServiceName + "/", mux
}

// NewAuthServiceHandler returns the path to mount svc on and its handler.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(AuthServiceRegisterProcedure, connect.NewUnaryHandler(AuthServiceRegisterProcedure, svc.Register, opts...))
	mux.Handle(AuthServiceLoginProcedure, connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...))
	return "/" + AuthServiceName + "/", mux
}

// DocumentServiceClient calls the document service.
type DocumentServiceClient struct {
	fetchAll *connect.Client[FetchAllRequest, FetchAllResponse]
	persist  *connect.Client[PersistRequest, PersistResponse]
}

// NewDocumentServiceClient creates a client for the service at baseURL.
func NewDocumentServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *DocumentServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &DocumentServiceClient{
		fetchAll: connect.NewClient[FetchAllRequest, FetchAllResponse](httpClient, baseURL+DocumentServiceFetchAllProcedure, opts...),
		persist:  connect.NewClient[PersistRequest, PersistResponse](httpClient, baseURL+DocumentServicePersistProcedure, opts...),
	}
}

func (c *DocumentServiceClient) FetchAll(ctx context.Context, req *connect.Request[FetchAllRequest]) (*connect.Response[FetchAllResponse], error) {
	return c.fetchAll.CallUnary(ctx, req)
}

func (c *DocumentServiceClient) Persist(ctx context.Context, req *connect.Request[PersistRequest]) (*connect.Response[PersistResponse], error) {
	return c.persist.CallUnary(ctx, req)
}

// AuthServiceClient calls the auth service.
type AuthServiceClient struct {
	register *connect.Client[RegisterRequest, RegisterResponse]
	login    *connect.Client[LoginRequest, LoginResponse]
}

// NewAuthServiceClient creates a client for the service at baseURL.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &AuthServiceClient{
		register: connect.NewClient[RegisterRequest, RegisterResponse](httpClient, baseURL+AuthServiceRegisterProcedure, opts...),
		login:    connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
	}
}

func (c *AuthServiceClient) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *AuthServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}
