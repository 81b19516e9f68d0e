package service

import (
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/valuator/internal/auth"
	"github.com/mmynk/valuator/internal/middleware"
	"github.com/mmynk/valuator/internal/storage"
	"github.com/mmynk/valuator/pkg/api"
)

// NewHandler mounts the auth and document services on one mux. Document calls
// require a bearer token; auth calls do not.
func NewHandler(store storage.Store, jwtManager *auth.JWTManager, metrics *middleware.Metrics, logger *slog.Logger) http.Handler {
	authSvc := NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager, logger)
	docSvc := NewDocumentService(store, logger)

	mux := http.NewServeMux()

	authPath, authHandler := api.NewAuthServiceHandler(authSvc,
		connect.WithInterceptors(metrics.Interceptor(), middleware.LoggingInterceptor(logger)),
	)
	mux.Handle(authPath, authHandler)

	docPath, docHandler := api.NewDocumentServiceHandler(docSvc,
		connect.WithInterceptors(
			metrics.Interceptor(),
			middleware.RequireAuth(jwtManager),
			middleware.LoggingInterceptor(logger),
		),
	)
	mux.Handle(docPath, docHandler)

	return mux
}
