// Package server hosts the demo item API together with its generated
// OpenAPI document and a documentation UI.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/example/docsmith/internal/openapi"
)

// DefaultAddr is used when neither flag, config nor environment set one.
const DefaultAddr = ":8080"

// Server wires the item API routes, validation and the docs endpoints.
type Server struct {
	router   *mux.Router
	logger   *zap.Logger
	validate *validator.Validate
	spec     *openapi.Spec
}

// New builds a server around the given spec. A nil logger disables logging.
func New(spec *openapi.Spec, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		router:   mux.NewRouter(),
		logger:   logger,
		validate: validator.New(),
		spec:     spec,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(s.logRequests)
	s.router.HandleFunc("/items/", s.handleCreateItem).Methods(http.MethodPost)
	s.router.HandleFunc("/openapi.json", s.handleOpenAPI).Methods(http.MethodGet)
	s.router.HandleFunc("/docs", s.handleDocs).Methods(http.MethodGet)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}

// Run serves until ctx is canceled, then shuts down gracefully with a
// 10 second drain deadline.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
