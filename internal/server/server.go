// Package server implements the asciigram HTTP API.
//
// Endpoints:
//
//	POST /render          render flowchart source to text/dot/svg/json
//	GET  /healthz         liveness probe
//	POST /diagrams        save a diagram
//	GET  /diagrams        list saved diagrams
//	GET  /diagrams/{id}   load a saved diagram
//	GET  /diagrams/{id}/render
//	DELETE /diagrams/{id}
//
// The diagram endpoints require a configured store; without one they
// respond 404.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mlorenz/asciigram/pkg/pipeline"
	"github.com/mlorenz/asciigram/pkg/store"
)

// Server routes HTTP requests to the render pipeline and the diagram
// store.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
	router chi.Router
}

// New creates a server. store may be nil, which disables the diagram
// endpoints.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner: runner,
		store:  st,
		logger: logger,
	}
	s.router = s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe runs the server until the context is canceled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	s.logger.Info("server listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Post("/render", s.handleRender)

	r.Route("/diagrams", func(r chi.Router) {
		r.Use(s.requireStore)
		r.Post("/", s.handleDiagramCreate)
		r.Get("/", s.handleDiagramList)
		r.Get("/{id}", s.handleDiagramGet)
		r.Get("/{id}/render", s.handleDiagramRender)
		r.Delete("/{id}", s.handleDiagramDelete)
	})
	return r
}

type ctxKey int

const requestIDKey ctxKey = 0

// requestID assigns a uuid to every request and echoes it in the
// X-Request-ID header.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		id, _ := r.Context().Value(requestIDKey).(string)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"id", id,
			"duration", time.Since(start))
	})
}

// requireStore guards the diagram endpoints when no store is wired.
func (s *Server) requireStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.store == nil {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "diagram storage is not configured")
			return
		}
		next.ServeHTTP(w, r)
	})
}
