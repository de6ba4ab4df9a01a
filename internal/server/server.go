// Package server exposes stored diagrams over HTTP.
//
// Routes:
//
//	GET    /healthz
//	GET    /diagrams
//	GET    /diagrams/{name}
//	PUT    /diagrams/{name}
//	DELETE /diagrams/{name}
//	POST   /diagrams/{name}/replay
//	GET    /diagrams/{name}/render.{format}
//
// Documents are the JSON format of package io. Replay takes a TOML gesture
// script as the request body, applies it to the stored diagram and saves the
// result unless the dry_run query parameter is set. Errors are answered as
// {"error": {"code": ..., "message": ...}} with the status from
// errors.HTTPStatus.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/boxwire/pkg/diagram"
	"github.com/matzehuels/boxwire/pkg/export"
	"github.com/matzehuels/boxwire/pkg/gesture"
	"github.com/matzehuels/boxwire/pkg/store"
)

// maxBody bounds request bodies.
const maxBody = 4 << 20

// Server serves diagrams from a store.
type Server struct {
	store       store.Store
	logger      *log.Logger
	diagramOpts []diagram.Option
	gestureOpts []gesture.Option
	exportOpts  export.Options
	router      chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithDiagramOptions sets options for diagrams loaded from the store.
func WithDiagramOptions(opts ...diagram.Option) Option {
	return func(s *Server) { s.diagramOpts = opts }
}

// WithGestureOptions sets options for replay sessions. They override the
// threshold and modifiers a script declares.
func WithGestureOptions(opts ...gesture.Option) Option {
	return func(s *Server) { s.gestureOpts = opts }
}

// WithExportOptions sets rendering options.
func WithExportOptions(opts export.Options) Option {
	return func(s *Server) { s.exportOpts = opts }
}

// New creates a server over st.
func New(st store.Store, opts ...Option) *Server {
	s := &Server{store: st, logger: log.Default()}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Route("/diagrams", func(r chi.Router) {
		r.Get("/", s.list)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", s.get)
			r.Put("/", s.put)
			r.Delete("/", s.delete)
			r.Post("/replay", s.replay)
			r.Get("/render.{format}", s.render)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// =============================================================================
// Middleware
// =============================================================================

const requestIDHeader = "X-Request-ID"

// requestID echoes the client's request id or assigns a new one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond),
			"id", w.Header().Get(requestIDHeader),
		)
	})
}
