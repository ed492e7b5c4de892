// Package server exposes the rearrangement pipeline over HTTP.
//
// Routes:
//
//	GET  /health        liveness probe with the build version
//	GET  /v1/example    the embedded example puzzle as text/plain
//	POST /v1/rearrange  run a puzzle; body {"input": "...", "mode": "batch"}
//
// Errors are JSON objects {"error": CODE, "message": "..."}; invalid input
// maps to 400, engine failures on well-formed input to 422.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/stackmover/pkg/buildinfo"
	"github.com/matzehuels/stackmover/pkg/mover"
	"github.com/matzehuels/stackmover/pkg/pipeline"
)

const (
	// DefaultTimeout bounds handler time.
	DefaultTimeout = 10 * time.Second
	// MaxBodyBytes caps the request body.
	MaxBodyBytes  = 1 << 20
	shutdownGrace = 5 * time.Second
)

// Options configures a Server.
type Options struct {
	// Mode is used when a request omits "mode". Zero means sequential.
	Mode    mover.Mode
	Timeout time.Duration
}

// Server bundles the router and the pipeline runner.
type Server struct {
	r      *chi.Mux
	runner *pipeline.Runner
	logger *log.Logger
	mode   mover.Mode
}

// New constructs a Server, installs middleware, and registers routes.
func New(runner *pipeline.Runner, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if opts.Mode == 0 {
		opts.Mode = pipeline.DefaultMode
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	s := &Server{r: chi.NewRouter(), runner: runner, logger: logger, mode: opts.Mode}

	s.r.Use(requestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(s.accessLog)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(opts.Timeout))
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthRes{OK: true, Build: buildinfo.Get()})
	})

	s.r.Route("/v1", func(r chi.Router) {
		r.Get("/example", s.handleExample)
		r.Post("/rearrange", s.handleRearrange)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorRes{Error: "NOT_FOUND", Message: "no route for " + r.URL.Path})
	})
	s.r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorRes{Error: "METHOD_NOT_ALLOWED", Message: r.Method + " not allowed on " + r.URL.Path})
	})

	return s
}

// Handler exposes the router (useful for tests).
func (s *Server) Handler() http.Handler { return s.r }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
