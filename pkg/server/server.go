// Package server exposes the conversion pipeline over HTTP.
//
// Routes:
//
//	POST /v1/convert   request body is DOT (default) or JSON; response is GXL
//	GET  /healthz      liveness probe
//	GET  /version      build information as JSON
//	GET  /v1/stats     conversion and cache counters, when configured
//
// The input format is taken from the "format" query parameter, falling back
// to the request Content-Type. The "encoding", "indent", "validate" and
// "refresh" query parameters map onto [pipeline.Options].
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	jsoniter "github.com/json-iterator/go"

	"github.com/rohan-flutterint/graphviz/pkg/observability"
	"github.com/rohan-flutterint/graphviz/pkg/pipeline"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = "127.0.0.1:8080"

// Server serves conversions from a shared pipeline runner.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	router  chi.Router
	timeout time.Duration
	stats   *observability.Counters
	srv     *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithTimeout bounds the time spent on a single request.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) { s.timeout = d }
}

// WithCounters publishes c at /v1/stats. The caller registers c as the
// process hooks.
func WithCounters(c *observability.Counters) Option {
	return func(s *Server) { s.stats = c }
}

// New creates a server that converts with runner.
func New(runner *pipeline.Runner, opts ...Option) *Server {
	s := &Server{
		runner:  runner,
		logger:  log.Default(),
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/convert", s.handleConvert)
		if s.stats != nil {
			r.Get("/stats", s.handleStats)
		}
	})
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
