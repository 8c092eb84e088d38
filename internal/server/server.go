// Package server provides the HTTP API for DarkSeeker.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/darkseeker/internal/config"
	"github.com/hyperjump/darkseeker/internal/metrics"
	"github.com/hyperjump/darkseeker/internal/search"
)

// Server is the HTTP server for the DarkSeeker API.
type Server struct {
	engine  *search.Engine
	config  *config.ServerConfig
	metrics *config.MetricsConfig
	logger  *zap.Logger
	server  *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(engine *search.Engine, cfg *config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		engine:  engine,
		config:  &cfg.Server,
		metrics: &cfg.Metrics,
		logger:  logger,
	}
}

// Handler returns the router with every middleware and route installed.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(s.logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(cors(s.config.CORSOrigins))
	if s.metrics.EnabledOrDefault() {
		r.Use(metrics.Middleware())
	}
	if s.config.RequestTimeoutSec > 0 {
		r.Use(middleware.Timeout(time.Duration(s.config.RequestTimeoutSec) * time.Second))
	}
	r.Use(middleware.Compress(5))

	r.Get("/api/search", s.handleSearch)
	r.Get("/api/tags", s.handleTags)
	r.Get("/api/stats", s.handleStats)
	r.Get("/health", s.handleHealth)
	if s.metrics.EnabledOrDefault() {
		r.Method(http.MethodGet, s.metrics.Path, metrics.Handler())
	}
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.respondError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := s.Addr()
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
