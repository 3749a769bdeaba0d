// Package api exposes the ordering pipeline over HTTP for editor and
// formatter integrations.
//
// The server is a thin layer over order.Runner: one sort endpoint, one
// tournament ranking endpoint, and a health check. Each request gets a
// UUID request ID, returned in the X-Request-ID header and attached to all
// log lines.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"attrsort/pkg/order"
)

// Server is the HTTP API server.
type Server struct {
	router chi.Router
	server *http.Server
	addr   string
	logger *log.Logger
	runner *order.Runner
}

// NewServer creates an HTTP server around the given runner.
func NewServer(addr string, runner *order.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		addr:   addr,
		logger: logger,
		runner: runner,
		router: chi.NewRouter(),
	}

	s.router.Use(requestIDMiddleware)
	s.router.Use(loggingMiddleware(logger))
	s.router.Use(recoveryMiddleware(logger))

	s.router.Get("/healthz", s.handleHealth)
	s.router.Post("/v1/sort", s.handleSort)
	s.router.Post("/v1/rank", s.handleRank)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start runs the server until it is shut down.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "addr", s.addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("start server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// ServeHTTP implements http.Handler for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
