// Package server serves the dashboard page and the JSON API behind it.
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/phuslu/log"

	"ChartAI/internal/chat"
	"ChartAI/internal/model"
	"ChartAI/internal/scheduler"
)

// Quotes runs one quote request and derives the chart studies.
type Quotes interface {
	Collect(ctx context.Context, symbol string, tf model.Timeframe) (*model.ChartSnapshot, error)
}

// Symbols resolves a search query to symbol entries.
type Symbols interface {
	Search(ctx context.Context, query string) []model.SymbolEntry
}

// Deps are the components the handlers call into.
type Deps struct {
	Quotes  Quotes
	Symbols Symbols
	View    *scheduler.View
	Session *chat.Session
}

// Server manages the HTTP server and routes.
type Server struct {
	deps   Deps
	page   *template.Template
	router *http.ServeMux
	server *http.Server
}

// New creates a server listening on addr.
func New(addr string, deps Deps) (*Server, error) {
	page, err := template.ParseFS(templates, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}

	s := &Server{deps: deps, page: page}
	s.router = s.setupRoutes()
	// WriteTimeout covers a screen analysis: browser capture plus assistant reply.
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.withMiddleware(s.router),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 3 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}
	return s, nil
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	log.Info().Str("addr", s.server.Addr).Msg("HTTP server starting")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("shutting down HTTP server")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info().Msg("HTTP server stopped")
	return nil
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}
