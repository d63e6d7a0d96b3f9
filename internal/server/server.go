// Package server provides the HTTP API over the knowledge base and the
// proof-search engine.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/expmath/vdcorput/internal/catalog"
	"github.com/expmath/vdcorput/internal/config"
	"github.com/expmath/vdcorput/internal/exponent"
	"github.com/expmath/vdcorput/internal/hypothesis"
)

// Server is the HTTP server for the vdcorput API. The knowledge base is
// swapped wholesale on reload and never mutated after publication, so
// request handlers only ever read a consistent snapshot; proof searches
// copy that snapshot internally before augmenting it.
type Server struct {
	mu      sync.RWMutex
	set     *hypothesis.Set
	catalog *catalog.Index

	prover *exponent.Prover
	config *config.ServerConfig
	logger *zap.Logger
	server *http.Server
}

// NewServer creates a server over the given knowledge base.
func NewServer(
	set *hypothesis.Set,
	cat *catalog.Index,
	prover *exponent.Prover,
	cfg *config.ServerConfig,
	logger *zap.Logger,
) *Server {
	return &Server{
		set:     set,
		catalog: cat,
		prover:  prover,
		config:  cfg,
		logger:  logger,
	}
}

// Reload atomically replaces the knowledge base and its catalog index.
// The previous catalog is closed.
func (s *Server) Reload(set *hypothesis.Set, cat *catalog.Index) {
	s.mu.Lock()
	old := s.catalog
	s.set = set
	s.catalog = cat
	s.mu.Unlock()
	if old != nil {
		_ = old.Close()
	}
	s.logger.Info("knowledge base reloaded", zap.Int("hypotheses", set.Len()))
}

// snapshot returns the current knowledge base and catalog.
func (s *Server) snapshot() (*hypothesis.Set, *catalog.Index) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set, s.catalog
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Post("/api/v1/prove", s.handleProve)
	r.Get("/api/v1/hypotheses", s.handleListHypotheses)
	r.Get("/api/v1/hypotheses/search", s.handleSearchHypotheses)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
