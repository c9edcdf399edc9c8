// Package server provides the HTTP API for Henkan.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hyperjump/henkan/internal/config"
	"github.com/hyperjump/henkan/internal/convert"
	"go.uber.org/zap"
)

// WatchService is the subset of the watcher the API drives: listing the
// watched roots and adding or removing them at runtime.
type WatchService interface {
	Directories() []string
	AddDirectory(path string, syncExisting bool) error
	RemoveDirectory(path string) error
}

// Server is the HTTP server for the Henkan API.
type Server struct {
	converter  *convert.Converter
	mode       convert.ErrorMode
	config     *config.Config
	configPath string
	watch      WatchService
	configMu   sync.Mutex
	logger     *zap.Logger
	server     *http.Server
}

// NewServer creates a server with the given dependencies. watch may be nil
// when watch mode is not running; the watch endpoints then answer 501.
// configPath, when non-empty, is where directory changes are persisted.
func NewServer(
	converter *convert.Converter,
	cfg *config.Config,
	logger *zap.Logger,
	watch WatchService,
	configPath string,
) *Server {
	return &Server{
		converter:  converter,
		mode:       convert.ParseErrorMode(cfg.Convert.ErrorMode),
		config:     cfg,
		configPath: configPath,
		watch:      watch,
		logger:     logger,
	}
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/convert", s.handleConvert)
	r.Get("/api/v1/watch/directories", s.handleWatchDirectoriesList)
	r.Post("/api/v1/watch/directories", s.handleWatchDirectoriesAdd)
	r.Delete("/api/v1/watch/directories", s.handleWatchDirectoriesRemove)
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.routes(),
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
