// Package server owns the HTTP server lifecycle of the Madoka API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/forgo/madoka/api/internal/config"
	"github.com/forgo/madoka/api/internal/database"
	"github.com/forgo/madoka/api/internal/router"
	"github.com/rs/zerolog"
)

// Server holds the shared dependencies and the http.Server serving them
type Server struct {
	Config *config.Config
	Logger zerolog.Logger
	DB     database.Database

	httpServer *http.Server
}

// New creates a server over an already constructed database handle.
// The handle does not need to be connected; store calls fail with
// database.ErrConnection until it is.
func New(cfg *config.Config, logger zerolog.Logger, db database.Database) *Server {
	s := &Server{
		Config: cfg,
		Logger: logger,
		DB:     db,
	}

	s.httpServer = &http.Server{
		Addr: ":" + cfg.Server.Port,
		Handler: router.New(router.Config{
			DB:             db,
			Logger:         logger,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			Environment:    cfg.Server.Env,
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start listens until Shutdown is called. A clean shutdown returns nil.
func (s *Server) Start() error {
	s.Logger.Info().
		Str("addr", s.httpServer.Addr).
		Str("env", s.Config.Server.Env).
		Msg("starting server")

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests, then closes the database connection
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}
	if err := s.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}
