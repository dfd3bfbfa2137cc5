// Package api is the HTTP shell over the verba facade: a gin router with
// ingest, lookup, and listing endpoints, plus server lifecycle.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tomeworks/verba/internal/api/handlers"
	"github.com/tomeworks/verba/internal/logging"
	"github.com/tomeworks/verba/internal/validation"
	"github.com/tomeworks/verba/pkg/verba/config"
)

// Server serves the verba HTTP API.
type Server struct {
	cfg    config.ServerConfig
	log    logging.Logger
	router *gin.Engine
}

// New builds a server around the given service.
func New(cfg config.ServerConfig, log logging.Logger, svc handlers.Service) (*Server, error) {
	validator, err := validation.New()
	if err != nil {
		return nil, fmt.Errorf("build validator: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	return &Server{
		cfg:    cfg,
		log:    log,
		router: newRouter(log, svc, validator),
	}, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router.Handler()
}

// Run serves until ctx is cancelled, then stops gracefully within the
// configured grace period.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.router.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.log.Info("http server listening", "addr", s.cfg.Addr)

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownGrace())
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	s.log.Info("http server stopped")
	return nil
}
