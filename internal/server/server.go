// Package server exposes the translation pipeline over HTTP:
// POST /translate, GET /health, GET /glossary.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Config holds the HTTP listener settings.
type Config struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Server owns the gin engine and the http.Server lifecycle.
type Server struct {
	router *gin.Engine
	http   *http.Server
}

// New builds the router with middleware and routes registered.
func New(h *Handler, cfg Config) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(Recovery())
	router.Use(RequestID())
	router.Use(Logger())
	router.Use(CORS())

	router.GET("/health", h.Health)
	router.GET("/glossary", h.Glossary)
	router.POST("/translate", h.Translate)

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	return &Server{
		router: router,
		http: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 120 * time.Second,
		},
	}
}

// Router returns the underlying gin engine (used by tests).
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, h *Handler) error {
	h.warm(ctx)

	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("addr", s.http.Addr).Info("http server listening")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	logrus.Info("shutting down http server")
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
