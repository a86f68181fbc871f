// Package api exposes mock generation over HTTP.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/cubahno/schemock/pkg/config"
	mw "github.com/cubahno/schemock/pkg/middleware"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Router is the HTTP router for the generation service.
type Router struct {
	*echo.Echo

	config *config.Config
	logger *slog.Logger
}

type RouterOption func(*Router)

// WithConfigOption sets the configuration. Without it the defaults are used.
func WithConfigOption(cfg *config.Config) RouterOption {
	return func(r *Router) {
		r.config = cfg
	}
}

// WithLoggerOption sets the request and service logger.
func WithLoggerOption(logger *slog.Logger) RouterOption {
	return func(r *Router) {
		r.logger = logger
	}
}

// NewRouter creates the router with default middleware and all routes registered.
func NewRouter(options ...RouterOption) *Router {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	res := &Router{
		Echo:   e,
		config: config.NewDefaultConfig(),
		logger: slog.Default(),
	}
	for _, opt := range options {
		opt(res)
	}

	if res.config.App == nil {
		res.config.App = config.NewDefaultAppConfig()
	}

	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(mw.Logger(res.logger))
	e.Use(mw.Duration())

	CreateHealthRoutes(res)
	CreateMockRoutes(res)

	return res
}

// Config returns the service configuration.
func (r *Router) Config() *config.Config {
	return r.config
}

// Serve listens on the configured port until ctx is cancelled, then shuts down gracefully.
func (r *Router) Serve(ctx context.Context) error {
	app := r.config.App
	server := &http.Server{
		Addr:         app.Addr(),
		Handler:      r.Echo,
		ReadTimeout:  app.ReadTimeout,
		WriteTimeout: app.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		r.logger.Info("server started", "addr", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	r.logger.Info("shutting down server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
