package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"nearby/internal/config"
	"nearby/internal/location"
	"nearby/internal/middleware"
	"nearby/internal/search"
)

// App encapsulates application dependencies
type App struct {
	router   *gin.Engine
	logger   *slog.Logger
	geocoder location.Geocoder
	search   search.Service
	sessions *search.Sessions
	cfg      *config.Config
}

// NewApp creates a new application with injected dependencies
func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	geocoder location.Geocoder,
	searchSvc search.Service,
	sessions *search.Sessions,
) *App {
	// Set Gin mode from configuration
	gin.SetMode(cfg.Server.GinMode)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.Logging(logger))

	app := &App{
		router:   router,
		logger:   logger,
		geocoder: geocoder,
		search:   searchSvc,
		sessions: sessions,
		cfg:      cfg,
	}

	app.registerRoutes()

	return app
}

// Handler exposes the router, mainly for tests
func (app *App) Handler() http.Handler {
	return app.router
}

// StartServer serves HTTP for the lifetime of the fx application
func StartServer(lc fx.Lifecycle, shutdowner fx.Shutdowner, app *App) {
	srv := &http.Server{
		Addr:              app.cfg.GetServerAddr(),
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				app.logger.Info("starting server", "addr", srv.Addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					app.logger.Error("server failed", "error", err)
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			app.logger.Info("stopping server")
			return srv.Shutdown(ctx)
		},
	})
}
