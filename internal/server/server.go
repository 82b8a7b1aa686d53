// Package server exposes the alert engine over HTTP. Handlers stay thin:
// they parse, call into core, and map errors; no alert or preference state
// is reachable except through the engine operations.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"alertdeck/internal/config"
	"alertdeck/internal/core"
	"alertdeck/internal/delivery"
)

// Options contains the dependencies needed to construct a Server.
type Options struct {
	Config     *config.Config
	Store      core.Store
	Dispatcher *delivery.Dispatcher
	Logger     *slog.Logger
}

// Server wraps the fiber application and its dependencies.
type Server struct {
	app        *fiber.App
	config     *config.Config
	store      core.Store
	dispatcher *delivery.Dispatcher
	log        *slog.Logger
	loc        *time.Location
}

// New builds the HTTP server and registers all routes.
func New(opts Options) *Server {
	app := fiber.New(fiber.Config{
		AppName:     "alertdeck",
		ReadTimeout: opts.Config.Server.ReadTimeout,
	})

	s := &Server{
		app:        app,
		config:     opts.Config,
		store:      opts.Store,
		dispatcher: opts.Dispatcher,
		log:        opts.Logger.With("component", "server"),
		loc:        opts.Config.Location(),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.app.Get("/health", s.handleHealth)
	s.app.Get("/metrics", s.handleMetrics)

	v1 := s.app.Group("/api/v1")

	v1.Get("/teams", s.handleListTeams)
	v1.Get("/users", s.handleListUsers)

	users := v1.Group("/users/:userID")
	users.Get("/", s.handleGetUser)
	users.Get("/alerts", s.handleAlertsForUser)
	users.Get("/alerts/overview", s.handleAlertOverview)
	users.Post("/alerts/:alertID/read", s.handleMarkRead)
	users.Post("/alerts/:alertID/snooze", s.handleSnooze)

	admin := v1.Group("/admin")
	admin.Get("/alerts", s.handleListAlerts)
	admin.Post("/alerts", s.handleCreateAlert)
	admin.Get("/alerts/:alertID", s.handleGetAlert)
	admin.Put("/alerts/:alertID", s.handleUpdateAlert)
	admin.Post("/alerts/:alertID/archive", s.handleArchiveAlert)
	admin.Get("/analytics", s.handleAnalytics)
}

// Start begins serving requests. Blocks until shutdown.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.log.Info("http server listening", "addr", addr)
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
