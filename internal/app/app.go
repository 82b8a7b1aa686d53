// Package app wires the application together: configuration, storage,
// delivery strategies, and the HTTP server.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"alertdeck/internal/config"
	"alertdeck/internal/delivery"
	"alertdeck/internal/server"
	"alertdeck/internal/sqlite"
	"alertdeck/pkg/logger"
	"alertdeck/pkg/models"
)

// App holds the application's dependencies and configuration.
type App struct {
	Config     *config.Config
	SQLite     *sqlite.DB
	Logger     *slog.Logger
	Dispatcher *delivery.Dispatcher
	server     *server.Server
	Version    string
}

// Options contains configuration needed when creating a new App instance.
type Options struct {
	ConfigPath string
	Version    string
}

// New creates and configures a new App instance.
func New(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &App{
		Config:  cfg,
		Logger:  logger.New(cfg.Logging.Level == "debug"),
		Version: opts.Version,
	}, nil
}

// Initialize sets up application components: the SQLite database, the
// directory of teams and users declared in config, the delivery
// dispatcher, and the HTTP server.
func (a *App) Initialize(ctx context.Context) error {
	var err error

	a.SQLite, err = sqlite.New(sqlite.Options{
		Config: a.Config.SQLite,
		Logger: a.Logger,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize sqlite: %w", err)
	}

	if err := a.seedIdentity(ctx); err != nil {
		return fmt.Errorf("failed to seed identity directory: %w", err)
	}

	a.Dispatcher = delivery.NewDispatcher(a.Logger, a.strategies()...)

	a.server = server.New(server.Options{
		Config:     a.Config,
		Store:      a.SQLite,
		Dispatcher: a.Dispatcher,
		Logger:     a.Logger,
	})

	return nil
}

// strategies builds the delivery strategies for the channels enabled in
// config. Unknown channel names are logged and skipped.
func (a *App) strategies() []delivery.Strategy {
	var out []delivery.Strategy
	for _, channel := range a.Config.Delivery.Channels {
		switch models.ChannelType(channel) {
		case models.ChannelInApp:
			out = append(out, delivery.NewInAppStrategy(a.SQLite, a.Logger))
		case models.ChannelEmail:
			out = append(out, delivery.NewEmailStrategy())
		case models.ChannelSMS:
			out = append(out, delivery.NewSMSStrategy())
		default:
			a.Logger.Warn("unknown delivery channel in config, skipping", "channel", channel)
		}
	}
	return out
}

// seedIdentity upserts the teams and users declared in config into the
// database. Existing rows with the same id are updated, so config stays
// authoritative across restarts.
func (a *App) seedIdentity(ctx context.Context) error {
	for _, t := range a.Config.Identity.Teams {
		if err := a.SQLite.UpsertTeam(ctx, &models.Team{
			ID:   models.TeamID(t.ID),
			Name: t.Name,
		}); err != nil {
			return fmt.Errorf("failed to upsert team %q: %w", t.ID, err)
		}
	}
	for _, u := range a.Config.Identity.Users {
		role := models.UserRole(u.Role)
		if role == "" {
			role = models.UserRoleMember
		}
		if err := a.SQLite.UpsertUser(ctx, &models.User{
			ID:     models.UserID(u.ID),
			Name:   u.Name,
			TeamID: models.TeamID(u.TeamID),
			Role:   role,
		}); err != nil {
			return fmt.Errorf("failed to upsert user %q: %w", u.ID, err)
		}
	}
	if n := len(a.Config.Identity.Teams) + len(a.Config.Identity.Users); n > 0 {
		a.Logger.Info("identity directory seeded",
			"teams", len(a.Config.Identity.Teams),
			"users", len(a.Config.Identity.Users))
	}
	return nil
}

// Start begins the application's main execution loop (starts the HTTP server).
func (a *App) Start() error {
	if a.server == nil {
		return fmt.Errorf("server not initialized")
	}
	a.Logger.Info("starting server")
	return a.server.Start()
}

// Shutdown gracefully stops all application components with timeouts.
func (a *App) Shutdown(ctx context.Context) error {
	a.Logger.Info("shutting down application")

	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
	}

	serverCtx, serverCancel := context.WithTimeout(ctx, 5*time.Second)
	defer serverCancel()

	if a.server != nil {
		serverDone := make(chan error, 1)
		go func() {
			serverDone <- a.server.Shutdown(serverCtx)
		}()

		select {
		case err := <-serverDone:
			if err != nil {
				a.Logger.Error("error shutting down server", "error", err)
			}
		case <-serverCtx.Done():
			a.Logger.Warn("timeout shutting down HTTP server, continuing")
		}
	}

	if a.SQLite != nil {
		if err := a.SQLite.Close(); err != nil {
			a.Logger.Error("error closing sqlite database", "error", err)
		}
	}

	a.Logger.Info("application shutdown complete")
	return nil
}
