package commands

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"alertdeck/internal/app"
)

// serveCommand returns the serve subcommand
func (c *CLI) serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "start the alert engine HTTP server",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return c.runServe(ctx, cmd)
		},
	}
}

func (c *CLI) runServe(ctx context.Context, cmd *cli.Command) error {
	a, err := app.New(app.Options{
		ConfigPath: cmd.String("config"),
		Version:    c.Version,
	})
	if err != nil {
		return err
	}

	if err := a.Initialize(ctx); err != nil {
		return err
	}

	// Serve until the signal context is cancelled, then shut down with a
	// fresh timeout context.
	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return a.Shutdown(shutdownCtx)
	}
}
