// Package commands provides the CLI command definitions for alertdeck.
package commands

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

// Styles for CLI output
var (
	logoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))
)

// CLI holds the shared command state
type CLI struct {
	Version string
	Commit  string
	Date    string
}

// New creates the root CLI command with all subcommands
func New(version, commit, date string) *cli.Command {
	c := &CLI{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	return &cli.Command{
		Name:    "alertdeck",
		Usage:   "Alert visibility and lifecycle engine",
		Version: version,
		Description: `Alertdeck serves organization-wide alerts with per-user visibility,
   snooze and read tracking, and multi-channel delivery.

   Run 'alertdeck serve' to start the HTTP server.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config file",
				Sources: cli.EnvVars("ALERTDECK_CONFIG"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("debug") {
				log.SetLevel(log.DebugLevel)
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			c.serveCommand(),
			c.versionCommand(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return c.runServe(ctx, cmd)
		},
	}
}

// versionCommand shows version information
func (c *CLI) versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "show version information",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fmt.Printf("%s version %s\n", logoStyle.Render("alertdeck"), c.Version)
			fmt.Printf("  commit: %s\n", mutedStyle.Render(c.Commit))
			fmt.Printf("  built:  %s\n", mutedStyle.Render(c.Date))
			return nil
		},
	}
}
