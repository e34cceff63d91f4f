package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/petdesk/internal"
	pkgconfig "github.com/starford/petdesk/pkg/config"
)

var version = "dev"

type runFunc func(ctx context.Context, opts ...internal.Option) error

// action loads the configuration and hands it to run. A missing config file
// is not an error; the defaults point at a local dev server. PETDESK_*
// variables override both.
func action(run runFunc) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		configPath := cmd.String("config")

		cfg := internal.NewDefaultConfig()
		if _, err := pkgconfig.LoadOptional(configPath, cfg); err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
		if err := cfg.ApplyEnv(); err != nil {
			return fmt.Errorf("failed to apply environment: %w", err)
		}

		opts := []internal.Option{
			internal.WithConfig(cfg),
			internal.WithVersion(version),
		}

		if err := run(ctx, opts...); err != nil {
			return fmt.Errorf("app run error: %w", err)
		}

		return nil
	}
}

func main() {
	cmd := &cli.Command{
		Name:    "petdesk",
		Usage:   "Terminal client for a pet records REST resource, with a matching dev server",
		Version: version,
		Action:  action(internal.RunTUI),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "tui",
				Usage:  "Browse, search, edit and create pets in the terminal",
				Action: action(internal.RunTUI),
			},
			{
				Name:   "serve",
				Usage:  "Serve db.json as a json-server compatible /pets resource",
				Action: action(internal.RunServer),
			},
			{
				Name:   "mcp",
				Usage:  "Expose the pet store as MCP tools over stdio",
				Action: action(internal.RunMCP),
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
