package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitstats-go/config"
	"github.com/masmgr/gitstats-go/internal/output"
)

// App creates the CLI application.
func App() *cli.App {
	commands := StatCommands()
	commands = append(commands,
		AllCmd(),
		CloneCmd(),
		ServeCmd(),
	)
	commands = append(commands, LegacyCommands()...)

	return &cli.App{
		Name:    "gitstats",
		Usage:   "Commit history statistics for Git repositories",
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
		},
		Commands: commands,
	}
}

// Common flags shared across statistic commands
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   "Path to Git repository (a positional argument also works)",
			Value:   ".",
		},
		&cli.StringSliceFlag{
			Name:  "include",
			Usage: "Glob patterns to include in diff statistics (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Glob patterns to exclude from diff statistics (can be specified multiple times)",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (console, json, csv, markdown, ci)",
		},
		&cli.IntFlag{
			Name:    "top",
			Aliases: []string{"n"},
			Usage:   "Limit contributor and file rows (0 = all)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
	}
}

// loadConfig loads configuration from file or defaults and applies flag
// overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if includes := c.StringSlice("include"); len(includes) > 0 {
		cfg.Filters.Include = includes
	}
	if excludes := c.StringSlice("exclude"); len(excludes) > 0 {
		cfg.Filters.Exclude = excludes
	}
	if c.IsSet("format") {
		cfg.Output.Format = c.String("format")
	}
	if c.IsSet("top") {
		cfg.Output.Top = c.Int("top")
	}
	if c.IsSet("parallel") {
		cfg.Analysis.Parallelism = c.Int("parallel")
	}
	if level := c.String("log-level"); level != "" {
		cfg.Log.Level = level
	}

	return cfg, nil
}

// outputOptions resolves the report options from configuration and flags.
func outputOptions(c *cli.Context, cfg *config.Config) (output.OutputOptions, error) {
	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return output.OutputOptions{}, err
	}
	return output.OutputOptions{
		Format:     format,
		Top:        cfg.Output.Top,
		OutputPath: c.String("output"),
	}, nil
}

// Run executes the CLI application. SIGINT and SIGTERM cancel the running
// command.
func Run() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := App().RunContext(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
