package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitstats-go/config"
	"github.com/masmgr/gitstats-go/internal/analysis"
	"github.com/masmgr/gitstats-go/internal/logging"
	"github.com/masmgr/gitstats-go/internal/output"
)

// CommandContext holds common state for command execution.
// It encapsulates the shared setup logic across all commands.
type CommandContext struct {
	Config   *config.Config
	Logger   *logrus.Logger
	RepoPath string
	Analyzer *analysis.Analyzer
}

// NewCommandContext creates a context from CLI flags: it loads the
// configuration, builds the logger and prepares an Analyzer for the
// repository named by the first argument or --repo.
func NewCommandContext(c *cli.Context) (*CommandContext, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	logger := logging.New(logging.Config{Level: cfg.Log.Level, JSON: cfg.Log.JSON}, c.App.ErrWriter)

	analyzer := analysis.NewAnalyzer(analysis.Options{
		Include:     cfg.Filters.Include,
		Exclude:     cfg.Filters.Exclude,
		Parallelism: cfg.Analysis.Parallelism,
		Logger:      logger,
	})

	return &CommandContext{
		Config:   cfg,
		Logger:   logger,
		RepoPath: repoPath(c),
		Analyzer: analyzer,
	}, nil
}

// repoPath prefers a positional argument over the --repo flag.
func repoPath(c *cli.Context) string {
	if c.NArg() > 0 {
		return c.Args().First()
	}
	if p := c.String("repo"); p != "" {
		return p
	}
	return "."
}

// OutputOptions creates OutputOptions from the configuration and CLI flags.
func (ctx *CommandContext) OutputOptions(c *cli.Context) (output.OutputOptions, error) {
	return outputOptions(c, ctx.Config)
}

func writeStatsReport(c *cli.Context, ctx *CommandContext, report *output.StatsReport) error {
	opts, err := ctx.OutputOptions(c)
	if err != nil {
		return err
	}
	writer := output.NewStatsReportWriter(opts.Format)
	return writer.Write(report, opts)
}
