package cmd

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitstats-go/internal/analysis"
	"github.com/masmgr/gitstats-go/internal/output"
)

type statCommand struct {
	name    string
	aliases []string
	usage   string
	stat    analysis.Statistic
}

var statCommands = []statCommand{
	{name: "frequency", aliases: []string{"day"}, usage: "Count commits per calendar date (UTC)", stat: analysis.StatCommitFrequency},
	{name: "weekday", usage: "Count commits per weekday", stat: analysis.StatCommitFrequencyByWeekday},
	{name: "hour", usage: "Count commits per hour of day (UTC)", stat: analysis.StatCommitFrequencyByHour},
	{name: "contributors", usage: "Count commits per contributor", stat: analysis.StatContributorActivity},
	{name: "commit-size", usage: "Average changed lines per commit", stat: analysis.StatAverageCommitSize},
	{name: "file-changes", usage: "Count commits touching each file", stat: analysis.StatFileChangeFrequency},
}

// StatCommands returns one command per statistic.
func StatCommands() []*cli.Command {
	commands := make([]*cli.Command, 0, len(statCommands))
	for _, sc := range statCommands {
		commands = append(commands, &cli.Command{
			Name:      sc.name,
			Aliases:   sc.aliases,
			Usage:     sc.usage,
			ArgsUsage: "[repository path]",
			Flags:     commonFlags(),
			Action:    statAction(sc.stat),
		})
	}
	return commands
}

func statAction(stat analysis.Statistic) cli.ActionFunc {
	return func(c *cli.Context) error {
		ctx, err := NewCommandContext(c)
		if err != nil {
			return err
		}

		result, err := ctx.Analyzer.Run(c.Context, stat, ctx.RepoPath)
		if err != nil {
			return fmt.Errorf("%s: %w", stat, err)
		}

		report := &output.StatsReport{
			RepoPath:    ctx.RepoPath,
			GeneratedAt: time.Now(),
			Outcomes:    []analysis.Outcome{{Statistic: stat, Result: result}},
		}
		return writeStatsReport(c, ctx, report)
	}
}

// AllCmd returns the command that computes every statistic at once.
func AllCmd() *cli.Command {
	flags := append(commonFlags(),
		&cli.StringSliceFlag{
			Name:    "stat",
			Aliases: []string{"s"},
			Usage:   "Statistic to compute (can be specified multiple times; default: all)",
		},
		&cli.IntFlag{
			Name:  "parallel",
			Usage: "Statistics computed at once",
		},
	)

	return &cli.Command{
		Name:      "all",
		Usage:     "Compute all statistics, reporting failures per statistic",
		ArgsUsage: "[repository path]",
		Flags:     flags,
		Action:    allAction,
	}
}

func allAction(c *cli.Context) error {
	stats, err := parseStatFlags(c.StringSlice("stat"))
	if err != nil {
		return err
	}

	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	report := &output.StatsReport{
		RepoPath:    ctx.RepoPath,
		GeneratedAt: time.Now(),
		Outcomes:    ctx.Analyzer.RunAll(c.Context, ctx.RepoPath, stats...),
	}
	if err := writeStatsReport(c, ctx, report); err != nil {
		return err
	}

	if failed := report.Failed(); failed > 0 {
		return fmt.Errorf("%d of %d statistics failed", failed, len(report.Outcomes))
	}
	return nil
}

func parseStatFlags(names []string) ([]analysis.Statistic, error) {
	stats := make([]analysis.Statistic, 0, len(names))
	for _, name := range names {
		stat, err := analysis.ParseStatistic(name)
		if err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}
	return stats, nil
}
