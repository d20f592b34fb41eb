package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitstats-go/internal/analysis"
)

var legacyNames = []struct {
	name string
	stat analysis.Statistic
}{
	{name: "analyze_commit_frequency", stat: analysis.StatCommitFrequency},
	{name: "analyze_contributor_activity", stat: analysis.StatContributorActivity},
	{name: "analyze_commit_frequency_by_weekday", stat: analysis.StatCommitFrequencyByWeekday},
	{name: "analyze_commit_frequency_by_hour", stat: analysis.StatCommitFrequencyByHour},
	{name: "analyze_average_commit_size", stat: analysis.StatAverageCommitSize},
	{name: "analyze_file_change_frequency", stat: analysis.StatFileChangeFrequency},
}

// LegacyCommands returns the hidden analyze_* commands that keep the
// "gitstats analyze_commit_frequency <repo> [--json]" invocation working.
func LegacyCommands() []*cli.Command {
	commands := make([]*cli.Command, 0, len(legacyNames))
	for _, l := range legacyNames {
		commands = append(commands, &cli.Command{
			Name:      l.name,
			Usage:     l.stat.Title() + " (legacy)",
			ArgsUsage: "<repo_path>",
			Hidden:    true,
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "json",
					Usage: "Output results in JSON format",
				},
			},
			Action: legacyAction(l.name, l.stat),
		})
	}
	return commands
}

func legacyAction(name string, stat analysis.Statistic) cli.ActionFunc {
	return func(c *cli.Context) error {
		if c.NArg() == 0 {
			return fmt.Errorf("%s: repository path is required", name)
		}

		ctx, err := NewCommandContext(c)
		if err != nil {
			return err
		}

		result, err := ctx.Analyzer.Run(c.Context, stat, ctx.RepoPath)
		if err != nil {
			return fmt.Errorf("error analyzing repository: %w", err)
		}

		if legacyJSON(c) {
			data, err := result.MarshalJSON()
			if err != nil {
				return err
			}
			var indented json.RawMessage = data
			enc := json.NewEncoder(c.App.Writer)
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "  ")
			return enc.Encode(indented)
		}

		fmt.Fprintf(c.App.Writer, "\n%s results:\n", name)
		for _, line := range legacyLines(result) {
			fmt.Fprintln(c.App.Writer, line)
		}
		return nil
	}
}

// legacyJSON reports whether --json was given. The flag may trail the
// repository path, where the flag parser leaves it as an argument.
func legacyJSON(c *cli.Context) bool {
	if c.Bool("json") {
		return true
	}
	for _, arg := range c.Args().Tail() {
		if arg == "--json" || arg == "-json" {
			return true
		}
	}
	return false
}

// legacyLines renders a result as "key: value" lines sorted by key.
func legacyLines(result analysis.Result) []string {
	if result.IsAverage() {
		return []string{"average_commit_size: " + strconv.FormatFloat(result.Average, 'f', -1, 64)}
	}

	keys := make([]string, 0, len(result.Counts))
	for k := range result.Counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, len(keys))
	for i, k := range keys {
		lines[i] = fmt.Sprintf("%s: %d", k, result.Counts[k])
	}
	return lines
}
