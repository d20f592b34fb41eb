package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitstats-go/internal/analysis"
	"github.com/masmgr/gitstats-go/internal/output"
)

// withCommonFlags runs fn as the action of a command carrying the common flags.
func withCommonFlags(t *testing.T, args []string, fn func(c *cli.Context) error) {
	t.Helper()
	isolateConfig(t)

	app := &cli.App{
		Name:  "test",
		Flags: App().Flags,
		Commands: []*cli.Command{{
			Name:   "check",
			Flags:  append(commonFlags(), &cli.IntFlag{Name: "parallel"}),
			Action: fn,
		}},
	}
	if err := app.Run(append([]string{"test"}, args...)); err != nil {
		t.Fatalf("app.Run(%v): %v", args, err)
	}
}

// isolateConfig keeps config discovery away from the developer's files.
func isolateConfig(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

func TestRepoPath(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "Default", args: []string{"check"}, want: "."},
		{name: "Flag", args: []string{"check", "--repo", "/srv/a"}, want: "/srv/a"},
		{name: "ShortFlag", args: []string{"check", "-r", "/srv/a"}, want: "/srv/a"},
		{name: "Positional", args: []string{"check", "/srv/b"}, want: "/srv/b"},
		{name: "PositionalWins", args: []string{"check", "-r", "/srv/a", "/srv/b"}, want: "/srv/b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withCommonFlags(t, tt.args, func(c *cli.Context) error {
				if got := repoPath(c); got != tt.want {
					t.Errorf("repoPath() = %q, want %q", got, tt.want)
				}
				return nil
			})
		})
	}
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	args := []string{
		"--log-level", "debug",
		"check",
		"--include", "src/**",
		"--exclude", "**/*.md", "--exclude", "vendor/**",
		"--format", "csv",
		"--top", "5",
		"--parallel", "2",
	}

	withCommonFlags(t, args, func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			t.Fatalf("loadConfig: %v", err)
		}
		if len(cfg.Filters.Include) != 1 || cfg.Filters.Include[0] != "src/**" {
			t.Errorf("Include = %v", cfg.Filters.Include)
		}
		if len(cfg.Filters.Exclude) != 2 {
			t.Errorf("Exclude = %v", cfg.Filters.Exclude)
		}
		if cfg.Output.Format != "csv" || cfg.Output.Top != 5 {
			t.Errorf("Output = %+v", cfg.Output)
		}
		if cfg.Analysis.Parallelism != 2 {
			t.Errorf("Parallelism = %d, want 2", cfg.Analysis.Parallelism)
		}
		if cfg.Log.Level != "debug" {
			t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
		}
		return nil
	})
}

func TestLoadConfig_FileValuesWithoutFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.json")
	if err := os.WriteFile(path, []byte(`{"output": {"format": "markdown", "top": 3}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	withCommonFlags(t, []string{"--config", path, "check", "-o", "report.md"}, func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			t.Fatalf("loadConfig: %v", err)
		}
		opts, err := outputOptions(c, cfg)
		if err != nil {
			t.Fatalf("outputOptions: %v", err)
		}
		want := output.OutputOptions{Format: output.FormatMarkdown, Top: 3, OutputPath: "report.md"}
		if opts != want {
			t.Errorf("outputOptions() = %+v, want %+v", opts, want)
		}
		return nil
	})
}

func TestOutputOptions_InvalidFormat(t *testing.T) {
	withCommonFlags(t, []string{"check", "-f", "xml"}, func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			t.Fatalf("loadConfig: %v", err)
		}
		if _, err := outputOptions(c, cfg); err == nil {
			t.Error("expected error for format xml")
		}
		return nil
	})
}

func TestParseStatFlags(t *testing.T) {
	got, err := parseStatFlags([]string{"contributor-activity", "analyze_average_commit_size", "commit_frequency_by_hour"})
	if err != nil {
		t.Fatalf("parseStatFlags: %v", err)
	}
	want := []analysis.Statistic{
		analysis.StatContributorActivity,
		analysis.StatAverageCommitSize,
		analysis.StatCommitFrequencyByHour,
	}
	if len(got) != len(want) {
		t.Fatalf("parseStatFlags() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("parseStatFlags()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if _, err := parseStatFlags([]string{"lines-of-code"}); err == nil {
		t.Error("expected error for unknown statistic")
	}
}

func TestCleanupInterval(t *testing.T) {
	tests := []struct {
		name       string
		configured time.Duration
		ttl        time.Duration
		want       time.Duration
	}{
		{name: "NoExpiry", configured: 10 * time.Minute, ttl: 0, want: 0},
		{name: "Configured", configured: 10 * time.Minute, ttl: time.Hour, want: 10 * time.Minute},
		{name: "UnsetUsesTTL", configured: 0, ttl: time.Hour, want: time.Hour},
		{name: "CappedAtTTL", configured: 2 * time.Hour, ttl: time.Hour, want: time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanupInterval(tt.configured, tt.ttl); got != tt.want {
				t.Errorf("cleanupInterval(%v, %v) = %v, want %v", tt.configured, tt.ttl, got, tt.want)
			}
		})
	}
}

func TestLegacyLines(t *testing.T) {
	counts := analysis.Result{
		Statistic: analysis.StatCommitFrequency,
		Counts:    map[string]int{"2024-01-02": 1, "2024-01-01": 3},
	}
	got := legacyLines(counts)
	if len(got) != 2 || got[0] != "2024-01-01: 3" || got[1] != "2024-01-02: 1" {
		t.Errorf("legacyLines(counts) = %q", got)
	}

	avg := analysis.Result{Statistic: analysis.StatAverageCommitSize, Average: 2.5}
	if got := legacyLines(avg); len(got) != 1 || got[0] != "average_commit_size: 2.5" {
		t.Errorf("legacyLines(average) = %q", got)
	}
}

func TestApp_CommandNames(t *testing.T) {
	app := App()
	for _, name := range []string{
		"frequency", "day", "weekday", "hour", "contributors", "commit-size",
		"file-changes", "all", "clone", "serve", "analyze_commit_frequency",
		"analyze_file_change_frequency",
	} {
		if app.Command(name) == nil {
			t.Errorf("command %q not registered", name)
		}
	}
}
