// Package analysis computes commit-history statistics for a local repository.
//
// Every operation opens the repository, walks its history once from HEAD and
// feeds an aggregator. Nothing is cached between calls, so operations are
// safe to run concurrently against the same path.
package analysis

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/masmgr/gitstats-go/internal/aggregation"
	"github.com/masmgr/gitstats-go/internal/git"
)

// DefaultParallelism bounds RunAll when Options.Parallelism is unset.
const DefaultParallelism = 3

// Opener opens the history source at path.
type Opener func(path string, opts git.ReadOptions) (git.HistorySource, error)

// OpenRepository is the default Opener backed by go-git.
func OpenRepository(path string, opts git.ReadOptions) (git.HistorySource, error) {
	repo, err := git.Open(path, opts)
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// Options configures an Analyzer.
type Options struct {
	// Include and Exclude filter the paths seen by the diff-based statistics.
	Include []string
	Exclude []string
	// Parallelism bounds how many statistics RunAll computes at once.
	Parallelism int
	Logger      *logrus.Logger
	// Opener overrides how repositories are opened. Defaults to OpenRepository.
	Opener Opener
}

// Analyzer exposes the history statistics.
type Analyzer struct {
	readOpts    git.ReadOptions
	parallelism int
	logger      *logrus.Logger
	open        Opener
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(opts Options) *Analyzer {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	open := opts.Opener
	if open == nil {
		open = OpenRepository
	}
	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = DefaultParallelism
	}

	return &Analyzer{
		readOpts:    git.ReadOptions{Include: opts.Include, Exclude: opts.Exclude},
		parallelism: parallelism,
		logger:      logger,
		open:        open,
	}
}

// CommitFrequency counts commits per UTC calendar date.
func (a *Analyzer) CommitFrequency(ctx context.Context, repoPath string) (map[string]int, error) {
	return a.temporal(ctx, StatCommitFrequency, repoPath, aggregation.NewDayAggregator())
}

// CommitFrequencyByWeekday counts commits per weekday. All seven weekdays are
// present.
func (a *Analyzer) CommitFrequencyByWeekday(ctx context.Context, repoPath string) (map[string]int, error) {
	return a.temporal(ctx, StatCommitFrequencyByWeekday, repoPath, aggregation.NewWeekdayAggregator())
}

// CommitFrequencyByHour counts commits per UTC hour. All 24 hours are present.
func (a *Analyzer) CommitFrequencyByHour(ctx context.Context, repoPath string) (map[string]int, error) {
	return a.temporal(ctx, StatCommitFrequencyByHour, repoPath, aggregation.NewHourAggregator())
}

func (a *Analyzer) temporal(ctx context.Context, stat Statistic, repoPath string, agg *aggregation.TemporalAggregator) (map[string]int, error) {
	err := a.walk(ctx, stat, repoPath, func(_ git.HistorySource, c git.Commit) error {
		agg.Add(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return agg.Counts(), nil
}

// ContributorActivity counts commits per "Name <email>" identity.
func (a *Analyzer) ContributorActivity(ctx context.Context, repoPath string) (map[string]int, error) {
	tracker := aggregation.NewContributorTracker()
	err := a.walk(ctx, StatContributorActivity, repoPath, func(_ git.HistorySource, c git.Commit) error {
		tracker.Add(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tracker.Counts(), nil
}

// AverageCommitSize returns the mean number of changed lines per commit with
// a parent, measured against the first parent. It is 0 when no commit has a
// parent.
func (a *Analyzer) AverageCommitSize(ctx context.Context, repoPath string) (float64, error) {
	est := aggregation.NewChangeVolumeEstimator()
	err := a.walk(ctx, StatAverageCommitSize, repoPath, func(src git.HistorySource, c git.Commit) error {
		if c.IsRoot() {
			return nil
		}
		diffs, err := src.Patches(ctx, c)
		if err != nil {
			return err
		}
		est.Add(c, diffs)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return est.Average(), nil
}

// FileChangeFrequency counts, per path, the commits that touched it relative
// to their first parent. Root commits contribute nothing.
func (a *Analyzer) FileChangeFrequency(ctx context.Context, repoPath string) (map[string]int, error) {
	tracker := aggregation.NewFileChurnTracker()
	err := a.walk(ctx, StatFileChangeFrequency, repoPath, func(src git.HistorySource, c git.Commit) error {
		if c.IsRoot() {
			return nil
		}
		diffs, err := src.Changes(ctx, c)
		if err != nil {
			return err
		}
		tracker.Add(c, diffs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tracker.Counts(), nil
}

// Run computes a single statistic by name.
func (a *Analyzer) Run(ctx context.Context, stat Statistic, repoPath string) (Result, error) {
	result := Result{Statistic: stat}
	var err error

	switch stat {
	case StatCommitFrequency:
		result.Counts, err = a.CommitFrequency(ctx, repoPath)
	case StatCommitFrequencyByWeekday:
		result.Counts, err = a.CommitFrequencyByWeekday(ctx, repoPath)
	case StatCommitFrequencyByHour:
		result.Counts, err = a.CommitFrequencyByHour(ctx, repoPath)
	case StatContributorActivity:
		result.Counts, err = a.ContributorActivity(ctx, repoPath)
	case StatAverageCommitSize:
		result.Average, err = a.AverageCommitSize(ctx, repoPath)
	case StatFileChangeFrequency:
		result.Counts, err = a.FileChangeFrequency(ctx, repoPath)
	default:
		return Result{}, fmt.Errorf("unknown statistic %q", stat)
	}
	if err != nil {
		return Result{}, err
	}
	return result, nil
}

// RunAll computes the given statistics concurrently (all of them when none
// are given). Outcomes are returned in request order; a failing statistic
// records its error without affecting the others.
func (a *Analyzer) RunAll(ctx context.Context, repoPath string, stats ...Statistic) []Outcome {
	if len(stats) == 0 {
		stats = AllStatistics
	}

	outcomes := make([]Outcome, len(stats))

	var g errgroup.Group
	g.SetLimit(a.parallelism)
	for i, stat := range stats {
		g.Go(func() error {
			result, err := a.Run(ctx, stat, repoPath)
			outcomes[i] = Outcome{Statistic: stat, Result: result, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

// walk opens repoPath and calls fn for each commit. Errors from fn abort the
// walk and are returned unchanged.
func (a *Analyzer) walk(ctx context.Context, stat Statistic, repoPath string, fn func(git.HistorySource, git.Commit) error) error {
	start := time.Now()
	log := a.logger.WithFields(logrus.Fields{
		"statistic": stat,
		"repo":      repoPath,
	})

	src, err := a.open(repoPath, a.readOpts)
	if err != nil {
		log.WithError(err).Debug("Failed to open repository")
		return err
	}

	commits := 0
	err = src.Walk(ctx, func(c git.Commit) error {
		commits++
		return fn(src, c)
	})
	if err != nil {
		log.WithError(err).Debug("Statistic failed")
		return err
	}

	log.WithFields(logrus.Fields{
		"commits":  commits,
		"duration": time.Since(start).Round(time.Millisecond),
	}).Debug("Statistic computed")
	return nil
}
