package cmd

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitstats-go/internal/acquire"
	"github.com/masmgr/gitstats-go/internal/server"
)

// ServeCmd returns the serve command.
func ServeCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP statistics service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (default from config, :8000)",
			},
			&cli.StringSliceFlag{
				Name:  "allowed-origin",
				Usage: "CORS origin glob pattern (can be specified multiple times)",
			},
			&cli.StringFlag{
				Name:  "clone-dir",
				Usage: "Directory for cloned repositories (default: OS temp dir)",
			},
			&cli.DurationFlag{
				Name:  "repo-ttl",
				Usage: "How long a clone stays registered (0 = until deleted)",
			},
		},
		Action: serveAction,
	}
}

func serveAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}
	sc := ctx.Config.Server

	if c.IsSet("addr") {
		sc.Addr = c.String("addr")
	}
	if origins := c.StringSlice("allowed-origin"); len(origins) > 0 {
		sc.AllowedOrigins = origins
	}
	if c.IsSet("clone-dir") {
		sc.CloneDir = c.String("clone-dir")
	}
	repoTTL := sc.RepoTTL()
	if c.IsSet("repo-ttl") {
		repoTTL = c.Duration("repo-ttl")
	}

	cloner := acquire.NewCloner(sc.CloneDir, sc.CloneDepth).WithLogger(ctx.Logger)

	srv, err := server.New(ctx.Analyzer, cloner, server.Options{
		Addr:            sc.Addr,
		AllowedOrigins:  sc.AllowedOrigins,
		RepoTTL:         repoTTL,
		CleanupInterval: cleanupInterval(sc.CleanupInterval(), repoTTL),
		ClonesPerMinute: sc.ClonesPerMinute,
		CloneBurst:      sc.CloneBurst,
		ShutdownTimeout: sc.ShutdownTimeout(),
		Logger:          ctx.Logger,
	})
	if err != nil {
		return err
	}

	return srv.ListenAndServe(c.Context)
}

// cleanupInterval keeps expiry sweeps running whenever clones can expire.
func cleanupInterval(configured, ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 0
	}
	if configured <= 0 || configured > ttl {
		return ttl
	}
	return configured
}
