package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitstats-go/internal/acquire"
	"github.com/masmgr/gitstats-go/internal/logging"
)

// CloneCmd returns the clone command.
func CloneCmd() *cli.Command {
	return &cli.Command{
		Name:      "clone",
		Usage:     "Clone a repository for analysis and print its local path",
		ArgsUsage: "<url>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dest",
				Usage: "Directory to clone under (default: OS temp dir)",
			},
			&cli.IntFlag{
				Name:  "depth",
				Usage: "Shallow clone depth (0 = full history)",
			},
		},
		Action: cloneAction,
	}
}

func cloneAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("clone: %w", acquire.ErrEmptyURL)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger := logging.New(logging.Config{Level: cfg.Log.Level, JSON: cfg.Log.JSON}, c.App.ErrWriter)

	dest := cfg.Server.CloneDir
	if c.IsSet("dest") {
		dest = c.String("dest")
	}
	depth := cfg.Server.CloneDepth
	if c.IsSet("depth") {
		depth = c.Int("depth")
	}

	path, err := acquire.NewCloner(dest, depth).WithLogger(logger).Clone(c.Context, c.Args().First())
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, path)
	return nil
}
