// Package acquire clones remote repositories into local working directories.
package acquire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/sirupsen/logrus"
)

// ErrEmptyURL is returned when Clone is called without a URL.
var ErrEmptyURL = errors.New("repository URL is empty")

// Cloner clones repositories into unique directories under a base directory.
type Cloner struct {
	baseDir string
	depth   int
	logger  *logrus.Logger
}

// NewCloner creates a Cloner. An empty baseDir uses the OS temp directory;
// depth 0 clones the full history.
func NewCloner(baseDir string, depth int) *Cloner {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &Cloner{baseDir: baseDir, depth: depth, logger: logger}
}

// WithLogger sets the logger used for clone progress.
func (c *Cloner) WithLogger(logger *logrus.Logger) *Cloner {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// Clone clones url and returns the path of the new working copy. The
// directory is removed again when cloning fails.
func (c *Cloner) Clone(ctx context.Context, url string) (string, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", ErrEmptyURL
	}

	if c.baseDir != "" {
		if err := os.MkdirAll(c.baseDir, 0o755); err != nil {
			return "", fmt.Errorf("create clone directory: %w", err)
		}
	}
	dir, err := os.MkdirTemp(c.baseDir, "gitstats-")
	if err != nil {
		return "", fmt.Errorf("create clone directory: %w", err)
	}

	start := time.Now()
	log := c.logger.WithFields(logrus.Fields{"url": url, "dir": dir})
	log.Info("Cloning repository")

	_, err = git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:   url,
		Depth: c.depth,
		Tags:  git.NoTags,
	})
	if err != nil {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			log.WithError(rmErr).Warn("Failed to remove partial clone")
		}
		return "", fmt.Errorf("clone %s: %w", url, err)
	}

	log.WithField("duration", time.Since(start).Round(time.Millisecond)).Info("Repository cloned")
	return dir, nil
}

// Remove deletes a working copy created by Clone.
func (c *Cloner) Remove(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("remove clone %s: %w", path, err)
	}
	c.logger.WithField("dir", path).Debug("Clone removed")
	return nil
}
