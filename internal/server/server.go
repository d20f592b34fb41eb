// Package server exposes the history statistics over HTTP.
//
// Clients first POST a repository URL to /clone and receive an opaque handle,
// then request statistics for that handle. Clones live in a registry until
// they are deleted, expire, or the server shuts down.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/masmgr/gitstats-go/internal/analysis"
	"github.com/masmgr/gitstats-go/internal/logging"
	"github.com/masmgr/gitstats-go/internal/registry"
)

const (
	defaultAddr            = ":8000"
	defaultShutdownTimeout = 10 * time.Second
	maxRequestBody         = 1 << 20
)

// Cloner acquires local working copies of remote repositories.
type Cloner interface {
	Clone(ctx context.Context, url string) (string, error)
	Remove(path string) error
}

// Options configures a Server.
type Options struct {
	Addr string
	// AllowedOrigins are glob patterns matched against the Origin header.
	// A lone "*" allows every origin.
	AllowedOrigins []string
	// RepoTTL is how long a clone stays registered. 0 keeps it until deleted.
	RepoTTL         time.Duration
	CleanupInterval time.Duration
	// ClonesPerMinute limits POST /clone. 0 disables the limit.
	ClonesPerMinute float64
	CloneBurst      int
	ShutdownTimeout time.Duration
	Logger          *logrus.Logger
}

// Server is the HTTP front end over an Analyzer.
type Server struct {
	analyzer *analysis.Analyzer
	cloner   Cloner
	repos    *registry.Registry
	limiter  *rate.Limiter
	origins  []string
	metrics  *metrics
	logger   *logrus.Logger

	addr            string
	shutdownTimeout time.Duration
	handler         http.Handler
	closeOnce       sync.Once
}

// New creates a Server. It fails when an allowed origin is not a valid glob
// pattern.
func New(analyzer *analysis.Analyzer, cloner Cloner, opts Options) (*Server, error) {
	for _, pattern := range opts.AllowedOrigins {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid allowed origin pattern %q", pattern)
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	addr := opts.Addr
	if addr == "" {
		addr = defaultAddr
	}
	shutdownTimeout := opts.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	limit := rate.Inf
	if opts.ClonesPerMinute > 0 {
		limit = rate.Limit(opts.ClonesPerMinute / 60)
	}
	burst := opts.CloneBurst
	if burst < 1 {
		burst = 1
	}

	s := &Server{
		analyzer:        analyzer,
		cloner:          cloner,
		limiter:         rate.NewLimiter(limit, burst),
		origins:         opts.AllowedOrigins,
		logger:          logger,
		addr:            addr,
		shutdownTimeout: shutdownTimeout,
	}

	s.repos = registry.New(opts.RepoTTL, opts.CleanupInterval, s.removeClone)

	promRegistry := prometheus.NewRegistry()
	s.metrics = newMetrics(promRegistry, func() float64 {
		return float64(s.repos.Len())
	})

	mux := http.NewServeMux()
	mux.HandleFunc("POST /clone", s.handleClone)
	mux.HandleFunc("GET /analyze/{type}", s.handleAnalyze)
	mux.HandleFunc("GET /analyze", s.handleAnalyzeAll)
	mux.HandleFunc("DELETE /repos/{id}", s.handleRelease)
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))

	s.handler = s.instrument(s.cors(mux))
	return s, nil
}

// Handler returns the root handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves until ctx is cancelled, then drains in-flight
// requests and releases every registered clone.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       120 * time.Second,
		// No WriteTimeout: analysis of a large history is bounded by the
		// request context instead.
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", s.addr).Info("Server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve %s: %w", s.addr, err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	s.Close()
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Close releases every registered clone. It is safe to call more than once.
func (s *Server) Close() {
	s.closeOnce.Do(func() {
		n := s.repos.Len()
		s.repos.Close()
		s.logger.WithField("repos", n).Info("Released registered repositories")
	})
}

func (s *Server) removeClone(path string) {
	if err := s.cloner.Remove(path); err != nil {
		s.logger.WithError(err).WithField("dir", path).Warn("Failed to remove clone")
	}
}

func (s *Server) originAllowed(origin string) bool {
	for _, pattern := range s.origins {
		if pattern == "*" {
			return true
		}
		if ok, err := doublestar.Match(pattern, origin); err == nil && ok {
			return true
		}
	}
	return false
}
