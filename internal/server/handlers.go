package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/masmgr/gitstats-go/internal/acquire"
	"github.com/masmgr/gitstats-go/internal/analysis"
	"github.com/masmgr/gitstats-go/internal/git"
)

// CloneRequest is the body of POST /clone.
type CloneRequest struct {
	URL string `json:"url"`
}

// CloneResponse carries the handle of a new clone.
type CloneResponse struct {
	RepoID string `json:"repo_id"`
}

// AnalyzeAllResponse is returned by GET /analyze.
type AnalyzeAllResponse struct {
	RepoID  string                     `json:"repo_id"`
	Results map[string]analysis.Result `json:"results"`
	Errors  map[string]string          `json:"errors"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) handleClone(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow() {
		s.metrics.clones.WithLabelValues("rate_limited").Inc()
		writeError(w, http.StatusTooManyRequests, "too many clone requests, retry later")
		return
	}

	var req CloneRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		writeError(w, http.StatusBadRequest, acquire.ErrEmptyURL.Error())
		return
	}

	path, err := s.cloner.Clone(r.Context(), req.URL)
	if err != nil {
		s.metrics.clones.WithLabelValues("error").Inc()
		s.logger.WithError(err).WithField("url", req.URL).Error("Clone failed")
		if errors.Is(err, acquire.ErrEmptyURL) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.metrics.clones.WithLabelValues("ok").Inc()

	id := s.repos.Register(path)
	s.logger.WithFields(logrus.Fields{"url": req.URL, "repo_id": id}).Info("Repository registered")

	writeJSON(w, http.StatusOK, CloneResponse{RepoID: id})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	path, ok := s.resolve(w, r)
	if !ok {
		return
	}

	stat, ok := statisticByName(r.PathValue("type"))
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid analysis type, must be one of: %s",
			strings.Join(analysis.StatisticNames(), ", ")))
		return
	}

	result, err := s.run(r.Context(), stat, path)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAnalyzeAll(w http.ResponseWriter, r *http.Request) {
	path, ok := s.resolve(w, r)
	if !ok {
		return
	}

	start := time.Now()
	outcomes := s.analyzer.RunAll(r.Context(), path)

	resp := AnalyzeAllResponse{
		RepoID:  r.URL.Query().Get("repo_id"),
		Results: make(map[string]analysis.Result, len(outcomes)),
		Errors:  map[string]string{},
	}
	var failed error
	for _, o := range outcomes {
		if o.Err != nil {
			resp.Errors[string(o.Statistic)] = o.Err.Error()
			failed = o.Err
			continue
		}
		resp.Results[string(o.Statistic)] = o.Result
	}
	s.metrics.analysis.WithLabelValues("all", outcomeLabel(failed)).Observe(time.Since(start).Seconds())

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRelease(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.repos.Release(id) {
		writeError(w, http.StatusNotFound, "repository not found")
		return
	}
	s.logger.WithField("repo_id", id).Info("Repository released")
	w.WriteHeader(http.StatusNoContent)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// resolve looks up the repo_id query parameter and writes a 404 when it is
// unknown.
func (s *Server) resolve(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.URL.Query().Get("repo_id")
	path, ok := s.repos.Resolve(id)
	if !ok {
		s.logger.WithField("repo_id", id).Warn("Repository not found")
		writeError(w, http.StatusNotFound, "repository not found, clone it first")
		return "", false
	}
	return path, true
}

func (s *Server) run(ctx context.Context, stat analysis.Statistic, path string) (analysis.Result, error) {
	start := time.Now()
	result, err := s.analyzer.Run(ctx, stat, path)
	s.metrics.analysis.WithLabelValues(string(stat), outcomeLabel(err)).Observe(time.Since(start).Seconds())

	log := s.logger.WithFields(logrus.Fields{"statistic": stat, "repo": path})
	if err != nil {
		log.WithError(err).Error("Analysis failed")
		return analysis.Result{}, err
	}
	log.Info("Analysis complete")
	return result, nil
}

// statisticByName accepts only the canonical statistic names. The CLI
// spellings understood by analysis.ParseStatistic are not part of the API.
func statisticByName(name string) (analysis.Statistic, bool) {
	for _, s := range analysis.AllStatistics {
		if string(s) == name {
			return s, true
		}
	}
	return "", false
}

// statusForError maps analysis errors onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case git.IsRepositoryAccess(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, ErrorResponse{Detail: detail})
}
