package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/user/rera-scraper/internal/delivery/http/response"
	"github.com/user/rera-scraper/internal/repository"
	"github.com/user/rera-scraper/internal/usecase"
	"go.uber.org/zap"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
	// A run makes one request per project plus the configured delay.
	scrapeTimeout = 5 * time.Minute
)

// Pinger reports whether a backing service is reachable.
type Pinger func(ctx context.Context) error

// Runner executes one scrape run.
type Runner interface {
	Execute(ctx context.Context) (*usecase.RunResult, error)
}

type Handler struct {
	runner   Runner
	projects repository.ProjectRepository
	failures repository.FailureRepository
	pingers  map[string]Pinger
	logger   *zap.Logger
}

// NewHandler wires the API. projects and failures may be nil when no
// database is configured; their endpoints then answer 503.
func NewHandler(runner Runner, projects repository.ProjectRepository, failures repository.FailureRepository, pingers map[string]Pinger, logger *zap.Logger) *Handler {
	return &Handler{
		runner:   runner,
		projects: projects,
		failures: failures,
		pingers:  pingers,
		logger:   logger,
	}
}

func (h *Handler) HandleScrape(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), scrapeTimeout)
	defer cancel()

	res, err := h.runner.Execute(ctx)
	switch {
	case errors.Is(err, usecase.ErrRunInProgress):
		h.writeJSONError(w, err.Error(), http.StatusConflict)
		return
	case errors.Is(err, context.DeadlineExceeded):
		h.logger.Warn("scrape run timed out", zap.Duration("timeout", scrapeTimeout))
		h.writeJSONError(w, "Scrape run timed out", http.StatusGatewayTimeout)
		return
	case errors.Is(err, context.Canceled):
		// The client is gone; the partial CSV has already been written.
		h.logger.Info("scrape run cancelled by client")
		return
	case err != nil:
		h.logger.Error("scrape run failed", zap.Error(err))
		h.writeJSONError(w, "Scrape run failed", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, response.ScrapeResponse{
		Status:  "completed",
		Records: res.Records,
		Summary: res.Summary,
	})
}

func (h *Handler) HandleListProjects(w http.ResponseWriter, r *http.Request) {
	if h.projects == nil {
		h.writeJSONError(w, "Project storage is not configured", http.StatusServiceUnavailable)
		return
	}
	limit, ok := parseLimit(r)
	if !ok {
		h.writeJSONError(w, "limit must be a positive integer", http.StatusBadRequest)
		return
	}

	projects, err := h.projects.List(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list projects", zap.Error(err))
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, response.ProjectsResponse{Count: len(projects), Projects: projects})
}

func (h *Handler) HandleGetProject(w http.ResponseWriter, r *http.Request) {
	if h.projects == nil {
		h.writeJSONError(w, "Project storage is not configured", http.StatusServiceUnavailable)
		return
	}
	regNo := chi.URLParam(r, "*")
	if regNo == "" {
		h.writeJSONError(w, "registration number is required", http.StatusBadRequest)
		return
	}

	project, err := h.projects.FindByRegistration(r.Context(), regNo)
	if errors.Is(err, repository.ErrProjectNotFound) {
		h.writeJSONError(w, "Project not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("failed to find project", zap.String("registration_number", regNo), zap.Error(err))
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, project)
}

func (h *Handler) HandleListFailures(w http.ResponseWriter, r *http.Request) {
	if h.failures == nil {
		h.writeJSONError(w, "Failure storage is not configured", http.StatusServiceUnavailable)
		return
	}
	limit, ok := parseLimit(r)
	if !ok {
		h.writeJSONError(w, "limit must be a positive integer", http.StatusBadRequest)
		return
	}

	failures, err := h.failures.Recent(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list fetch failures", zap.Error(err))
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, response.FailuresResponse{Count: len(failures), Failures: failures})
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := map[string]string{"status": "ok"}
	healthy := true
	for name, ping := range h.pingers {
		if err := ping(ctx); err != nil {
			status[name] = "unhealthy"
			healthy = false
			h.logger.Error("health check failed", zap.String("dependency", name), zap.Error(err))
			continue
		}
		status[name] = "healthy"
	}

	if !healthy {
		status["status"] = "degraded"
		h.writeJSON(w, http.StatusServiceUnavailable, status)
		return
	}
	h.writeJSON(w, http.StatusOK, status)
}

func parseLimit(r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultListLimit, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	if n > maxListLimit {
		n = maxListLimit
	}
	return n, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to write JSON response", zap.Error(err))
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, response.ErrorResponse{Error: message})
}
