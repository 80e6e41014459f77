package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/user/rera-scraper/internal/delivery/http/handler"
	"github.com/user/rera-scraper/internal/delivery/http/middleware"
	"github.com/user/rera-scraper/pkg/metrics"
	"go.uber.org/zap"
)

// New builds the API router. gatherer backs the /metrics endpoint.
func New(h *handler.Handler, m *metrics.Metrics, gatherer prometheus.Gatherer, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Metrics(m))

	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.HandleHealthCheck)
		r.Post("/scrape", h.HandleScrape)
		r.Get("/projects", h.HandleListProjects)
		// Registration numbers contain slashes (RP/01/2024/00001).
		r.Get("/projects/*", h.HandleGetProject)
		r.Get("/failures", h.HandleListFailures)
	})

	return r
}
