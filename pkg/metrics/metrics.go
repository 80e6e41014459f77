package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the scraper.
type Metrics struct {
	FetchesTotal        *prometheus.CounterVec
	FetchDuration       *prometheus.HistogramVec
	RowsSkippedTotal    *prometheus.CounterVec
	FieldsMissingTotal  *prometheus.CounterVec
	LabelOverlapsTotal  prometheus.Counter
	RecordsScrapedTotal prometheus.Counter
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New registers the scraper metrics with reg. Pass prometheus.DefaultRegisterer
// to expose them on /metrics.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		FetchesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rera_fetches_total",
			Help: "Total number of page fetches.",
		}, []string{"kind", "status"}), // kind: list, detail; status: success, failure, cached
		FetchDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rera_fetch_duration_seconds",
			Help:    "Duration of page fetches.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"kind"}),
		RowsSkippedTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rera_rows_skipped_total",
			Help: "Listing rows skipped without producing a record.",
		}, []string{"reason"}),
		FieldsMissingTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rera_fields_missing_total",
			Help: "Promoter fields replaced by the sentinel value.",
		}, []string{"field"}),
		LabelOverlapsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "rera_label_overlaps_total",
			Help: "Detail elements that matched more than one label family.",
		}),
		RecordsScrapedTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "rera_records_scraped_total",
			Help: "Project records produced.",
		}),
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}
}

func (m *Metrics) ObserveFetch(kind, status string, seconds float64) {
	m.FetchesTotal.WithLabelValues(kind, status).Inc()
	if status != "cached" {
		m.FetchDuration.WithLabelValues(kind).Observe(seconds)
	}
}

func (m *Metrics) IncSkipped(reason string) {
	m.RowsSkippedTotal.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncMissing(field string) {
	m.FieldsMissingTotal.WithLabelValues(field).Inc()
}
