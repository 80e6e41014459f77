package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveFetch(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveFetch("detail", "success", 0.2)
	m.ObserveFetch("detail", "cached", 0)
	m.ObserveFetch("list", "failure", 1.5)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchesTotal.WithLabelValues("detail", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchesTotal.WithLabelValues("detail", "cached")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchesTotal.WithLabelValues("list", "failure")))
	// cache hits are not timed
	assert.Equal(t, 2, testutil.CollectAndCount(m.FetchDuration))
}

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncSkipped("too_few_columns")
	m.IncSkipped("too_few_columns")
	m.IncMissing("gst_number")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RowsSkippedTotal.WithLabelValues("too_few_columns")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FieldsMissingTotal.WithLabelValues("gst_number")))
}

func TestNewRegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
