package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveAnalysis(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveAnalysis("AAPL", "", 4, 20*time.Millisecond)
	m.ObserveAnalysis("XYZ", "not_enough_data", 0, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AnalysesTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AnalysesTotal.WithLabelValues("not_enough_data")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.ScoreLatest.WithLabelValues("AAPL")))
}

func TestObserveFetch(t *testing.T) {
	m := New(nil)
	m.ObserveFetch("yahoo", nil)
	m.ObserveFetch("yahoo", errors.New("boom"))
	m.ObserveFetch("yahoo", errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchesTotal.WithLabelValues("yahoo", "ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.FetchesTotal.WithLabelValues("yahoo", "error")))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveAnalysis("AAPL", "", 1, time.Second)
		m.ObserveFetch("mock", nil)
	})
}
