package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"FarmDashboard/internal/ports"
)

// Recorder exports report metrics on its own registry.
type Recorder struct {
	registry *prometheus.Registry
	reports  *prometheus.CounterVec
	buckets  prometheus.Histogram
	fetch    *prometheus.HistogramVec
}

var _ ports.ReportMetrics = (*Recorder)(nil)

// NewRecorder registers the dashboard collectors plus the Go runtime collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "farmdashboard",
			Name:      "reports_total",
			Help:      "Reports served, by family, period and outcome.",
		}, []string{"family", "period", "outcome"}),
		buckets: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "farmdashboard",
			Name:      "report_buckets",
			Help:      "Number of buckets returned per successful report.",
			Buckets:   []float64{0, 1, 7, 31, 53, 366, 1000},
		}),
		fetch: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "farmdashboard",
			Name:      "store_fetch_seconds",
			Help:      "Latency of record fetches from the store.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"family"}),
	}

	r.registry.MustRegister(
		r.reports,
		r.buckets,
		r.fetch,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveReport counts one report and, on success, its bucket count.
func (r *Recorder) ObserveReport(family, period, outcome string, buckets int) {
	if r == nil {
		return
	}
	r.reports.WithLabelValues(family, period, outcome).Inc()
	if outcome == "ok" {
		r.buckets.Observe(float64(buckets))
	}
}

// ObserveFetch records how long a store fetch took.
func (r *Recorder) ObserveFetch(family string, seconds float64) {
	if r == nil {
		return
	}
	r.fetch.WithLabelValues(family).Observe(seconds)
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
