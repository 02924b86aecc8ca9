// Package metrics holds the Prometheus collectors of the dashboard.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultOK    = "ok"
	resultError = "error"
)

// Metrics bundles dashboard metrics. A nil *Metrics records nothing.
type Metrics struct {
	SummariesComputed prometheus.Counter
	SpendCache        *prometheus.CounterVec
	SourceFetch       *prometheus.HistogramVec
	ReportExports     *prometheus.CounterVec
	ReportDuration    *prometheus.HistogramVec
	Transitions       *prometheus.CounterVec
}

// New constructs the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SummariesComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sitebook_summaries_computed_total",
			Help: "Total contract summaries computed",
		}),
		SpendCache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitebook_spend_cache_total",
				Help: "Spend cache lookups by result",
			},
			[]string{"result"},
		),
		SourceFetch: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sitebook_source_fetch_seconds",
				Help:    "Time to fetch contracts, work hours and expenses",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source", "result"},
		),
		ReportExports: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitebook_report_export_total",
				Help: "Report exports by format and result",
			},
			[]string{"format", "result"},
		),
		ReportDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sitebook_report_export_seconds",
				Help:    "Report rendering duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format"},
		),
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitebook_transitions_total",
				Help: "Lifecycle transitions by event and result",
			},
			[]string{"event", "result"},
		),
	}

	reg.MustRegister(
		m.SummariesComputed,
		m.SpendCache,
		m.SourceFetch,
		m.ReportExports,
		m.ReportDuration,
		m.Transitions,
	)

	return m
}

func result(err error) string {
	if err != nil {
		return resultError
	}

	return resultOK
}

func (m *Metrics) ObserveSummaries(n int) {
	if m == nil {
		return
	}

	m.SummariesComputed.Add(float64(n))
}

func (m *Metrics) ObserveCacheLookup(hit bool) {
	if m == nil {
		return
	}

	label := "miss"
	if hit {
		label = "hit"
	}

	m.SpendCache.WithLabelValues(label).Inc()
}

func (m *Metrics) ObserveFetch(source string, started time.Time, err error) {
	if m == nil {
		return
	}

	m.SourceFetch.WithLabelValues(source, result(err)).Observe(time.Since(started).Seconds())
}

func (m *Metrics) ObserveExport(format string, started time.Time, err error) {
	if m == nil {
		return
	}

	m.ReportExports.WithLabelValues(format, result(err)).Inc()
	m.ReportDuration.WithLabelValues(format).Observe(time.Since(started).Seconds())
}

// ObserveTransition records a lifecycle event. outcome is "ok", "rejected"
// or "error".
func (m *Metrics) ObserveTransition(event, outcome string) {
	if m == nil {
		return
	}

	m.Transitions.WithLabelValues(event, outcome).Inc()
}
