// Package metrics exposes Prometheus metrics for the dashboard.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// Namespace is the namespace of every dashboard metric.
	Namespace = "sentimentdash"
)

// Metrics holds the dashboard's Prometheus collectors
type Metrics struct {
	// Dataset metrics
	DatasetRows         prometheus.Gauge
	DatasetLoadSeconds  prometheus.Histogram
	DatasetLoadFailures prometheus.Counter

	// Render metrics
	RendersTotal   *prometheus.CounterVec
	RenderSeconds  prometheus.Histogram
	EmptyPanels    *prometheus.CounterVec
	WebSocketConns prometheus.Gauge
}

// New creates and registers the metrics. A nil registerer uses the default one.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)
	m := &Metrics{}

	m.initDatasetMetrics(factory)
	m.initRenderMetrics(factory)

	return m
}

func (m *Metrics) initDatasetMetrics(factory promauto.Factory) {
	m.DatasetRows = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Subsystem: "dataset",
		Name:      "rows",
		Help:      "Number of posts in the loaded table",
	})

	m.DatasetLoadSeconds = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: Namespace,
		Subsystem: "dataset",
		Name:      "load_duration_seconds",
		Help:      "Time spent loading the post table",
		Buckets:   prometheus.DefBuckets,
	})

	m.DatasetLoadFailures = factory.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: "dataset",
		Name:      "load_failures_total",
		Help:      "Number of failed table loads",
	})
}

func (m *Metrics) initRenderMetrics(factory promauto.Factory) {
	m.RendersTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "render",
			Name:      "total",
			Help:      "Number of dashboard reruns by transport",
		},
		[]string{"transport"},
	)

	m.RenderSeconds = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: Namespace,
		Subsystem: "render",
		Name:      "duration_seconds",
		Help:      "Time spent filtering, aggregating and building charts",
		Buckets:   []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5},
	})

	m.EmptyPanels = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "render",
			Name:      "empty_panels_total",
			Help:      "Panels rendered as a no-data placeholder",
		},
		[]string{"panel"},
	)

	m.WebSocketConns = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Subsystem: "websocket",
		Name:      "connections",
		Help:      "Open live dashboard connections",
	})
}
