package middleware

import (
	"sync"
	"time"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/mathlive/pkg/pipeline"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "mathlive").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for render duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "mathlive",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

type metrics struct {
	rendersTotal   *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	sourceLength   prometheus.Histogram
	activeSessions prometheus.Gauge
	wsErrors       *prometheus.CounterVec
}

// globalMetrics is created by the first call to Prometheus. Later calls
// share it, so every pipeline in the process reports into the same series.
var (
	globalMetrics   *metrics
	globalMetricsMu sync.Mutex
)

func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)
	base := prometheus.Opts{
		Namespace:   config.Namespace,
		Subsystem:   config.Subsystem,
		ConstLabels: config.ConstLabels,
	}
	named := func(name, help string) prometheus.Opts {
		o := base
		o.Name, o.Help = name, help
		return o
	}
	histogram := func(name, help string, buckets []float64) prometheus.HistogramOpts {
		o := named(name, help)
		return prometheus.HistogramOpts{
			Namespace:   o.Namespace,
			Subsystem:   o.Subsystem,
			Name:        o.Name,
			Help:        o.Help,
			ConstLabels: o.ConstLabels,
			Buckets:     buckets,
		}
	}

	return &metrics{
		rendersTotal: factory.NewCounterVec(
			prometheus.CounterOpts(named("renders_total", "Engine render calls by result and error class")),
			[]string{"result", "class"}),
		renderDuration: factory.NewHistogramVec(
			histogram("render_duration_seconds", "Engine render duration in seconds", config.Buckets),
			[]string{"result"}),
		sourceLength: factory.NewHistogram(
			histogram("source_length_runes", "Length of rendered source text in runes", sourceLengthBuckets)),
		activeSessions: factory.NewGauge(
			prometheus.GaugeOpts(named("active_sessions", "Open live preview sessions"))),
		wsErrors: factory.NewCounterVec(
			prometheus.CounterOpts(named("websocket_errors_total", "Live preview WebSocket errors by type")),
			[]string{"type"}),
	}
}

// sourceLengthBuckets span a single symbol up to a long document.
var sourceLengthBuckets = []float64{8, 32, 128, 512, 2048, 8192}

// Prometheus creates an engine middleware that records render metrics.
//
// Metrics collected:
//   - mathlive_renders_total: Counter of render calls by result and class
//   - mathlive_render_duration_seconds: Histogram of render duration
//   - mathlive_source_length_runes: Histogram of source length
//   - mathlive_active_sessions: Gauge of live preview sessions
//   - mathlive_websocket_errors_total: Counter of WebSocket errors
//
// Example:
//
//	p := pipeline.New(engine, opts, initial,
//	    pipeline.WithMiddleware(middleware.Prometheus(
//	        middleware.WithNamespace("myapp"),
//	    )),
//	)
//
//	// Expose metrics endpoint
//	http.Handle("/metrics", promhttp.Handler())
func Prometheus(opts ...MetricsOption) pipeline.Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	globalMetricsMu.Lock()
	if globalMetrics == nil {
		globalMetrics = initMetrics(config)
	}
	m := globalMetrics
	globalMetricsMu.Unlock()

	return func(next pipeline.Engine) pipeline.Engine {
		return pipeline.EngineFunc(func(text string, opts pipeline.RenderOptions) (pipeline.RenderedOutput, error) {
			m.sourceLength.Observe(float64(utf8.RuneCountInString(text)))

			start := time.Now()
			out, err := next.Render(text, opts)
			duration := time.Since(start).Seconds()

			result := "success"
			if err != nil {
				result = "failure"
			}
			m.renderDuration.WithLabelValues(result).Observe(duration)
			m.rendersTotal.WithLabelValues(result, pipeline.ClassOf(err).String()).Inc()

			return out, err
		})
	}
}

// RecordSessionOpen records a new live preview session.
func RecordSessionOpen() {
	if m := currentMetrics(); m != nil {
		m.activeSessions.Inc()
	}
}

// RecordSessionClose records a closed live preview session.
func RecordSessionClose() {
	if m := currentMetrics(); m != nil {
		m.activeSessions.Dec()
	}
}

// RecordWebSocketError records a WebSocket error.
func RecordWebSocketError(errorType string) {
	if m := currentMetrics(); m != nil {
		m.wsErrors.WithLabelValues(errorType).Inc()
	}
}

func currentMetrics() *metrics {
	globalMetricsMu.Lock()
	defer globalMetricsMu.Unlock()
	return globalMetrics
}
