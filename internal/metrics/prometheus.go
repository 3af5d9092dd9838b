package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder on a dedicated registry.
type PrometheusRecorder struct {
	registry      *prometheus.Registry
	buildDuration *prometheus.HistogramVec
	postsParsed   prometheus.Counter
	postsRendered prometheus.Counter
	errorsTotal   *prometheus.CounterVec
}

func NewPrometheusRecorder() *PrometheusRecorder {
	registry := prometheus.NewRegistry()

	r := &PrometheusRecorder{
		registry: registry,
		buildDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "blogbuilder_build_duration_seconds",
			Help:    "Duration of site builds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"success"}),
		postsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blogbuilder_posts_parsed_total",
			Help: "Posts successfully parsed across all builds.",
		}),
		postsRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blogbuilder_posts_rendered_total",
			Help: "Posts successfully rendered across all builds.",
		}),
		errorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "blogbuilder_errors_total",
			Help: "Per-file build errors by category.",
		}, []string{"category"}),
	}

	registry.MustRegister(r.buildDuration, r.postsParsed, r.postsRendered, r.errorsTotal)
	return r
}

func (r *PrometheusRecorder) ObserveBuildDuration(d time.Duration, success bool) {
	label := "false"
	if success {
		label = "true"
	}
	r.buildDuration.WithLabelValues(label).Observe(d.Seconds())
}

func (r *PrometheusRecorder) IncPostsParsed(n int)   { r.postsParsed.Add(float64(n)) }
func (r *PrometheusRecorder) IncPostsRendered(n int) { r.postsRendered.Add(float64(n)) }
func (r *PrometheusRecorder) IncError(category string) {
	r.errorsTotal.WithLabelValues(category).Inc()
}

// Handler exposes the recorder's registry in Prometheus text format.
func (r *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
