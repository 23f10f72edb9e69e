// Package metrics exposes pipeline and HTTP instrumentation through Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Veraticus/stylist/internal/engine"
	"github.com/Veraticus/stylist/internal/model"
)

// Recorder collects recommendation metrics. It implements engine.Observer.
type Recorder struct {
	registry *prometheus.Registry

	noCandidates      prometheus.Counter
	embeddingFailures *prometheus.CounterVec
	pickSources       *prometheus.CounterVec
	selectionTiers    *prometheus.CounterVec
	historyFailures   prometheus.Counter
	httpDuration      *prometheus.HistogramVec
}

var _ engine.Observer = (*Recorder)(nil)

// NewRecorder creates a Recorder with its own registry, including Go runtime
// and process collectors.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		noCandidates: factory.NewCounter(prometheus.CounterOpts{
			Name: "stylist_no_candidates_total",
			Help: "Requests where no catalog item fit the budget",
		}),
		embeddingFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stylist_embedding_failures_total",
			Help: "Embedding requests that produced no vector",
		}, []string{"reason"}),
		pickSources: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stylist_pick_parse_total",
			Help: "Generator answers by the parser stage that read them",
		}, []string{"source"}),
		selectionTiers: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stylist_selection_tier_total",
			Help: "Recommendations by the selection tier that produced the products",
		}, []string{"tier"}),
		historyFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "stylist_history_write_failures_total",
			Help: "Recommendations that could not be recorded",
		}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stylist_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// NoCandidates implements engine.Observer.
func (r *Recorder) NoCandidates(string) {
	r.noCandidates.Inc()
}

// EmbeddingFailed implements engine.Observer.
func (r *Recorder) EmbeddingFailed(reason string) {
	r.embeddingFailures.WithLabelValues(reason).Inc()
}

// PickParsed implements engine.Observer.
func (r *Recorder) PickParsed(source model.PickSource) {
	r.pickSources.WithLabelValues(string(source)).Inc()
}

// SelectionTier implements engine.Observer.
func (r *Recorder) SelectionTier(tier engine.Tier) {
	r.selectionTiers.WithLabelValues(string(tier)).Inc()
}

// HistoryWriteFailed implements engine.Observer.
func (r *Recorder) HistoryWriteFailed(error) {
	r.historyFailures.Inc()
}

// ObserveHTTP records the duration of one HTTP request.
func (r *Recorder) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	r.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
