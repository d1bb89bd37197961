package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//Metrics holds the pipeline collectors. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	runs          *prometheus.CounterVec
	framesTracked prometheus.Counter
	cacheLookups  *prometheus.CounterVec
	roles         prometheus.Histogram
}

//New creates a Metrics instance with its own registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "player_tracker_runs_total",
			Help: "Pipeline runs by result",
		}, []string{"result"}),
		framesTracked: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "player_tracker_frames_total",
			Help: "Frames passed through the detection stage",
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "player_tracker_cache_total",
			Help: "Detection cache outcomes (hit, recompute)",
		}, []string{"outcome"}),
		roles: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "player_tracker_assigned_roles",
			Help:    "Number of roles assigned on the reference frame",
			Buckets: []float64{0, 1, 2},
		}),
	}

	m.registry.MustRegister(m.runs, m.framesTracked, m.cacheLookups, m.roles)
	return m
}

//RunFinished counts one pipeline run
func (m *Metrics) RunFinished(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.runs.WithLabelValues("error").Inc()
		return
	}
	m.runs.WithLabelValues("ok").Inc()
}

//Detected records the outcome of the detection stage
func (m *Metrics) Detected(frames int, fromCache bool) {
	if m == nil {
		return
	}
	m.framesTracked.Add(float64(frames))
	if fromCache {
		m.cacheLookups.WithLabelValues("hit").Inc()
	} else {
		m.cacheLookups.WithLabelValues("recompute").Inc()
	}
}

//RolesAssigned records the size of a role mapping
func (m *Metrics) RolesAssigned(n int) {
	if m == nil {
		return
	}
	m.roles.Observe(float64(n))
}

//Registry exposes the underlying registry, mostly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

//Handler returns an HTTP handler for the /metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
