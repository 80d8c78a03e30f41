// Package metrics records fetch scheduler and catalog sync activity in Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.trai.ch/parcel/internal/core/domain"
)

// Recorder implements ports.Metrics on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	fetchStarted  *prometheus.CounterVec
	fetchFinished *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	queueDepth    prometheus.Gauge
	activeFetches prometheus.Gauge
	catalogSyncs  *prometheus.CounterVec
}

// New creates a Recorder with all collectors registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		fetchStarted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parcel_fetch_started_total",
				Help: "Number of bundle fetch jobs admitted, by origin.",
			},
			[]string{"origin"},
		),
		fetchFinished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parcel_fetch_finished_total",
				Help: "Number of bundle fetch jobs completed, by origin and failure reason.",
			},
			[]string{"origin", "reason"},
		),
		fetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "parcel_fetch_duration_seconds",
				Help:    "Time taken to resolve one bundle.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"origin"},
		),
		queueDepth: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "parcel_fetch_queue_depth",
				Help: "Number of fetch jobs waiting for admission.",
			},
		),
		activeFetches: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "parcel_fetch_active",
				Help: "Number of fetch jobs currently active.",
			},
		),
		catalogSyncs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parcel_catalog_sync_total",
				Help: "Number of catalog syncs, by result.",
			},
			[]string{"result"},
		),
	}

	r.registry.MustRegister(
		r.fetchStarted,
		r.fetchFinished,
		r.fetchDuration,
		r.queueDepth,
		r.activeFetches,
		r.catalogSyncs,
	)
	return r
}

// FetchStarted records a job becoming active.
func (r *Recorder) FetchStarted(origin domain.Origin) {
	r.fetchStarted.WithLabelValues(origin.String()).Inc()
}

// FetchFinished records a job reaching its terminal state.
func (r *Recorder) FetchFinished(origin domain.Origin, reason domain.FailureReason, seconds float64) {
	label := string(reason)
	if reason == domain.ReasonNone {
		label = "ok"
	}
	r.fetchFinished.WithLabelValues(origin.String(), label).Inc()
	r.fetchDuration.WithLabelValues(origin.String()).Observe(seconds)
}

// QueueDepth records the number of queued jobs.
func (r *Recorder) QueueDepth(n int) {
	r.queueDepth.Set(float64(n))
}

// ActiveFetches records the number of active jobs.
func (r *Recorder) ActiveFetches(n int) {
	r.activeFetches.Set(float64(n))
}

// CatalogSynced records the outcome of a catalog sync.
func (r *Recorder) CatalogSynced(upToDate bool) {
	result := "updated"
	if upToDate {
		result = "up_to_date"
	}
	r.catalogSyncs.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
