package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	// SourceRequests is labelled by source and outcome (ok, error, disabled).
	SourceRequests *prometheus.CounterVec
	SourceLatency  *prometheus.HistogramVec
	// MergeDuplicates counts secondary candidates folded into a primary.
	MergeDuplicates prometheus.Counter
	MergedPlaces    prometheus.Histogram
	// EnrichmentTasks is labelled by final status.
	EnrichmentTasks *prometheus.CounterVec
	ActiveSessions  prometheus.Gauge
	Bookings        *prometheus.CounterVec
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	sourceRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gompa_source_requests_total",
		Help: "Place source calls by outcome.",
	}, []string{"source", "outcome"})
	sourceLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gompa_source_latency_seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})
	mergeDuplicates := prometheus.NewCounter(prometheus.CounterOpts{Name: "gompa_merge_duplicates_total"})
	mergedPlaces := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "gompa_merged_places",
		Buckets: []float64{0, 1, 5, 10, 20, 50},
	})
	enrichmentTasks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gompa_enrichment_tasks_total",
	}, []string{"status"})
	activeSessions := prometheus.NewGauge(prometheus.GaugeOpts{Name: "gompa_active_sessions"})
	bookings := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gompa_bookings_total",
	}, []string{"type", "status"})

	r.MustRegister(sourceRequests, sourceLatency, mergeDuplicates, mergedPlaces,
		enrichmentTasks, activeSessions, bookings)

	return &Registry{
		reg:             r,
		SourceRequests:  sourceRequests,
		SourceLatency:   sourceLatency,
		MergeDuplicates: mergeDuplicates,
		MergedPlaces:    mergedPlaces,
		EnrichmentTasks: enrichmentTasks,
		ActiveSessions:  activeSessions,
		Bookings:        bookings,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
