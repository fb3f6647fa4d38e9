// Package metrics holds the Prometheus collectors of the analysis pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcomes
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Recorder groups the pipeline collectors on its own registry. A nil *Recorder records nothing.
type Recorder struct {
	registry *prometheus.Registry

	analyses      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	cache         *prometheus.CounterVec
	verdicts      *prometheus.CounterVec
	catalogSize   prometheus.Gauge
	matchesScored prometheus.Counter
}

// New creates a Recorder with a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		analyses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "career_analyses_total",
				Help: "Total number of pipeline operations by outcome",
			},
			[]string{"operation", "outcome"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "career_analysis_duration_seconds",
				Help:    "Duration of pipeline operations in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
			[]string{"operation"},
		),
		cache: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "career_match_cache_total",
				Help: "Match cache lookups by result",
			},
			[]string{"result"},
		),
		verdicts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "career_scam_verdicts_total",
				Help: "Job posting assessments by verdict",
			},
			[]string{"verdict"},
		),
		catalogSize: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "career_catalog_size",
				Help: "Number of careers in the loaded catalog",
			},
		),
		matchesScored: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "career_matches_scored_total",
				Help: "Total number of career profiles scored against students",
			},
		),
	}
}

// Registry exposes the underlying registry for export.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// ObserveOperation records one pipeline operation.
func (r *Recorder) ObserveOperation(op string, started time.Time, err error) {
	if r == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	r.analyses.WithLabelValues(op, outcome).Inc()
	r.duration.WithLabelValues(op).Observe(time.Since(started).Seconds())
}

// CacheResult records a cache hit or miss.
func (r *Recorder) CacheResult(hit bool) {
	if r == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cache.WithLabelValues(result).Inc()
}

// Verdict records one scam verdict.
func (r *Recorder) Verdict(v string) {
	if r == nil {
		return
	}
	r.verdicts.WithLabelValues(v).Inc()
}

// CatalogSize sets the catalog gauge.
func (r *Recorder) CatalogSize(n int) {
	if r == nil {
		return
	}
	r.catalogSize.Set(float64(n))
}

// MatchesScored adds n scored careers.
func (r *Recorder) MatchesScored(n int) {
	if r == nil {
		return
	}
	r.matchesScored.Add(float64(n))
}

// WriteTextfile writes the current metrics in the node_exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
