// Package metrics exposes Prometheus collectors for the lead service.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	leadRunsTotal           *prometheus.CounterVec
	leadsEnrichedTotal      prometheus.Counter
	duplicatesSkippedTotal  *prometheus.CounterVec
	extractionsTotal        *prometheus.CounterVec
	activeExtractions       prometheus.Gauge
	fetchDelaySeconds       *prometheus.HistogramVec
	httpRequestsTotal       *prometheus.CounterVec
	httpRequestDurationSecs *prometheus.HistogramVec

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		leadRunsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "leadgen_runs_total",
				Help: "Total number of search runs, labeled by outcome.",
			},
			[]string{"outcome"},
		)

		leadsEnrichedTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "leadgen_leads_enriched_total",
				Help: "Total number of leads accepted into a run accumulator.",
			},
		)

		duplicatesSkippedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "leadgen_duplicates_skipped_total",
				Help: "Total listings rejected by the duplicate index, labeled by matched field.",
			},
			[]string{"field"},
		)

		extractionsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "leadgen_extractions_total",
				Help: "Total website extractions, labeled by whether an email was found.",
			},
			[]string{"found_email"},
		)

		activeExtractions = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "leadgen_active_extractions",
				Help: "Number of website extractions currently in flight.",
			},
		)

		fetchDelaySeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "leadgen_fetch_delay_seconds",
				Help:    "Histogram of per-domain rate limit wait durations.",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"domain"},
		)

		httpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests, labeled by method and code.",
			},
			[]string{"method", "code"},
		)

		httpRequestDurationSecs = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies, labeled by method and route.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"method", "route"},
		)
	})
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveRun increments the run counter for the given outcome.
func ObserveRun(outcome string) {
	Init()
	leadRunsTotal.WithLabelValues(outcome).Inc()
}

// ObserveLeadEnriched counts one accepted lead.
func ObserveLeadEnriched() {
	Init()
	leadsEnrichedTotal.Inc()
}

// ObserveDuplicateSkipped counts one rejected listing by matched field.
func ObserveDuplicateSkipped(field string) {
	Init()
	duplicatesSkippedTotal.WithLabelValues(field).Inc()
}

// ObserveExtraction counts one finished website extraction.
func ObserveExtraction(foundEmail bool) {
	Init()
	extractionsTotal.WithLabelValues(strconv.FormatBool(foundEmail)).Inc()
}

// IncActiveExtractions increments the in-flight extraction gauge.
func IncActiveExtractions() {
	Init()
	activeExtractions.Inc()
}

// DecActiveExtractions decrements the in-flight extraction gauge.
func DecActiveExtractions() {
	Init()
	activeExtractions.Dec()
}

// ObserveFetchDelay records a per-domain rate limit wait.
func ObserveFetchDelay(domain string, duration time.Duration) {
	Init()
	fetchDelaySeconds.WithLabelValues(domain).Observe(duration.Seconds())
}

// ObserveHTTPRequest increments the HTTP request metrics.
func ObserveHTTPRequest(method, route string, code int, duration time.Duration) {
	Init()
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
	httpRequestDurationSecs.WithLabelValues(method, route).Observe(duration.Seconds())
}
