package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for a report run.
type Metrics struct {
	EventsFetched      prometheus.Counter
	EventsExcluded     prometheus.Counter
	EventsUnattributed prometheus.Counter
	FetchErrors        *prometheus.CounterVec // labels: kind={network,http_status,parse,other}
	FetchDuration      prometheus.Histogram

	StatesAggregated     prometheus.Gauge
	Assessments          *prometheus.CounterVec // labels: risk={High,Moderate,Low,Unknown}
	AssessmentsPublished prometheus.Counter

	// Geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeCache       *prometheus.CounterVec // labels: result={hit,miss}
	GeocodeAPIDuration prometheus.Histogram
	GeocodeEnabled     prometheus.Gauge
}

// NewMetrics creates and registers all run metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.EventsFetched,
		m.EventsExcluded,
		m.EventsUnattributed,
		m.FetchErrors,
		m.FetchDuration,
		m.StatesAggregated,
		m.Assessments,
		m.AssessmentsPublished,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeAPIDuration,
		m.GeocodeEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		EventsFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_risk",
			Name:      "events_fetched_total",
			Help:      "Earthquake events returned by the USGS API.",
		}),
		EventsExcluded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_risk",
			Name:      "events_excluded_total",
			Help:      "Events dropped by the excluded-state filter.",
		}),
		EventsUnattributed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_risk",
			Name:      "events_unattributed_total",
			Help:      "Events left out of state aggregates because no state could be derived from the place.",
		}),
		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_risk",
			Name:      "fetch_errors_total",
			Help:      "Failed USGS fetches by error kind.",
		}, []string{"kind"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quake_risk",
			Name:      "fetch_duration_seconds",
			Help:      "USGS API request duration in seconds, including body decode.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		StatesAggregated: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_risk",
			Name:      "states_aggregated",
			Help:      "Distinct states with at least one event in the last run.",
		}),
		Assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_risk",
			Name:      "assessments_total",
			Help:      "Client location assessments by risk tier.",
		}, []string{"risk"}),
		AssessmentsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_risk",
			Name:      "assessments_published_total",
			Help:      "Assessments written to the Kafka topic.",
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_risk",
			Name:      "geocode_requests_total",
			Help:      "Mapbox reverse geocoding requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_risk",
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quake_risk",
			Name:      "geocode_api_duration_seconds",
			Help:      "Mapbox API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		GeocodeEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_risk",
			Name:      "geocode_enabled",
			Help:      "1 when state resolution for unattributed events is enabled, 0 otherwise.",
		}),
	}
}
