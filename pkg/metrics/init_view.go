package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initCatalogMetrics() {
	r.ScenarioLoadsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "ringlens_scenario_loads_total",
			Help: "Total number of scenario collection loads",
		},
		[]string{"status"},
	)

	r.ScenariosLoaded = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "ringlens_scenarios_loaded",
			Help: "Number of scenarios in the catalog",
		},
	)
}

func (r *Registry) initViewMetrics() {
	r.NarrativesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "ringlens_narratives_total",
			Help: "Total number of narratives generated",
		},
		[]string{"kind"},
	)

	r.CopyTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "ringlens_copy_total",
			Help: "Total number of copy-to-clipboard actions",
		},
		[]string{"target", "status"},
	)

	r.SessionsCreated = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "ringlens_sessions_created_total",
			Help: "Total number of view sessions created",
		},
	)

	r.SSESubscribers = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "ringlens_sse_subscribers",
			Help: "Current number of server-sent event subscribers",
		},
	)
}
