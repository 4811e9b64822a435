package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Cycle metrics
	CyclesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vigil_cycles_total",
			Help: "Total number of monitor cycles executed",
		},
	)

	CycleDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vigil_cycle_duration_seconds",
			Help:    "Duration of monitor cycles in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	PollCadence = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "vigil_poll_cadence_seconds",
			Help: "Sleep interval selected after the last monitor cycle",
		},
	)

	// Probe metrics
	ProbesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vigil_probes_total",
			Help: "Total number of reachability probes by result",
		},
		[]string{"result"},
	)

	ProbeUp = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "vigil_probe_up",
			Help: "Whether the last reachability probe succeeded (1 = reachable, 0 = unreachable)",
		},
	)

	ProbeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vigil_probe_duration_seconds",
			Help:    "Reachability probe duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Compute metrics
	ServerStatus = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "vigil_server_status",
			Help: "Most recently observed compute server status (one-hot by status)",
		},
		[]string{"status"},
	)

	LookupErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vigil_server_lookup_errors_total",
			Help: "Total number of failed server lookups",
		},
	)

	UnshelvesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vigil_unshelve_requests_total",
			Help: "Total number of unshelve requests by result",
		},
		[]string{"result"},
	)

	// Process metrics
	ComponentHealthy = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "vigil_component_healthy",
			Help: "Component health as reported by the health registry (1 = healthy)",
		},
		[]string{"component"},
	)
)

func init() {
	// Register all metrics
	prometheus.MustRegister(CyclesTotal)
	prometheus.MustRegister(CycleDuration)
	prometheus.MustRegister(PollCadence)
	prometheus.MustRegister(ProbesTotal)
	prometheus.MustRegister(ProbeUp)
	prometheus.MustRegister(ProbeDuration)
	prometheus.MustRegister(ServerStatus)
	prometheus.MustRegister(LookupErrorsTotal)
	prometheus.MustRegister(UnshelvesTotal)
	prometheus.MustRegister(ComponentHealthy)
}

// ObserveServerStatus records status as the current server status and
// clears whichever status was recorded before it.
func ObserveServerStatus(status string) {
	ServerStatus.Reset()
	ServerStatus.WithLabelValues(status).Set(1)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
