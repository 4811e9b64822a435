/*
Package metrics provides Prometheus metrics collection and exposition for Vigil.

The metrics package defines and registers all Vigil metrics using the Prometheus
client library, providing observability into monitor cycle cadence, probe
outcomes, compute API interactions, and process health. Metrics are exposed via
HTTP endpoint for scraping by Prometheus servers, alongside health, readiness,
and liveness endpoints for orchestration platforms.

# Architecture

Vigil's metrics system follows Prometheus best practices with instrumentation
across the monitor's decision path:

	┌──────────────────── METRICS SYSTEM ──────────────────────┐
	│                                                            │
	│  ┌────────────────────────────────────────────┐          │
	│  │          Prometheus Registry                │          │
	│  │  - Global DefaultRegistry                   │          │
	│  │  - MustRegister at package init             │          │
	│  │  - Automatic Go runtime metrics             │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │           Metric Categories                 │          │
	│  │                                              │          │
	│  │  Cycle: Count, duration, chosen cadence     │          │
	│  │  Probe: Attempts, last outcome, duration    │          │
	│  │  Compute: Server status, lookups, unshelve  │          │
	│  │  Process: Component health mirror           │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │            Ops HTTP Server                  │          │
	│  │  - /metrics: Prometheus text exposition     │          │
	│  │  - /health: Overall component health        │          │
	│  │  - /ready: Critical component readiness     │          │
	│  │  - /live: Process liveness                  │          │
	│  └────────────────────────────────────────────┘           │
	└────────────────────────────────────────────────────────┘

# Metrics Catalog

Cycle Metrics:

vigil_cycles_total:
  - Type: Counter
  - Description: Total monitor cycles executed, whatever their outcome
  - Example: vigil_cycles_total 1440

vigil_cycle_duration_seconds:
  - Type: Histogram
  - Description: Duration of monitor cycles, including compute API calls
  - Buckets: Default Prometheus buckets

vigil_poll_cadence_seconds:
  - Type: Gauge
  - Description: Sleep interval the monitor selected after its last cycle
  - Example: vigil_poll_cadence_seconds 300

Probe Metrics:

vigil_probes_total{result}:
  - Type: Counter
  - Description: Reachability probes by result (success/failure)
  - Labels: result
  - Example: vigil_probes_total{result="success"} 1430

vigil_probe_up:
  - Type: Gauge
  - Description: Most recent probe outcome (1 = reachable, 0 = unreachable)
  - Example: vigil_probe_up 1

vigil_probe_duration_seconds:
  - Type: Histogram
  - Description: Reachability probe duration in seconds

Compute Metrics:

vigil_server_status{status}:
  - Type: Gauge
  - Description: Most recently observed server status, one-hot by status
  - Labels: status
  - Example: vigil_server_status{status="ACTIVE"} 1

vigil_server_lookup_errors_total:
  - Type: Counter
  - Description: Server lookups that failed outright

vigil_unshelve_requests_total{result}:
  - Type: Counter
  - Description: Unshelve requests by result (ok/error)
  - Labels: result

Process Metrics:

vigil_component_healthy{component}:
  - Type: Gauge
  - Description: Component health mirrored from the health registry
  - Labels: component

# Health Checking

The package maintains a registry of component health reports. Components
register themselves once initialized and update their status as conditions
change:

	metrics.RegisterComponent("cloud", true, "authenticated")
	metrics.UpdateComponent("cloud", false, "keystone unreachable")

Readiness gates on critical components only: the cloud client and the
monitor loop. Probe failures are the monitor's normal operating signal and
never make the process unready.

# Usage

Recording cycle metrics:

	timer := metrics.NewTimer()
	// ... run cycle ...
	timer.ObserveDuration(metrics.CycleDuration)
	metrics.CyclesTotal.Inc()
	metrics.PollCadence.Set(next.Seconds())

Recording probe outcomes:

	metrics.ProbesTotal.WithLabelValues("success").Inc()
	metrics.ProbeUp.Set(1)

Recording server status:

	metrics.ObserveServerStatus(string(server.Status))

Serving the ops endpoints:

	ops := metrics.NewOpsServer(":9090")
	go func() {
		if err := ops.Start(); err != nil && err != http.ErrServerClosed {
			log.Error(err, "ops server failed")
		}
	}()

# Integration Points

This package integrates with:

  - pkg/monitor: Records cycle, probe, and compute metrics
  - pkg/cloud: Registers cloud component health
  - cmd/vigil: Starts the ops server for the monitor command
  - Prometheus: Scrapes /metrics endpoint

# Design Patterns

Package Init Registration:
  - All metrics registered in init() function
  - MustRegister panics on duplicate registration
  - Ensures metrics available before main()

Label Discipline:
  - result labels are two-valued (success/failure, ok/error)
  - status labels track Nova's status vocabulary, reset one-hot per observation
  - No identifiers or timestamps as labels

One-Hot Status Gauge:
  - ObserveServerStatus resets the vector before setting the current status
  - Queries never see two statuses set at once
  - Absence of any set status means no lookup has succeeded yet

# Monitoring

Prometheus Queries (PromQL):

Probe health:
  - Target reachable: vigil_probe_up == 1
  - Failure rate: rate(vigil_probes_total{result="failure"}[15m])

Compute interactions:
  - Server currently shelved: vigil_server_status{status="SHELVED_OFFLOADED"} == 1
  - Unshelve attempts: increase(vigil_unshelve_requests_total[1h])
  - Lookup errors: rate(vigil_server_lookup_errors_total[15m])

Monitor cadence:
  - In recovery: vigil_poll_cadence_seconds < 300
  - Cycle rate: rate(vigil_cycles_total[30m])

# Alerting Rules

Recommended Prometheus alerts:

Unshelve Failures:
  - Alert: increase(vigil_unshelve_requests_total{result="error"}[1h]) > 0
  - Description: Unshelve requests are being rejected
  - Action: Check compute quota, API credentials, server task state

Persistent Lookup Errors:
  - Alert: rate(vigil_server_lookup_errors_total[30m]) > 0
  - Description: Monitor cannot resolve the target server
  - Action: Check credentials, server name, compute endpoint

Target Down Without Recovery:
  - Alert: vigil_probe_up == 0 for 30m
  - Description: Target unreachable and no unshelve is helping
  - Action: Check server status and network path manually

# See Also

  - Prometheus client library: https://github.com/prometheus/client_golang
  - Histogram best practices: https://prometheus.io/docs/practices/histograms/
*/
package metrics
