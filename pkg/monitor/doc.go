/*
Package monitor implements the watch-and-unshelve control loop at the core of vigil.

The monitor continuously probes a network target that stands in for a single
cloud server. While the target answers, nothing else happens. When the target
stops answering, the monitor consults the compute API, and if the server turns
out to be shelved with its resources released, it asks the cloud to bring the
server back. Every decision is made fresh from current observations; the loop
carries no memory of previous cycles.

# Architecture

The monitor runs one cycle, sleeps for the interval the cycle chose, and
repeats until stopped:

	┌────────────────────────────────────────────────────────────┐
	│                      Monitor Cycle                         │
	└────────────────┬───────────────────────────────────────────┘
	                 │
	                 ▼
	         ┌──────────────┐   reachable    ┌──────────────────┐
	         │ Probe target ├───────────────▶│ Sleep PollInterval│
	         └──────┬───────┘                └──────────────────┘
	                │ unreachable
	                ▼
	         ┌──────────────┐   error        ┌──────────────────┐
	         │ Fetch status ├───────────────▶│ Sleep PollInterval│
	         └──────┬───────┘                └──────────────────┘
	                │ SHELVED_OFFLOADED          ▲
	                ▼                            │ any other status
	         ┌──────────────┐   rejected         │
	         │   Unshelve   ├────────────────────┘
	         └──────┬───────┘
	                │ accepted
	                ▼
	    ┌──────────────────────┐
	    │Sleep RecoveringInterval│
	    └──────────────────────┘

The first cycle runs immediately on Start; the interval applies between
cycles, not before the first one.

# Decision Rules

## Probe Gate

The probe is the only input consulted on the happy path. A reachable target
ends the cycle before any compute API call is made, so a healthy steady state
produces zero cloud traffic regardless of how long the monitor runs.

## Status Match

Only the exact status SHELVED_OFFLOADED triggers an unshelve. The comparison
is case sensitive and whole string: SHELVED, shelved_offloaded, ERROR,
SHUTOFF, and any unrecognized value all leave the server alone. A server that
is unreachable but ACTIVE is somebody else's problem (network partition, guest
OS crash); issuing an unshelve there would be rejected by the cloud anyway.

## Failure Policy

The loop is never terminated by a failing cycle:

 1. Lookup failure: no information means no action. The cycle ends on the
    normal cadence and the next cycle tries again.
 2. Unshelve rejection: logged, counted, and abandoned until the next cycle.
    There is no in-cycle retry and no backoff escalation.

## Cadence

Two intervals drive the loop:

	PollInterval        (default 300s)  normal sleep between cycles
	RecoveringInterval  (default 60s)   sleep after an accepted unshelve

The tightened cadence applies to exactly one sleep. The next cycle decides
its own interval from scratch, so a server that unshelves cleanly is
re-checked once after a minute and the loop settles back to the normal
cadence on its own.

# Core Components

Monitor: the loop driver plus the per-cycle decision logic.

	m := monitor.New(cloudClient, prober, cfg, broker)
	m.Start()   // immediate first cycle, then interval sleeps
	defer m.Stop()

RunCycle is exported separately from the loop so a single decision can be
exercised without goroutines or timers:

	next := m.RunCycle(ctx)
	// next is cfg.PollInterval or cfg.RecoveringInterval

CloudClient: the narrow view of pkg/cloud the monitor needs. Only two calls
exist because the cycle only ever looks a server up and unshelves it:

	type CloudClient interface {
		GetServer(ctx context.Context, identifier string) (*types.Server, error)
		Unshelve(ctx context.Context, id string) error
	}

# Usage Examples

## Wiring the Real Dependencies

	import (
		"github.com/stratoworks/vigil/pkg/cloud"
		"github.com/stratoworks/vigil/pkg/config"
		"github.com/stratoworks/vigil/pkg/events"
		"github.com/stratoworks/vigil/pkg/monitor"
		"github.com/stratoworks/vigil/pkg/probe"
	)

	cfg, err := config.Load("")
	if err != nil {
		return err
	}

	cloudClient, err := cloud.New(ctx)
	if err != nil {
		return err
	}

	prober, err := probe.New(probe.TypeICMP, cfg.PingTarget, cfg.PingTimeout, probe.SocketDgram)
	if err != nil {
		return err
	}

	broker := events.NewBroker()
	broker.Start()

	m := monitor.New(cloudClient, prober, cfg, broker)
	m.Start()
	defer m.Stop()

## Observing a Recovery

A full recovery against a shelved server emits this event sequence on the
broker:

	probe.failed            "no echo reply before timeout"
	server.status           "SHELVED_OFFLOADED"
	server.unshelve_sent    "unshelve requested"
	cadence.recovering      (loop driver, sleep tightened to 60s)

and one minute later, once the guest is back:

	probe.succeeded         "reply from 203.0.113.7 in 1.2ms"
	cadence.normal          (loop driver, sleep restored to 300s)

# Integration Points

## Cloud Integration

The monitor calls pkg/cloud through the CloudClient interface:

  - GetServer(ctx, identifier) - resolve the configured name or ID to a server
  - Unshelve(ctx, id) - request restoration, using the resolved server ID

The identifier from configuration may be a name; the unshelve always targets
the ID the lookup resolved, never the raw configured string.

## Probe Integration

Any probe.Prober satisfies the monitor. The shipped implementations are ICMP
echo (pkg/probe ICMPProber) and TCP connect (pkg/probe TCPProber); the cycle
only reads Result.Reachable and Result.Message.

## Metrics Integration

Every cycle updates the vigil_* Prometheus collectors in pkg/metrics:

  - vigil_cycles_total, vigil_cycle_duration_seconds - loop bookkeeping
  - vigil_probes_total{result}, vigil_probe_up - probe outcomes
  - vigil_server_status{status} - last observed status, one-hot
  - vigil_server_lookup_errors_total - failed lookups
  - vigil_unshelve_requests_total{result} - unshelve attempts
  - vigil_poll_cadence_seconds - the interval the last cycle chose

The monitor also registers itself with the health registry; readiness tracks
the loop being alive, never the probe outcome. An unreachable target is the
condition vigil exists to handle, not a reason to report vigil itself broken.

## Events Integration

Action events (probe, status, lookup, unshelve) are published by RunCycle;
lifecycle and cadence-transition events are published by the loop driver.
Events are a display side effect for the CLI and logs. No control decision
ever reads them back, and a nil broker disables them entirely.

# Design Patterns

## Stateless Cycles

RunCycle keeps no state between invocations:

  - All decisions based on the current probe result and current server status
  - No memory of previous failures, no escalation counters
  - The recovering cadence lives in the cycle's return value, not in a field

## Level-Triggered Logic

The monitor acts on observed levels, not edges:

	Edge-triggered: "The server just got shelved, react"
	Level-triggered: "The server is shelved right now, fix it"

A missed cycle, a restart, or a long GC pause changes nothing; the next cycle
observes the same level and converges.

## Fail-Inert Error Handling

Every failure path deliberately collapses to "do nothing, normal cadence".
The cloud's own state machine rejects invalid unshelves, so the worst case of
doing nothing is a delay of one PollInterval, while the worst case of acting
on bad information is an unwanted state transition on a production server.

# Failure Detection Latency

Time from outage to unshelve request:

  - Outage begins right after a cycle: up to PollInterval + probe timeout
  - Outage begins right before a cycle: probe timeout only
  - Default worst case: ~303 seconds (300s interval + 3s probe timeout)

Time from accepted unshelve to confirmation: one RecoveringInterval (60s)
until the next probe, plus however long the cloud takes to boot the guest.

# Troubleshooting

## Monitor Never Calls the Compute API

This is the designed steady state. The compute API is consulted only in
cycles whose probe failed; check vigil_probes_total{result="success"} to
confirm the target is answering.

## Server Shelved but Never Unshelved

1. Check the observed status:
  - vigil_server_status reports what the API returned
  - Only SHELVED_OFFLOADED triggers action; plain SHELVED does not

2. Check lookup errors:
  - vigil_server_lookup_errors_total should be flat
  - A rising counter means credentials or connectivity trouble

3. Check unshelve rejections:
  - vigil_unshelve_requests_total{result="error"} counts rejected attempts
  - The logs carry the compute API's reason

## Unshelve Storms

If unshelve requests repeat every cycle, the cloud is accepting them but the
server keeps returning to SHELVED_OFFLOADED, or the probe target does not
actually belong to the configured server. Verify SERVER_NAME and PING_TARGET
refer to the same machine.

# See Also

  - pkg/probe - reachability checks (ICMP echo, TCP connect)
  - pkg/cloud - compute API client (lookup, unshelve)
  - pkg/metrics - Prometheus collectors and health endpoints
  - pkg/events - the broker carrying monitor events
  - pkg/config - intervals, identifiers, probe settings
*/
package monitor
