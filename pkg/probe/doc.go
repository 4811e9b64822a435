/*
Package probe provides reachability probes for the target the monitor guards.

This package implements two probe types: ICMP echo and TCP connect. A probe
answers exactly one question per cycle: is the target reachable right now?
The answer gates whether the monitor consults the compute API at all.

# Architecture

The probe system follows a modular prober design:

	┌─────────────────────────────────────────────┐
	│                Prober Interface             │
	│  • Probe(ctx) Result                        │
	│  • Type() Type                              │
	│  • Target() string                          │
	└────────┬────────────────────────────────────┘
	         │
	    ┌────┴──────┐
	    ▼           ▼
	┌────────┐  ┌────────┐
	│  ICMP  │  │  TCP   │
	│ Prober │  │ Prober │
	└────────┘  └────────┘
	     │           │
	     ▼           ▼
	  echo        connect
	  request     host:port

# Probe Types

## ICMP Probes

ICMP probes send a single echo request via the pro-bing library:

	Probe Type: ICMP
	Configuration:
	├── Addr: hostname or IP (e.g., "203.0.113.7")
	├── Timeout: 3 seconds (default)
	└── Socket: raw or dgram

Socket modes:
  - raw: raw ICMP sockets, requires root, byte-level ICMP
  - dgram: unprivileged UDP datagram sockets (SOCK_DGRAM), works as any user
    on Linux when ping_group_range permits

The dgram mode is the default so the monitor can run unprivileged. Raw mode
exists for environments where datagram ICMP sockets are disabled.

## TCP Probes

TCP probes verify that a port completes a handshake:

	Probe Type: TCP
	Configuration:
	├── Addr: host:port (e.g., "203.0.113.7:22")
	└── Timeout: 3 seconds (default)

Useful when ICMP is filtered on the path to the target but a known service
port (SSH, HTTPS) is expected to listen.

# Result Semantics

All probes return a standardized Result:

	type Result struct {
		Reachable bool          // Target answered?
		Target    string        // What was probed
		Message   string        // Human-readable outcome
		CheckedAt time.Time     // When the probe ran
		Duration  time.Duration // How long it took
	}

A probe that could not run (socket permissions, resolution failure,
cancelled context) reports Reachable=false exactly like a silent target.
There is no richer error taxonomy: every non-answer means "do not trust
the target is up", and the monitor's response to all of them is the same.

# Usage Examples

## ICMP Probe

	import "github.com/stratoworks/vigil/pkg/probe"

	prober := probe.NewICMPProber("203.0.113.7").
		WithTimeout(3 * time.Second).
		WithSocket(probe.SocketDgram)

	result := prober.Probe(ctx)
	if !result.Reachable {
		// consult the compute API
	}

## TCP Probe

	prober := probe.NewTCPProber("203.0.113.7:22").
		WithTimeout(2 * time.Second)

	result := prober.Probe(ctx)

## Factory

The monitor command selects the prober from configuration:

	prober, err := probe.New(probe.TypeICMP, cfg.PingTarget,
		cfg.PingTimeout, probe.SocketDgram)

# Design Patterns

## Strategy Pattern

Both probers implement the Prober interface, so the monitor never knows
which kind it holds:

	Prober (interface)
	├── ICMPProber (echo strategy)
	└── TCPProber (connect strategy)

## Builder Pattern

Probers use fluent builders for configuration:

	probe.NewICMPProber(addr).WithTimeout(t).WithSocket(mode)

## Bounded Blocking

Every probe is bounded twice: by the prober's own Timeout and by the
caller's context. Whichever fires first ends the probe with
Reachable=false. A probe can never stall a monitor cycle indefinitely.

# Integration Points

This package integrates with:

  - pkg/monitor: Probes once per cycle, result gates compute API access
  - pkg/config: Supplies target, timeout, kind, and socket mode
  - cmd/vigil: Validates raw socket mode is only requested as root

# See Also

  - pro-bing library: https://github.com/prometheus-community/pro-bing
  - pkg/monitor - The probe's only consumer
*/
package probe
