/*
Package events provides an in-memory event broker for vigil's cycle reporting.

The events package implements a lightweight event bus broadcasting monitor
transitions to interested subscribers. The reconciliation loop publishes one
event per observable transition (probe outcome, fetched remote status, action
taken, cadence change); the monitor command subscribes and renders the
human-readable progress lines. Delivery is asynchronous and lossy-by-design
for slow consumers, so reporting can never stall a reconciliation cycle.

# Architecture

	┌──────────────────── EVENT BROKER ─────────────────────┐
	│                                                         │
	│  Publisher (pkg/monitor)                                │
	│       │                                                 │
	│       ▼                                                 │
	│  Event Channel (buffer: 100)                            │
	│       │                                                 │
	│       ▼                                                 │
	│  Broadcast Loop ──► Subscriber Channels (buffer: 50)   │
	│                          │                              │
	│                          ▼                              │
	│                  cmd/vigil progress renderer            │
	└─────────────────────────────────────────────────────────┘

# Event Types

Lifecycle:
  - monitor.started / monitor.stopped

Per cycle:
  - probe.succeeded / probe.failed
  - server.status (remote status observed after a failed probe)
  - server.lookup_failed
  - server.unshelve_sent / server.unshelve_failed
  - cadence.recovering / cadence.normal

Every event carries a UUID, a timestamp, a message, and string metadata
(server identifier, probe target, status, interval).

# Delivery Semantics

Publish never blocks the caller: the broker's input channel is buffered and
a full subscriber buffer drops the event for that subscriber only. Events
are a reporting side effect; no control decision in the monitor reads them
back, so dropping one can never change reconciliation behavior.

# Usage

	broker := events.NewBroker()
	broker.Start()
	defer broker.Stop()

	sub := broker.Subscribe()
	go func() {
		for event := range sub {
			fmt.Printf("[%s] %s\n", event.Timestamp.Format(time.RFC3339), event.Message)
		}
	}()

	broker.Publish(events.New(events.EventProbeFailed, "probe failed", map[string]string{
		"target": "203.0.113.7",
	}))
*/
package events
