package monitor

import (
	"context"
	"time"

	"github.com/stratoworks/vigil/pkg/config"
	"github.com/stratoworks/vigil/pkg/events"
	"github.com/stratoworks/vigil/pkg/log"
	"github.com/stratoworks/vigil/pkg/metrics"
	"github.com/stratoworks/vigil/pkg/probe"
	"github.com/stratoworks/vigil/pkg/types"
)

// CloudClient is the slice of the compute API the monitor needs
type CloudClient interface {
	// GetServer resolves an identifier (ID or name) to a server snapshot
	GetServer(ctx context.Context, identifier string) (*types.Server, error)

	// Unshelve asks the compute service to restore a shelved server
	Unshelve(ctx context.Context, id string) error
}

// Monitor drives the reconciliation loop for one guarded server
type Monitor struct {
	cloud  CloudClient
	prober probe.Prober
	cfg    *config.Config
	broker *events.Broker

	stopCh chan struct{}
	doneCh chan struct{}
}

// New creates a monitor wired to a compute client and a prober. The broker
// may be nil when nobody listens for events.
func New(client CloudClient, prober probe.Prober, cfg *config.Config, broker *events.Broker) *Monitor {
	return &Monitor{
		cloud:  client,
		prober: prober,
		cfg:    cfg,
		broker: broker,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// Start begins the reconciliation loop
func (m *Monitor) Start() {
	go m.run()
}

// Stop stops the monitor and waits for the loop to exit
func (m *Monitor) Stop() {
	close(m.stopCh)
	<-m.doneCh
}

// run executes cycles back to back, sleeping whatever interval each cycle
// chooses. The first cycle runs immediately: a freshly started monitor acts
// before it waits.
func (m *Monitor) run() {
	defer close(m.doneCh)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-m.stopCh
		cancel()
	}()

	metrics.RegisterComponent("monitor", true, "loop running")
	m.publish(events.EventMonitorStarted, "monitor started", map[string]string{
		"server": m.cfg.ServerIdentifier,
		"target": m.prober.Target(),
	})

	log.Logger.Info().
		Str("component", "monitor").
		Str("server", m.cfg.ServerIdentifier).
		Str("target", m.prober.Target()).
		Str("probe", string(m.prober.Type())).
		Dur("interval", m.cfg.PollInterval).
		Msg("monitor started")

	cadence := m.cfg.PollInterval
	for {
		next := m.RunCycle(ctx)

		if next != cadence {
			if next == m.cfg.RecoveringInterval {
				m.publish(events.EventCadenceReduced, "tightened cadence while server recovers", map[string]string{
					"interval": next.String(),
				})
			} else {
				m.publish(events.EventCadenceRestored, "restored normal cadence", map[string]string{
					"interval": next.String(),
				})
			}
			cadence = next
		}

		timer := time.NewTimer(next)
		select {
		case <-timer.C:
		case <-m.stopCh:
			timer.Stop()
			metrics.UpdateComponent("monitor", false, "stopped")
			m.publish(events.EventMonitorStopped, "monitor stopped", nil)

			log.Logger.Info().
				Str("component", "monitor").
				Str("server", m.cfg.ServerIdentifier).
				Msg("monitor stopped")
			return
		}
	}
}

// RunCycle executes one reconciliation cycle and returns how long the caller
// should sleep before the next one:
//
//	probe ok                        -> PollInterval, no compute API calls
//	probe failed, lookup failed     -> PollInterval
//	probe failed, SHELVED_OFFLOADED:
//	    unshelve accepted           -> RecoveringInterval
//	    unshelve rejected           -> PollInterval
//	probe failed, any other status  -> PollInterval
//
// Errors never terminate the loop and never trigger a retry within the same
// cycle; the next cycle is the retry.
func (m *Monitor) RunCycle(ctx context.Context) time.Duration {
	timer := metrics.NewTimer()
	defer func() {
		timer.ObserveDuration(metrics.CycleDuration)
		metrics.CyclesTotal.Inc()
	}()

	result := m.prober.Probe(ctx)
	metrics.ProbeDuration.Observe(result.Duration.Seconds())

	if result.Reachable {
		metrics.ProbesTotal.WithLabelValues("success").Inc()
		metrics.ProbeUp.Set(1)
		metrics.PollCadence.Set(m.cfg.PollInterval.Seconds())

		log.Logger.Debug().
			Str("component", "monitor").
			Str("target", result.Target).
			Dur("took", result.Duration).
			Msg("target reachable")

		m.publish(events.EventProbeSucceeded, result.Message, map[string]string{
			"target": result.Target,
		})
		return m.cfg.PollInterval
	}

	metrics.ProbesTotal.WithLabelValues("failure").Inc()
	metrics.ProbeUp.Set(0)

	log.Logger.Info().
		Str("component", "monitor").
		Str("target", result.Target).
		Str("reason", result.Message).
		Msg("target unreachable, consulting compute API")

	m.publish(events.EventProbeFailed, result.Message, map[string]string{
		"target": result.Target,
	})

	srv, err := m.cloud.GetServer(ctx, m.cfg.ServerIdentifier)
	if err != nil {
		metrics.LookupErrorsTotal.Inc()
		metrics.PollCadence.Set(m.cfg.PollInterval.Seconds())

		// No information about the server means no safe action; keep
		// watching at the normal cadence
		log.Logger.Error().
			Str("component", "monitor").
			Str("server", m.cfg.ServerIdentifier).
			Str("operation", "get_server").
			Err(err).
			Msg("server lookup failed")

		m.publish(events.EventLookupFailed, err.Error(), map[string]string{
			"server": m.cfg.ServerIdentifier,
		})
		return m.cfg.PollInterval
	}

	metrics.ObserveServerStatus(string(srv.Status))

	log.Logger.Info().
		Str("component", "monitor").
		Str("server", srv.Name).
		Str("status", string(srv.Status)).
		Str("power", srv.PowerState.String()).
		Msg("server status fetched")

	m.publish(events.EventStatusFetched, string(srv.Status), map[string]string{
		"server": srv.Name,
		"status": string(srv.Status),
	})

	if srv.Status != types.StatusShelvedOffloaded {
		if !srv.Status.Known() {
			log.Logger.Warn().
				Str("component", "monitor").
				Str("server", srv.Name).
				Str("status", string(srv.Status)).
				Msg("server reports unrecognized status, taking no action")
		}

		// Unreachable but not shelved offloaded: whatever is wrong,
		// unshelving is not the fix
		metrics.PollCadence.Set(m.cfg.PollInterval.Seconds())
		return m.cfg.PollInterval
	}

	if err := m.cloud.Unshelve(ctx, srv.ID); err != nil {
		metrics.UnshelvesTotal.WithLabelValues("error").Inc()
		metrics.PollCadence.Set(m.cfg.PollInterval.Seconds())

		log.Logger.Error().
			Str("component", "monitor").
			Str("server", srv.Name).
			Str("operation", "unshelve").
			Err(err).
			Msg("unshelve rejected, retrying next cycle")

		m.publish(events.EventUnshelveFailed, err.Error(), map[string]string{
			"server": srv.Name,
			"action": string(types.ActionUnshelve),
		})
		return m.cfg.PollInterval
	}

	metrics.UnshelvesTotal.WithLabelValues("ok").Inc()
	metrics.PollCadence.Set(m.cfg.RecoveringInterval.Seconds())

	log.Logger.Info().
		Str("component", "monitor").
		Str("server", srv.Name).
		Dur("recheck_in", m.cfg.RecoveringInterval).
		Msg("unshelve requested")

	m.publish(events.EventUnshelveSent, "unshelve requested", map[string]string{
		"server": srv.Name,
		"action": string(types.ActionUnshelve),
	})
	return m.cfg.RecoveringInterval
}

// publish emits an event when a broker is attached. Delivery is lossy by
// design; the cycle never waits for listeners.
func (m *Monitor) publish(eventType events.EventType, message string, metadata map[string]string) {
	if m.broker == nil {
		return
	}
	m.broker.Publish(events.New(eventType, message, metadata))
}
