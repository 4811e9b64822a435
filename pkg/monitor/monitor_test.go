package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratoworks/vigil/pkg/config"
	"github.com/stratoworks/vigil/pkg/events"
	"github.com/stratoworks/vigil/pkg/probe"
	"github.com/stratoworks/vigil/pkg/types"
)

type fakeProber struct {
	reachable bool
	target    string
	calls     int
}

func (f *fakeProber) Probe(ctx context.Context) probe.Result {
	f.calls++
	return probe.Result{
		Reachable: f.reachable,
		Target:    f.target,
		Message:   "fake probe",
		CheckedAt: time.Now(),
		Duration:  time.Millisecond,
	}
}

func (f *fakeProber) Type() probe.Type { return probe.TypeICMP }
func (f *fakeProber) Target() string   { return f.target }

type fakeCloud struct {
	server      *types.Server
	getErr      error
	unshelveErr error

	getCalls      int
	unshelveCalls int
	unshelvedIDs  []string
}

func (f *fakeCloud) GetServer(ctx context.Context, identifier string) (*types.Server, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.server, nil
}

func (f *fakeCloud) Unshelve(ctx context.Context, id string) error {
	f.unshelveCalls++
	f.unshelvedIDs = append(f.unshelvedIDs, id)
	return f.unshelveErr
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.ServerIdentifier = "sentinel-vm"
	cfg.PingTarget = "203.0.113.7"
	return cfg
}

func shelvedServer() *types.Server {
	return &types.Server{
		ID:     "9e5476bd-a4ec-4653-93d6-72c93aa682ba",
		Name:   "sentinel-vm",
		Status: types.StatusShelvedOffloaded,
	}
}

// TestRunCycleTargetReachable tests that a successful probe ends the cycle
// without any compute API traffic
func TestRunCycleTargetReachable(t *testing.T) {
	fp := &fakeProber{reachable: true, target: "203.0.113.7"}
	fc := &fakeCloud{server: shelvedServer()}
	cfg := testConfig()

	m := New(fc, fp, cfg, nil)

	next := m.RunCycle(context.Background())

	assert.Equal(t, cfg.PollInterval, next)
	assert.Equal(t, 1, fp.calls)
	assert.Equal(t, 0, fc.getCalls, "reachable target must not trigger a lookup")
	assert.Equal(t, 0, fc.unshelveCalls)
}

// TestRunCycleShelvedServerUnshelved tests the recovery path: unreachable
// target, shelved server, accepted unshelve
func TestRunCycleShelvedServerUnshelved(t *testing.T) {
	fp := &fakeProber{reachable: false, target: "203.0.113.7"}
	fc := &fakeCloud{server: shelvedServer()}
	cfg := testConfig()

	m := New(fc, fp, cfg, nil)

	next := m.RunCycle(context.Background())

	assert.Equal(t, cfg.RecoveringInterval, next)
	assert.Equal(t, 1, fc.getCalls)
	require.Equal(t, 1, fc.unshelveCalls)

	// Unshelve targets the resolved server ID, not the configured identifier
	assert.Equal(t, shelvedServer().ID, fc.unshelvedIDs[0])
}

// TestRunCycleActiveServerLeftAlone tests that an unreachable but ACTIVE
// server is never unshelved
func TestRunCycleActiveServerLeftAlone(t *testing.T) {
	fp := &fakeProber{reachable: false, target: "203.0.113.7"}
	fc := &fakeCloud{server: &types.Server{
		ID:     "abc",
		Name:   "sentinel-vm",
		Status: types.StatusActive,
	}}
	cfg := testConfig()

	m := New(fc, fp, cfg, nil)

	next := m.RunCycle(context.Background())

	assert.Equal(t, cfg.PollInterval, next)
	assert.Equal(t, 1, fc.getCalls)
	assert.Equal(t, 0, fc.unshelveCalls)
}

// TestRunCycleLookupFailure tests that a failed lookup keeps the normal
// cadence and triggers no action
func TestRunCycleLookupFailure(t *testing.T) {
	fp := &fakeProber{reachable: false, target: "203.0.113.7"}
	fc := &fakeCloud{getErr: errors.New("keystone down")}
	cfg := testConfig()

	m := New(fc, fp, cfg, nil)

	next := m.RunCycle(context.Background())

	assert.Equal(t, cfg.PollInterval, next)
	assert.Equal(t, 1, fc.getCalls)
	assert.Equal(t, 0, fc.unshelveCalls, "no information must mean no action")
}

// TestRunCycleUnshelveRejected tests that a rejected unshelve keeps the
// normal cadence and is not retried within the cycle
func TestRunCycleUnshelveRejected(t *testing.T) {
	fp := &fakeProber{reachable: false, target: "203.0.113.7"}
	fc := &fakeCloud{
		server:      shelvedServer(),
		unshelveErr: errors.New("quota exceeded"),
	}
	cfg := testConfig()

	m := New(fc, fp, cfg, nil)

	next := m.RunCycle(context.Background())

	assert.Equal(t, cfg.PollInterval, next)
	assert.Equal(t, 1, fc.unshelveCalls, "one attempt per cycle, the next cycle is the retry")
}

// TestRunCycleStatusDecision tests the status comparison across the Nova
// vocabulary, unknown values, and case variants
func TestRunCycleStatusDecision(t *testing.T) {
	tests := []struct {
		name         string
		status       types.ServerStatus
		wantUnshelve bool
	}{
		{
			name:         "shelved offloaded triggers unshelve",
			status:       types.StatusShelvedOffloaded,
			wantUnshelve: true,
		},
		{
			name:         "plain shelved is left alone",
			status:       types.StatusShelved,
			wantUnshelve: false,
		},
		{
			name:         "error status is left alone",
			status:       types.StatusError,
			wantUnshelve: false,
		},
		{
			name:         "shutoff is left alone",
			status:       types.StatusShutoff,
			wantUnshelve: false,
		},
		{
			name:         "unknown status is inert",
			status:       types.ServerStatus("ZOMBIE"),
			wantUnshelve: false,
		},
		{
			name:         "lowercase variant does not match",
			status:       types.ServerStatus("shelved_offloaded"),
			wantUnshelve: false,
		},
		{
			name:         "whitespace variant does not match",
			status:       types.ServerStatus("SHELVED_OFFLOADED "),
			wantUnshelve: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp := &fakeProber{reachable: false, target: "203.0.113.7"}
			fc := &fakeCloud{server: &types.Server{
				ID:     "abc",
				Name:   "sentinel-vm",
				Status: tt.status,
			}}
			cfg := testConfig()

			m := New(fc, fp, cfg, nil)

			next := m.RunCycle(context.Background())

			if tt.wantUnshelve {
				assert.Equal(t, 1, fc.unshelveCalls)
				assert.Equal(t, cfg.RecoveringInterval, next)
			} else {
				assert.Equal(t, 0, fc.unshelveCalls)
				assert.Equal(t, cfg.PollInterval, next)
			}
		})
	}
}

// TestRunCycleRecoveringLastsOneSleep tests that the tightened cadence
// applies to exactly one sleep and every cycle decides fresh
func TestRunCycleRecoveringLastsOneSleep(t *testing.T) {
	fp := &fakeProber{reachable: false, target: "203.0.113.7"}
	fc := &fakeCloud{server: shelvedServer()}
	cfg := testConfig()

	m := New(fc, fp, cfg, nil)

	// Cycle 1: shelved, unshelve accepted, cadence tightens
	next := m.RunCycle(context.Background())
	assert.Equal(t, cfg.RecoveringInterval, next)

	// Cycle 2: server is booting (ACTIVE, still unreachable); cadence is
	// already back to normal
	fc.server = &types.Server{ID: "abc", Name: "sentinel-vm", Status: types.StatusActive}
	next = m.RunCycle(context.Background())
	assert.Equal(t, cfg.PollInterval, next)

	// Cycle 3: target answers again; no API traffic at all
	fp.reachable = true
	getCalls := fc.getCalls
	next = m.RunCycle(context.Background())
	assert.Equal(t, cfg.PollInterval, next)
	assert.Equal(t, getCalls, fc.getCalls)
}

// TestRunCycleLoopSurvivesRepeatedErrors tests that consecutive failing
// cycles neither escalate nor terminate anything
func TestRunCycleLoopSurvivesRepeatedErrors(t *testing.T) {
	fp := &fakeProber{reachable: false, target: "203.0.113.7"}
	fc := &fakeCloud{getErr: errors.New("compute API unreachable")}
	cfg := testConfig()

	m := New(fc, fp, cfg, nil)

	for i := 0; i < 5; i++ {
		next := m.RunCycle(context.Background())
		assert.Equal(t, cfg.PollInterval, next)
	}

	assert.Equal(t, 5, fc.getCalls)
	assert.Equal(t, 0, fc.unshelveCalls)
}

// TestRunCycleEventSequence tests the event stream emitted by a full
// recovery cycle
func TestRunCycleEventSequence(t *testing.T) {
	fp := &fakeProber{reachable: false, target: "203.0.113.7"}
	fc := &fakeCloud{server: shelvedServer()}
	cfg := testConfig()

	broker := events.NewBroker()
	broker.Start()
	defer broker.Stop()
	sub := broker.Subscribe()

	m := New(fc, fp, cfg, broker)
	m.RunCycle(context.Background())

	got := collectEventTypes(t, sub, 3)
	assert.Equal(t, []events.EventType{
		events.EventProbeFailed,
		events.EventStatusFetched,
		events.EventUnshelveSent,
	}, got)
}

// TestMonitorStartStop tests the loop driver: immediate first cycle, park
// on the chosen interval, clean stop
func TestMonitorStartStop(t *testing.T) {
	fp := &fakeProber{reachable: true, target: "203.0.113.7"}
	fc := &fakeCloud{}
	cfg := testConfig()
	cfg.PollInterval = time.Hour // park the loop after the first cycle

	broker := events.NewBroker()
	broker.Start()
	defer broker.Stop()
	sub := broker.Subscribe()

	m := New(fc, fp, cfg, broker)
	m.Start()

	got := collectEventTypes(t, sub, 2)
	assert.Equal(t, events.EventMonitorStarted, got[0])
	assert.Equal(t, events.EventProbeSucceeded, got[1])

	m.Stop()

	// Stop waited for the loop to exit, so the fakes are quiet now
	assert.Equal(t, 1, fp.calls, "only the immediate first cycle should have run")
	assert.Equal(t, 0, fc.getCalls)

	got = collectEventTypes(t, sub, 1)
	assert.Equal(t, events.EventMonitorStopped, got[0])
}

func collectEventTypes(t *testing.T, sub events.Subscriber, n int) []events.EventType {
	t.Helper()

	out := make([]events.EventType, 0, n)
	timeout := time.After(2 * time.Second)
	for len(out) < n {
		select {
		case ev := <-sub:
			out = append(out, ev.Type)
		case <-timeout:
			t.Fatalf("timed out waiting for events, got %v", out)
		}
	}
	return out
}
