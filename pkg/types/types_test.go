package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestServerStatusKnown tests the closed status set
func TestServerStatusKnown(t *testing.T) {
	tests := []struct {
		name   string
		status ServerStatus
		known  bool
	}{
		{"active", StatusActive, true},
		{"shelved offloaded", StatusShelvedOffloaded, true},
		{"error", StatusError, true},
		{"verify resize", StatusVerifyResize, true},
		{"unanticipated cloud status", ServerStatus("PENDING_RESCUE"), false},
		{"lowercase is a different value", ServerStatus("active"), false},
		{"empty", ServerStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.known, tt.status.Known())
		})
	}
}

// TestServerStatusExactMatch verifies that comparison stays case-sensitive:
// a lowercase or padded variant must never compare equal to a constant.
func TestServerStatusExactMatch(t *testing.T) {
	assert.NotEqual(t, StatusShelvedOffloaded, ServerStatus("shelved_offloaded"))
	assert.NotEqual(t, StatusShelvedOffloaded, ServerStatus("SHELVED_OFFLOADED "))
	assert.Equal(t, StatusShelvedOffloaded, ServerStatus("SHELVED_OFFLOADED"))
}

// TestPowerStateString tests power state rendering
func TestPowerStateString(t *testing.T) {
	tests := []struct {
		state PowerState
		want  string
	}{
		{PowerNoState, "NOSTATE"},
		{PowerRunning, "RUNNING"},
		{PowerPaused, "PAUSED"},
		{PowerShutdown, "SHUTDOWN"},
		{PowerCrashed, "CRASHED"},
		{PowerSuspended, "SUSPENDED"},
		{PowerState(42), "POWER_STATE(42)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.state.String())
	}
}

// TestAddressLines tests address flattening for display
func TestAddressLines(t *testing.T) {
	tests := []struct {
		name   string
		server Server
		want   []string
	}{
		{
			name: "single network with fixed and floating",
			server: Server{Addresses: map[string][]Address{
				"private": {
					{IP: "10.0.0.12", Type: "fixed"},
					{IP: "203.0.113.7", Type: "floating"},
				},
			}},
			want: []string{"[private] 10.0.0.12 - fixed, 203.0.113.7 - floating"},
		},
		{
			name: "networks sorted for stable output",
			server: Server{Addresses: map[string][]Address{
				"zone-b": {{IP: "192.0.2.4", Type: "fixed"}},
				"zone-a": {{IP: "192.0.2.5", Type: "fixed"}},
			}},
			want: []string{
				"[zone-a] 192.0.2.5 - fixed",
				"[zone-b] 192.0.2.4 - fixed",
			},
		},
		{
			name: "missing address type renders as none",
			server: Server{Addresses: map[string][]Address{
				"ext": {{IP: "198.51.100.2"}},
			}},
			want: []string{"[ext] 198.51.100.2 - none"},
		},
		{
			name:   "no addresses",
			server: Server{},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.server.AddressLines())
		})
	}
}
