package types

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Server is a point-in-time snapshot of a compute instance as reported by the
// cloud control plane. A snapshot is immutable once fetched and is superseded
// by a fresh fetch on the next reconciliation cycle; it is never cached across
// cycles.
type Server struct {
	ID         string
	Name       string
	Status     ServerStatus
	PowerState PowerState
	Addresses  map[string][]Address // network name -> attached addresses
	Created    time.Time
	Updated    time.Time
}

// Address is a single IP attached to a server on one network.
type Address struct {
	IP   string
	Type string // "fixed" or "floating"; empty when the cloud omits it
}

// AddressLines flattens the per-network address map into display strings,
// one line per network:
//
//	[private] 10.0.0.12 - fixed, 203.0.113.7 - floating
func (s *Server) AddressLines() []string {
	networks := make([]string, 0, len(s.Addresses))
	for network := range s.Addresses {
		networks = append(networks, network)
	}
	sort.Strings(networks)

	lines := make([]string, 0, len(networks))
	for _, network := range networks {
		addrs := s.Addresses[network]
		parts := make([]string, 0, len(addrs))
		for _, addr := range addrs {
			addrType := addr.Type
			if addrType == "" {
				addrType = "none"
			}
			parts = append(parts, fmt.Sprintf("%s - %s", addr.IP, addrType))
		}
		lines = append(lines, fmt.Sprintf("[%s] %s", network, strings.Join(parts, ", ")))
	}
	return lines
}

// ServerStatus is the lifecycle status string reported by the compute API.
//
// The constants below cover the documented Nova statuses. Values read from the
// API that match none of them are carried through verbatim: they compare equal
// to no constant, so decision logic that matches on an explicit status treats
// them as "no action". Comparison is exact and case-sensitive.
type ServerStatus string

const (
	StatusActive           ServerStatus = "ACTIVE"
	StatusBuild            ServerStatus = "BUILD"
	StatusDeleted          ServerStatus = "DELETED"
	StatusError            ServerStatus = "ERROR"
	StatusHardReboot       ServerStatus = "HARD_REBOOT"
	StatusMigrating        ServerStatus = "MIGRATING"
	StatusPaused           ServerStatus = "PAUSED"
	StatusReboot           ServerStatus = "REBOOT"
	StatusRebuild          ServerStatus = "REBUILD"
	StatusRescue           ServerStatus = "RESCUE"
	StatusResize           ServerStatus = "RESIZE"
	StatusRevertResize     ServerStatus = "REVERT_RESIZE"
	StatusShelved          ServerStatus = "SHELVED"
	StatusShelvedOffloaded ServerStatus = "SHELVED_OFFLOADED"
	StatusShutoff          ServerStatus = "SHUTOFF"
	StatusSoftDeleted      ServerStatus = "SOFT_DELETED"
	StatusSuspended        ServerStatus = "SUSPENDED"
	StatusUnknown          ServerStatus = "UNKNOWN"
	StatusVerifyResize     ServerStatus = "VERIFY_RESIZE"
)

// knownStatuses is the closed set of statuses vigil recognizes.
var knownStatuses = map[ServerStatus]struct{}{
	StatusActive: {}, StatusBuild: {}, StatusDeleted: {}, StatusError: {},
	StatusHardReboot: {}, StatusMigrating: {}, StatusPaused: {}, StatusReboot: {},
	StatusRebuild: {}, StatusRescue: {}, StatusResize: {}, StatusRevertResize: {},
	StatusShelved: {}, StatusShelvedOffloaded: {}, StatusShutoff: {},
	StatusSoftDeleted: {}, StatusSuspended: {}, StatusUnknown: {},
	StatusVerifyResize: {},
}

// Known reports whether s is one of the documented statuses. Unknown values
// are valid to carry and display; they just never trigger an action.
func (s ServerStatus) Known() bool {
	_, ok := knownStatuses[s]
	return ok
}

// Action is a server lifecycle action vigil can request from the compute API.
type Action string

const (
	// ActionUnshelve asks the cloud to reallocate resources for a shelved
	// server and boot it. It is the only mutating action vigil ever issues.
	ActionUnshelve Action = "unshelve"
)

// PowerState mirrors the compute API's OS-EXT-STS:power_state integer.
type PowerState int

const (
	PowerNoState   PowerState = 0
	PowerRunning   PowerState = 1
	PowerPaused    PowerState = 3
	PowerShutdown  PowerState = 4
	PowerCrashed   PowerState = 6
	PowerSuspended PowerState = 7
)

// String returns the conventional upper-case name for the power state.
func (p PowerState) String() string {
	switch p {
	case PowerNoState:
		return "NOSTATE"
	case PowerRunning:
		return "RUNNING"
	case PowerPaused:
		return "PAUSED"
	case PowerShutdown:
		return "SHUTDOWN"
	case PowerCrashed:
		return "CRASHED"
	case PowerSuspended:
		return "SUSPENDED"
	default:
		return fmt.Sprintf("POWER_STATE(%d)", int(p))
	}
}
