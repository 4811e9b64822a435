package probe

import (
	"context"
	"fmt"
	"time"
)

// Type represents the kind of reachability probe
type Type string

const (
	TypeICMP Type = "icmp"
	TypeTCP  Type = "tcp"
)

// SocketMode selects how ICMP echo requests are sent
type SocketMode string

const (
	// SocketRaw uses raw ICMP sockets and requires root privileges
	SocketRaw SocketMode = "raw"

	// SocketDgram uses unprivileged UDP datagram sockets
	SocketDgram SocketMode = "dgram"
)

// Result represents the outcome of a reachability probe
type Result struct {
	Reachable bool
	Target    string
	Message   string
	CheckedAt time.Time
	Duration  time.Duration
}

// Prober is the interface that all reachability probers implement.
// A failed probe and an unreachable target are deliberately
// indistinguishable: both mean "do not trust the target is up".
type Prober interface {
	// Probe performs one reachability check and returns the result
	Probe(ctx context.Context) Result

	// Type returns the kind of probe
	Type() Type

	// Target returns the address the probe checks
	Target() string
}

// New creates a prober of the given kind for target
func New(kind Type, target string, timeout time.Duration, socket SocketMode) (Prober, error) {
	switch kind {
	case TypeICMP:
		return NewICMPProber(target).WithTimeout(timeout).WithSocket(socket), nil
	case TypeTCP:
		return NewTCPProber(target).WithTimeout(timeout), nil
	default:
		return nil, fmt.Errorf("unknown probe type: %q", kind)
	}
}
