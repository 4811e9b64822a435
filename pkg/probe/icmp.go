package probe

import (
	"context"
	"fmt"
	"time"

	probing "github.com/prometheus-community/pro-bing"
)

// ICMPProber checks reachability with a single ICMP echo request
type ICMPProber struct {
	// Addr is the hostname or IP address to ping
	Addr string

	// Timeout bounds the whole echo exchange (default: 3 seconds)
	Timeout time.Duration

	// Socket selects raw ICMP sockets (root only) or unprivileged
	// UDP datagram sockets
	Socket SocketMode
}

// NewICMPProber creates a new ICMP prober using unprivileged sockets
func NewICMPProber(addr string) *ICMPProber {
	return &ICMPProber{
		Addr:    addr,
		Timeout: 3 * time.Second,
		Socket:  SocketDgram,
	}
}

// Probe sends one echo request and waits for the reply
func (p *ICMPProber) Probe(ctx context.Context) Result {
	start := time.Now()

	pinger, err := probing.NewPinger(p.Addr)
	if err != nil {
		return Result{
			Reachable: false,
			Target:    p.Addr,
			Message:   fmt.Sprintf("pinger setup failed: %v", err),
			CheckedAt: start,
			Duration:  time.Since(start),
		}
	}

	pinger.Count = 1
	pinger.Timeout = p.Timeout
	pinger.SetPrivileged(p.Socket == SocketRaw)

	if err := pinger.RunWithContext(ctx); err != nil {
		return Result{
			Reachable: false,
			Target:    p.Addr,
			Message:   fmt.Sprintf("echo failed: %v", err),
			CheckedAt: start,
			Duration:  time.Since(start),
		}
	}

	stats := pinger.Statistics()
	if stats.PacketsRecv == 0 {
		return Result{
			Reachable: false,
			Target:    p.Addr,
			Message:   "no echo reply before timeout",
			CheckedAt: start,
			Duration:  time.Since(start),
		}
	}

	return Result{
		Reachable: true,
		Target:    p.Addr,
		Message:   fmt.Sprintf("echo reply from %s in %v", stats.Addr, stats.AvgRtt),
		CheckedAt: start,
		Duration:  time.Since(start),
	}
}

// Type returns the probe type
func (p *ICMPProber) Type() Type {
	return TypeICMP
}

// Target returns the probed address
func (p *ICMPProber) Target() string {
	return p.Addr
}

// WithTimeout sets the echo timeout
func (p *ICMPProber) WithTimeout(timeout time.Duration) *ICMPProber {
	p.Timeout = timeout
	return p
}

// WithSocket selects the ICMP socket mode
func (p *ICMPProber) WithSocket(mode SocketMode) *ICMPProber {
	p.Socket = mode
	return p
}
