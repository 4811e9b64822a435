package probe

import (
	"context"
	"fmt"
	"net"
	"time"
)

// TCPProber checks reachability by completing a TCP handshake
type TCPProber struct {
	// Addr is the TCP address to connect to (e.g., "203.0.113.7:22")
	Addr string

	// Timeout is the connection timeout (default: 3 seconds)
	Timeout time.Duration
}

// NewTCPProber creates a new TCP prober
func NewTCPProber(addr string) *TCPProber {
	return &TCPProber{
		Addr:    addr,
		Timeout: 3 * time.Second,
	}
}

// Probe attempts to connect to the target address
func (p *TCPProber) Probe(ctx context.Context) Result {
	start := time.Now()

	dialer := &net.Dialer{
		Timeout: p.Timeout,
	}

	conn, err := dialer.DialContext(ctx, "tcp", p.Addr)
	if err != nil {
		return Result{
			Reachable: false,
			Target:    p.Addr,
			Message:   fmt.Sprintf("connection failed: %v", err),
			CheckedAt: start,
			Duration:  time.Since(start),
		}
	}
	defer conn.Close()

	return Result{
		Reachable: true,
		Target:    p.Addr,
		Message:   fmt.Sprintf("TCP connection to %s successful", p.Addr),
		CheckedAt: start,
		Duration:  time.Since(start),
	}
}

// Type returns the probe type
func (p *TCPProber) Type() Type {
	return TypeTCP
}

// Target returns the probed address
func (p *TCPProber) Target() string {
	return p.Addr
}

// WithTimeout sets the connection timeout
func (p *TCPProber) WithTimeout(timeout time.Duration) *TCPProber {
	p.Timeout = timeout
	return p
}
