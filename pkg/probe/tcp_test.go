package probe

import (
	"context"
	"net"
	"testing"
	"time"
)

func TestTCPProber_ReachableTarget(t *testing.T) {
	// Listen on an ephemeral port
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	defer ln.Close()

	prober := NewTCPProber(ln.Addr().String())

	result := prober.Probe(context.Background())

	if !result.Reachable {
		t.Errorf("Expected reachable, got unreachable: %s", result.Message)
	}

	if result.Target != ln.Addr().String() {
		t.Errorf("Expected target %s, got %s", ln.Addr().String(), result.Target)
	}

	if result.Duration <= 0 {
		t.Error("Expected positive duration")
	}
}

func TestTCPProber_UnreachableTarget(t *testing.T) {
	// Grab an ephemeral port, then close it so nothing is listening
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	prober := NewTCPProber(addr).WithTimeout(500 * time.Millisecond)

	result := prober.Probe(context.Background())

	if result.Reachable {
		t.Errorf("Expected unreachable, got reachable: %s", result.Message)
	}

	if result.Message == "" {
		t.Error("Expected a failure message")
	}
}

func TestTCPProber_ContextCancellation(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	defer ln.Close()

	prober := NewTCPProber(ln.Addr().String())

	// Cancel context before probing
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := prober.Probe(ctx)

	if result.Reachable {
		t.Errorf("Expected unreachable with cancelled context, got reachable: %s", result.Message)
	}
}

func TestTCPProber_Type(t *testing.T) {
	prober := NewTCPProber("192.0.2.1:22")
	if prober.Type() != TypeTCP {
		t.Errorf("Expected type %s, got %s", TypeTCP, prober.Type())
	}
}

func TestTCPProber_WithTimeout(t *testing.T) {
	prober := NewTCPProber("192.0.2.1:22").WithTimeout(250 * time.Millisecond)
	if prober.Timeout != 250*time.Millisecond {
		t.Errorf("Expected timeout 250ms, got %v", prober.Timeout)
	}
}
