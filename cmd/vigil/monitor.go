package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/stratoworks/vigil/pkg/cloud"
	"github.com/stratoworks/vigil/pkg/config"
	"github.com/stratoworks/vigil/pkg/events"
	"github.com/stratoworks/vigil/pkg/metrics"
	"github.com/stratoworks/vigil/pkg/monitor"
	"github.com/stratoworks/vigil/pkg/probe"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Watch the configured server and unshelve it when needed",
	Long: `Run the reconciliation loop: probe the target, and when it stops
answering and the compute API reports the server SHELVED_OFFLOADED, request
an unshelve.

The loop runs until interrupted. A healthy target produces no compute API
traffic at all.`,
	RunE: runMonitor,
}

func init() {
	monitorCmd.Flags().String("probe", "", "probe kind: icmp or tcp (default from config)")
	monitorCmd.Flags().String("socket-mode", "", "ICMP socket mode: raw or dgram (default from config)")
	monitorCmd.Flags().String("ops-addr", "", "listen address for /metrics, /health and /ready (empty disables)")

	rootCmd.AddCommand(monitorCmd)
}

func runMonitor(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	// Flag overrides sit on top of file and environment
	if v, _ := cmd.Flags().GetString("probe"); v != "" {
		cfg.ProbeKind = v
	}
	if v, _ := cmd.Flags().GetString("socket-mode"); v != "" {
		cfg.SocketMode = v
	}
	if v, _ := cmd.Flags().GetString("ops-addr"); v != "" {
		cfg.OpsAddr = v
	}

	if err := cfg.ValidateMonitor(); err != nil {
		return err
	}
	if cfg.SocketMode == "raw" && os.Geteuid() != 0 {
		return fmt.Errorf("raw ICMP sockets require root, rerun with --socket-mode dgram")
	}

	ctx := cmd.Context()

	client, err := cloud.New(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to cloud: %w", err)
	}

	prober, err := probe.New(probe.Type(cfg.ProbeKind), cfg.PingTarget, cfg.PingTimeout, probe.SocketMode(cfg.SocketMode))
	if err != nil {
		return err
	}

	fmt.Printf("Watching server %q through %s probe of %s\n", cfg.ServerIdentifier, cfg.ProbeKind, cfg.PingTarget)
	fmt.Printf("  Poll interval: %s\n", cfg.PollInterval)
	fmt.Printf("  Probe timeout: %s\n", cfg.PingTimeout)
	fmt.Println()

	broker := events.NewBroker()
	broker.Start()

	sub := broker.Subscribe()
	go printEvents(sub)

	// Ops endpoints are optional; without a listen address the monitor is
	// observable through logs and events only.
	var ops *metrics.OpsServer
	errCh := make(chan error, 1)
	if cfg.OpsAddr != "" {
		ops = metrics.NewOpsServer(cfg.OpsAddr)
		go func() {
			if err := ops.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("ops server error: %w", err)
			}
		}()
		fmt.Printf("✓ Ops endpoints on http://%s/metrics\n", cfg.OpsAddr)
	}

	collector := metrics.NewCollector(0)
	collector.Start()

	m := monitor.New(client, prober, cfg, broker)
	m.Start()
	fmt.Println("✓ Monitor started")

	fmt.Println()
	fmt.Println("Monitor is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal or ops server error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		fmt.Println("\nShutting down...")
	case err := <-errCh:
		fmt.Fprintf(os.Stderr, "\nError: %v\n", err)
	}

	// Shutdown. The monitor goes first so its stop event still reaches the
	// broker.
	m.Stop()
	collector.Stop()
	if ops != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := ops.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintf(os.Stderr, "ops server shutdown: %v\n", err)
		}
	}
	broker.Stop()
	broker.Unsubscribe(sub)

	fmt.Println("✓ Shutdown complete")
	return nil
}

// printEvents renders monitor events as progress lines on stdout. Routine
// probe successes stay quiet so a healthy week prints nothing.
func printEvents(sub events.Subscriber) {
	for ev := range sub {
		switch ev.Type {
		case events.EventProbeFailed:
			fmt.Printf("✗ probe failed: %s\n", ev.Message)
		case events.EventLookupFailed:
			fmt.Printf("✗ server lookup failed: %s\n", ev.Message)
		case events.EventStatusFetched:
			fmt.Printf("  server %s is %s\n", ev.Metadata["server"], ev.Metadata["status"])
		case events.EventUnshelveSent:
			fmt.Printf("✓ unshelve requested for %s\n", ev.Metadata["server"])
		case events.EventUnshelveFailed:
			fmt.Printf("✗ unshelve failed: %s\n", ev.Message)
		case events.EventCadenceReduced:
			fmt.Printf("  rechecking in %s\n", ev.Metadata["interval"])
		}
	}
}
