package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/stratoworks/vigil/pkg/cloud"
	"github.com/stratoworks/vigil/pkg/config"
	"github.com/stratoworks/vigil/pkg/types"
)

// Server commands
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Inspect and manage servers",
}

var serverListCmd = &cobra.Command{
	Use:   "list",
	Short: "List servers visible to the configured project",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		client, err := cloud.New(ctx)
		if err != nil {
			return fmt.Errorf("failed to connect to cloud: %w", err)
		}

		list, err := client.ListServers(ctx)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tID\tSTATUS\tPOWER")
		for i := range list {
			srv := &list[i]
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", srv.Name, srv.ID, srv.Status, srv.PowerState)
		}
		w.Flush()

		fmt.Printf("\nTotal: %d server(s)\n", len(list))
		return nil
	},
}

var serverInfoCmd = &cobra.Command{
	Use:   "info [SERVER]",
	Short: "Show details for one server",
	Long: `Show details for one server, looked up by ID or name.

Without an argument the configured server is shown (SERVER_NAME or the
server key in the config file).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		identifier, err := resolveIdentifier(args)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		client, err := cloud.New(ctx)
		if err != nil {
			return fmt.Errorf("failed to connect to cloud: %w", err)
		}

		srv, err := client.GetServer(ctx, identifier)
		if err != nil {
			return err
		}

		fmt.Printf("Server: %s\n", srv.Name)
		fmt.Printf("  ID:      %s\n", srv.ID)
		fmt.Printf("  Status:  %s %s\n", statusGlyph(srv.Status), srv.Status)
		fmt.Printf("  Power:   %s\n", srv.PowerState)
		fmt.Printf("  Created: %s\n", srv.Created.Format(time.RFC3339))
		fmt.Printf("  Updated: %s\n", srv.Updated.Format(time.RFC3339))
		for _, line := range srv.AddressLines() {
			fmt.Printf("  Address: %s\n", line)
		}
		return nil
	},
}

var serverUnshelveCmd = &cobra.Command{
	Use:   "unshelve [SERVER]",
	Short: "Restore a shelved server",
	Long: `Request restoration of a shelved server and return immediately.

Without an argument the configured server is unshelved (SERVER_NAME or the
server key in the config file). The command refuses servers that are not
shelved; use 'vigil server info' to check first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		identifier, err := resolveIdentifier(args)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		client, err := cloud.New(ctx)
		if err != nil {
			return fmt.Errorf("failed to connect to cloud: %w", err)
		}

		srv, err := client.GetServer(ctx, identifier)
		if err != nil {
			return err
		}

		// The monitor only ever acts on SHELVED_OFFLOADED; the operator may
		// also unshelve a server whose disk is still on the host.
		if srv.Status != types.StatusShelvedOffloaded && srv.Status != types.StatusShelved {
			return fmt.Errorf("server %s is %s, not shelved", srv.Name, srv.Status)
		}

		fmt.Printf("Unshelving server %s (%s)...\n", srv.Name, srv.ID)
		if err := client.Unshelve(ctx, srv.ID); err != nil {
			return err
		}

		fmt.Println("✓ Unshelve requested")
		return nil
	},
}

func init() {
	serverCmd.AddCommand(serverListCmd)
	serverCmd.AddCommand(serverInfoCmd)
	serverCmd.AddCommand(serverUnshelveCmd)

	rootCmd.AddCommand(serverCmd)
}

// statusGlyph marks the one status in which the server is actually serving.
func statusGlyph(s types.ServerStatus) string {
	if s == types.StatusActive {
		return "✓"
	}
	return "✗"
}

// resolveIdentifier picks the server to act on: the positional argument when
// given, the configured identifier otherwise.
func resolveIdentifier(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return "", err
	}
	if cfg.ServerIdentifier == "" {
		return "", fmt.Errorf("no server given: pass one as an argument or set %s", config.EnvServerName)
	}
	return cfg.ServerIdentifier, nil
}
