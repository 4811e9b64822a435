package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stratoworks/vigil/pkg/config"
	"github.com/stratoworks/vigil/pkg/log"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var (
	flagEnvFile  string
	flagConfig   string
	flagLogLevel string
	flagLogJSON  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vigil",
	Short: "Vigil - keeps a cloud server off the shelf",
	Long: `Vigil watches a single cloud server through a network probe and brings
it back automatically when the cloud shelves it.

While the server answers, vigil does nothing. When the probe fails and the
compute API reports the server SHELVED_OFFLOADED, vigil requests an unshelve
and checks again a minute later.`,
	Version: Version,
}

func init() {
	// Assigned here rather than in the literal above so the closure's
	// reference to rootCmd does not form an initialization cycle.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		log.Init(log.Config{
			Level:      log.Level(flagLogLevel),
			JSONOutput: flagLogJSON,
		})

		// An --env-file given on the command line must exist; the default
		// .env is picked up only when present.
		explicit := rootCmd.PersistentFlags().Changed("env-file")
		return config.LoadEnvFile(flagEnvFile, explicit)
	}

	// Set version template
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"Vigil version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", config.DefaultEnvFile, "dotenv file with OS_* credentials and monitor settings")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&flagLogJSON, "log-json", false, "log as JSON instead of console lines")
}
