/*
Package log provides structured logging for vigil using zerolog.

The log package wraps the zerolog library to provide JSON-structured logging
with component-specific loggers, configurable log levels, and helper functions
for common logging patterns. All logs include timestamps and support filtering
by severity level.

# Output Contract

vigil separates its two output streams:

  - stdout carries the CLI's own output (tables, per-cycle progress lines)
  - stderr carries structured diagnostics emitted through this package

Init therefore defaults Output to os.Stderr. Console format is the default so
an operator tailing the monitor sees readable lines; JSONOutput switches to
machine-parseable JSON for log shippers.

# Context Loggers

Child loggers attach the fields every recoverable error must carry so a
failure can be diagnosed without stopping the monitor:

	logger := log.WithServer(cfg.ServerIdentifier)
	logger.Error().Err(err).Str("op", "get server").Msg("lookup failed")

WithComponent tags subsystem loggers ("monitor", "cloud", "probe"),
WithServer tags the instance under management, WithTarget tags the probe
target address.

# Usage

	log.Init(log.Config{Level: log.InfoLevel})
	log.Info("starting monitor")

	monLog := log.WithComponent("monitor")
	monLog.Warn().Dur("interval", next).Msg("probe failed, cadence unchanged")
*/
package log
