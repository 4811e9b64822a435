/*
Package config loads and validates vigil's runtime configuration.

Configuration is read once at startup and immutable afterwards. Sources are
merged in fixed precedence, lowest first:

 1. Built-in defaults (Default)
 2. Optional YAML config file (--config)
 3. Environment variables, including those exported from a dotenv file
 4. Command-line flags, applied by cmd/vigil after Load returns

# Environment Variables

The variable names are those of the original monitor, so an existing .env
keeps working unchanged:

	SERVER_NAME              instance ID or name to manage
	PING_IP                  probe target address
	PING_INTERVAL_MINUTES    normal cadence in whole minutes (default 5)
	PING_TIMEOUT_SECONDS     probe timeout in whole seconds (default 3)

OpenStack credentials (OS_AUTH_URL, OS_USERNAME, ...) are not parsed here;
they are read by the cloud client through gophercloud's own env handling.
LoadEnvFile only exports the dotenv file into the process environment first:
best-effort for the default .env, fatal for an explicitly requested file.
Variables already present in the environment always win over dotenv values.

# YAML File

	server: bastion-1
	ping:
	  target: 203.0.113.7
	  interval: 5m
	  timeout: 3s
	probe:
	  kind: icmp      # icmp | tcp
	  socket: dgram   # raw | dgram
	ops:
	  listen: ":9090" # enables /metrics, /health, /ready

Durations in the file use Go syntax; the env variables keep the original
whole-minute/whole-second units.

# Fixed Values

RecoveringInterval is pinned to one minute by Default and has no env or file
binding. It applies to exactly one sleep after a successful unshelve.

# Validation

ValidateMonitor gates the monitor command: missing identifier or ping target,
non-positive durations, or unknown probe/socket selections are startup-fatal
configuration errors. Inspection commands (server list/info/unshelve) do not
require a complete monitor configuration.
*/
package config
