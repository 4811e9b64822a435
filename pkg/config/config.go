package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variable names, kept compatible with the original monitor so an
// existing .env keeps working.
const (
	EnvServerName         = "SERVER_NAME"
	EnvPingTarget         = "PING_IP"
	EnvPollMinutes        = "PING_INTERVAL_MINUTES"
	EnvPingTimeoutSeconds = "PING_TIMEOUT_SECONDS"
)

// Defaults. RecoveringInterval is fixed: it is the shortened cadence used for
// exactly one sleep after a successful unshelve and is deliberately not
// configurable through env or file.
const (
	DefaultEnvFile            = ".env"
	DefaultPollInterval       = 5 * time.Minute
	DefaultRecoveringInterval = 1 * time.Minute
	DefaultPingTimeout        = 3 * time.Second
	DefaultProbeKind          = "icmp"
	DefaultSocketMode         = "dgram"
)

// Config is the monitor's immutable runtime configuration. It is assembled
// once at startup (defaults, then YAML file, then environment, then flags)
// and never mutated afterwards.
type Config struct {
	// ServerIdentifier is the instance to manage: an exact ID or name, with
	// substring match against the listing as a fallback.
	ServerIdentifier string

	// PingTarget is the address the liveness probe checks. Required for the
	// monitor command only.
	PingTarget string

	// PollInterval is the cadence between cycles while the instance is
	// considered healthy or requires no action.
	PollInterval time.Duration

	// RecoveringInterval is the shortened cadence used for the single sleep
	// after an unshelve was accepted, so the ACTIVE transition is observed
	// promptly.
	RecoveringInterval time.Duration

	// PingTimeout bounds one probe attempt.
	PingTimeout time.Duration

	// ProbeKind selects the probe implementation: "icmp" or "tcp".
	ProbeKind string

	// SocketMode selects the ICMP socket type: "raw" (requires root) or
	// "dgram" (unprivileged).
	SocketMode string

	// OpsAddr, when non-empty, enables the operational HTTP listener
	// serving /metrics, /health and /ready.
	OpsAddr string
}

// File is the optional YAML configuration file schema.
type File struct {
	Server string `yaml:"server,omitempty"`
	Ping   struct {
		Target   string `yaml:"target,omitempty"`
		Interval string `yaml:"interval,omitempty"` // Go duration, e.g. "5m"
		Timeout  string `yaml:"timeout,omitempty"`  // Go duration, e.g. "3s"
	} `yaml:"ping,omitempty"`
	Probe struct {
		Kind   string `yaml:"kind,omitempty"`   // icmp | tcp
		Socket string `yaml:"socket,omitempty"` // raw | dgram
	} `yaml:"probe,omitempty"`
	Ops struct {
		Listen string `yaml:"listen,omitempty"`
	} `yaml:"ops,omitempty"`
}

// Default returns a Config carrying only defaults.
func Default() *Config {
	return &Config{
		PollInterval:       DefaultPollInterval,
		RecoveringInterval: DefaultRecoveringInterval,
		PingTimeout:        DefaultPingTimeout,
		ProbeKind:          DefaultProbeKind,
		SocketMode:         DefaultSocketMode,
	}
}

// LoadEnvFile loads a dotenv file into the process environment. The default
// path is best-effort (a missing .env is not an error); an explicitly
// requested file must exist.
func LoadEnvFile(path string, explicit bool) error {
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load environment from file %s: %w", path, err)
	}
	return nil
}

// Load assembles the configuration: defaults, overlaid by the YAML file at
// filePath (if non-empty), overlaid by environment variables. Flag overrides
// are applied by the caller afterwards.
func Load(filePath string) (*Config, error) {
	cfg := Default()

	if filePath != "" {
		if err := cfg.applyFile(filePath); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if f.Server != "" {
		c.ServerIdentifier = f.Server
	}
	if f.Ping.Target != "" {
		c.PingTarget = f.Ping.Target
	}
	if f.Ping.Interval != "" {
		d, err := time.ParseDuration(f.Ping.Interval)
		if err != nil {
			return fmt.Errorf("config file: invalid ping.interval %q: %w", f.Ping.Interval, err)
		}
		c.PollInterval = d
	}
	if f.Ping.Timeout != "" {
		d, err := time.ParseDuration(f.Ping.Timeout)
		if err != nil {
			return fmt.Errorf("config file: invalid ping.timeout %q: %w", f.Ping.Timeout, err)
		}
		c.PingTimeout = d
	}
	if f.Probe.Kind != "" {
		c.ProbeKind = f.Probe.Kind
	}
	if f.Probe.Socket != "" {
		c.SocketMode = f.Probe.Socket
	}
	if f.Ops.Listen != "" {
		c.OpsAddr = f.Ops.Listen
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvServerName); v != "" {
		c.ServerIdentifier = v
	}
	if v := os.Getenv(EnvPingTarget); v != "" {
		c.PingTarget = v
	}
	if v := os.Getenv(EnvPollMinutes); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s must be a number, got %q", EnvPollMinutes, v)
		}
		c.PollInterval = time.Duration(minutes) * time.Minute
	}
	if v := os.Getenv(EnvPingTimeoutSeconds); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s must be a number, got %q", EnvPingTimeoutSeconds, v)
		}
		c.PingTimeout = time.Duration(seconds) * time.Second
	}
	return nil
}

// ValidateMonitor checks the fields the monitor command requires. Any error
// here is a startup-fatal configuration error.
func (c *Config) ValidateMonitor() error {
	if c.ServerIdentifier == "" {
		return fmt.Errorf("server identifier is required: set %s or the server key in the config file", EnvServerName)
	}
	if c.PingTarget == "" {
		return fmt.Errorf("ping target is required: set %s or ping.target in the config file", EnvPingTarget)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", c.PollInterval)
	}
	if c.RecoveringInterval <= 0 {
		return fmt.Errorf("recovering interval must be positive, got %s", c.RecoveringInterval)
	}
	if c.PingTimeout <= 0 {
		return fmt.Errorf("ping timeout must be positive, got %s", c.PingTimeout)
	}
	if c.ProbeKind != "icmp" && c.ProbeKind != "tcp" {
		return fmt.Errorf("invalid probe kind %q: allowed values are icmp, tcp", c.ProbeKind)
	}
	if c.SocketMode != "raw" && c.SocketMode != "dgram" {
		return fmt.Errorf("invalid socket mode %q: allowed values are raw, dgram", c.SocketMode)
	}
	return nil
}
