package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/kmnx-league/internal/config"
	"github.com/mcoot/kmnx-league/internal/dependencies/clock"
)

// Config holds CLI flag values. Flags that are set override the config
// file and environment.
type Config struct {
	ConfigPath    string
	Data          string
	Store         string
	StateFile     string
	RedisURL      string
	Timezone      string
	MatchDuration time.Duration
	Now           string
	Output        string
	Verbose       bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ConfigPath: getEnvOrDefault("KMNX_CONFIG", config.DefaultPath),
		Now:        os.Getenv("KMNX_NOW"),
		Output:     getEnvOrDefault("KMNX_OUTPUT", FormatText),
		Verbose:    false,
	}
}

// Settings resolves the effective settings for cmd: defaults, then the
// config file, then environment, then any flags given on the command line
func (c *Config) Settings(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	// A missing config file is only an error if it was asked for
	required := flags.Changed("config") || os.Getenv("KMNX_CONFIG") != ""
	settings, err := config.Load(c.ConfigPath, required)
	if err != nil {
		return nil, err
	}

	if flags.Changed("data") {
		settings.Data = c.Data
	}
	if flags.Changed("store") {
		settings.Store.Type = c.Store
	}
	if flags.Changed("state-file") {
		settings.Store.StateFile = c.StateFile
	}
	if flags.Changed("redis-url") {
		settings.Store.RedisURL = c.RedisURL
	}
	if flags.Changed("timezone") {
		settings.League.Timezone = c.Timezone
	}
	if flags.Changed("match-duration") {
		settings.League.MatchDuration = c.MatchDuration
	}
	if c.Verbose {
		settings.Log.Level = "debug"
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return settings, nil
}

// Clock returns a clock pinned to --now, or nil for the system clock
func (c *Config) Clock() (clock.Clock, error) {
	if c.Now == "" {
		return nil, nil
	}
	at, err := time.Parse(time.RFC3339, c.Now)
	if err != nil {
		return nil, fmt.Errorf("invalid --now %q: expected RFC 3339, e.g. 2025-10-12T20:10:00+02:00", c.Now)
	}
	return clock.Func(func() time.Time { return at }), nil
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
