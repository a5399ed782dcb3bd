package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mcoot/kmnx-league/internal/logging"
	"github.com/mcoot/kmnx-league/internal/services/classifier"
	"github.com/mcoot/kmnx-league/internal/storage/file"
)

// DefaultPath is the config file read when --config is not given
const DefaultPath = "kmnx.yaml"

// Store types
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Environment variables, applied over the config file
const (
	EnvData          = "KMNX_DATA"
	EnvStore         = "KMNX_STORE"
	EnvStateFile     = "KMNX_STATE_FILE"
	EnvRedisURL      = "KMNX_REDIS_URL"
	EnvTimezone      = "KMNX_TIMEZONE"
	EnvMatchDuration = "KMNX_MATCH_DURATION"
	EnvLogLevel      = "KMNX_LOG_LEVEL"
	EnvLogFormat     = "KMNX_LOG_FORMAT"
	EnvWatchInterval = "KMNX_WATCH_INTERVAL"
)

type StoreConfig struct {
	Type      string        `yaml:"type"`
	StateFile string        `yaml:"state_file"`
	RedisURL  string        `yaml:"redis_url"`
	RedisTTL  time.Duration `yaml:"redis_ttl"`
}

type LeagueConfig struct {
	// Timezone is an IANA name (Europe/Berlin) or a fixed offset (+02:00)
	Timezone      string        `yaml:"timezone"`
	MatchDuration time.Duration `yaml:"match_duration"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type WatchConfig struct {
	Interval time.Duration `yaml:"interval"`
}

type Config struct {
	// Data is a data.json path or URL; the embedded sample league is used
	// when it cannot be read
	Data   string       `yaml:"data"`
	Store  StoreConfig  `yaml:"store"`
	League LeagueConfig `yaml:"league"`
	Log    LogConfig    `yaml:"log"`
	Watch  WatchConfig  `yaml:"watch"`
}

// Default returns the configuration used when nothing else is set
func Default() *Config {
	return &Config{
		Data: "data.json",
		Store: StoreConfig{
			Type:      StoreFile,
			StateFile: file.DefaultPath(),
			RedisURL:  "redis://localhost:6379",
		},
		League: LeagueConfig{
			Timezone:      "+02:00",
			MatchDuration: classifier.DefaultDuration,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: logging.FormatConsole,
		},
		Watch: WatchConfig{
			Interval: 10 * time.Second,
		},
	}
}

// Load layers defaults, the YAML file at path, a .env file beside it and
// KMNX_* environment variables. A missing file is only an error when
// required is set. The result is not validated so callers can apply their
// own overrides first; call Validate before use.
func Load(path string, required bool) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("error parsing config file: %w", err)
			}
		case errors.Is(err, fs.ErrNotExist) && !required:
		default:
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Load .env file if it exists
	envPath := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Data, EnvData)
	setString(&c.Store.Type, EnvStore)
	setString(&c.Store.StateFile, EnvStateFile)
	setString(&c.Store.RedisURL, EnvRedisURL)
	setString(&c.League.Timezone, EnvTimezone)
	setString(&c.Log.Level, EnvLogLevel)
	setString(&c.Log.Format, EnvLogFormat)

	if err := setDuration(&c.League.MatchDuration, EnvMatchDuration); err != nil {
		return err
	}
	return setDuration(&c.Watch.Interval, EnvWatchInterval)
}

func setString(dst *string, key string) {
	if val := os.Getenv(key); val != "" {
		*dst = val
	}
}

func setDuration(dst *time.Duration, key string) error {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = d
	return nil
}

// Validate checks the configuration is usable
func (c *Config) Validate() error {
	switch c.Store.Type {
	case StoreMemory:
	case StoreFile:
		if c.Store.StateFile == "" {
			return fmt.Errorf("state file is required for the file store")
		}
	case StoreRedis:
		if c.Store.RedisURL == "" {
			return fmt.Errorf("redis url is required for the redis store")
		}
	default:
		return fmt.Errorf("unsupported store type: %s", c.Store.Type)
	}

	if c.League.MatchDuration <= 0 {
		return fmt.Errorf("match duration must be positive")
	}
	if c.Watch.Interval <= 0 {
		return fmt.Errorf("watch interval must be positive")
	}
	if _, err := ParseLocation(c.League.Timezone); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if !logging.ValidFormat(c.Log.Format) {
		return fmt.Errorf("unsupported log format: %s", c.Log.Format)
	}
	return nil
}

// Location resolves the league timezone
func (c *Config) Location() (*time.Location, error) {
	return ParseLocation(c.League.Timezone)
}

// Classifier returns the timing rules for the configured league
func (c *Config) Classifier() (classifier.Config, error) {
	loc, err := c.Location()
	if err != nil {
		return classifier.Config{}, err
	}
	return classifier.Config{
		Duration: c.League.MatchDuration,
		Location: loc,
	}, nil
}

var offsetPattern = regexp.MustCompile(`^([+-])(\d{2}):?(\d{2})$`)

// ParseLocation accepts an IANA zone name or a fixed offset such as
// "+02:00", "-0530" or "Z". Empty means the league's historical +02:00.
func ParseLocation(s string) (*time.Location, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return classifier.DefaultLocation, nil
	case "Z", "z":
		return time.UTC, nil
	}

	if m := offsetPattern.FindStringSubmatch(s); m != nil {
		hours, _ := strconv.Atoi(m[2])
		minutes, _ := strconv.Atoi(m[3])
		if hours > 14 || minutes > 59 {
			return nil, fmt.Errorf("invalid timezone offset %q", s)
		}
		offset := hours*3600 + minutes*60
		if m[1] == "-" {
			offset = -offset
		}
		return time.FixedZone("UTC"+m[1]+m[2]+":"+m[3], offset), nil
	}

	loc, err := time.LoadLocation(s)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", s, err)
	}
	return loc, nil
}
