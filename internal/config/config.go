package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines configuration for the gathermedata CLI.
type Config struct {
	// Path is the destination root. Empty means the platform default.
	Path string `yaml:"path"`

	// Parallel is the transfer concurrency bound.
	Parallel int `yaml:"parallel"`

	// Region is the AWS region of the corpora bucket.
	Region string `yaml:"region"`

	// HTTPTimeout is the per-request ceiling for archive fetches.
	HTTPTimeout time.Duration `yaml:"-"`

	// Retry defines the per-task attempt policy.
	Retry RetryConfig `yaml:"retry"`
}

// RetryConfig defines retry behavior for individual transfers.
type RetryConfig struct {
	// Attempts is the attempt ceiling per task.
	Attempts int `yaml:"attempts"`

	// Delay is the fixed pause between attempts.
	Delay time.Duration `yaml:"-"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Parallel:    4,
		Region:      "us-east-1",
		HTTPTimeout: 120 * time.Second,
		Retry: RetryConfig{
			Attempts: 3,
			Delay:    2 * time.Second,
		},
	}
}

// yamlConfig carries durations as strings for unmarshaling.
type yamlConfig struct {
	Path        string          `yaml:"path"`
	Parallel    int             `yaml:"parallel"`
	Region      string          `yaml:"region"`
	HTTPTimeout string          `yaml:"http_timeout"`
	Retry       yamlRetryConfig `yaml:"retry"`
}

type yamlRetryConfig struct {
	Attempts int    `yaml:"attempts"`
	Delay    string `yaml:"delay"`
}

// LoadFromFile loads configuration from a YAML file on top of defaults.
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	cfg := Default()

	if yc.Path != "" {
		cfg.Path = yc.Path
	}
	if yc.Parallel != 0 {
		cfg.Parallel = yc.Parallel
	}
	if yc.Region != "" {
		cfg.Region = yc.Region
	}
	if yc.HTTPTimeout != "" {
		d, err := time.ParseDuration(yc.HTTPTimeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse http_timeout: %w", err)
		}
		cfg.HTTPTimeout = d
	}
	if yc.Retry.Attempts != 0 {
		cfg.Retry.Attempts = yc.Retry.Attempts
	}
	if yc.Retry.Delay != "" {
		d, err := time.ParseDuration(yc.Retry.Delay)
		if err != nil {
			return Config{}, fmt.Errorf("parse retry.delay: %w", err)
		}
		cfg.Retry.Delay = d
	}

	return cfg, nil
}

// LoadFromEnv overrides configuration from environment variables.
// Environment variables use the GATHERMEDATA_ prefix.
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv("GATHERMEDATA_PATH"); v != "" {
		c.Path = v
	}
	if v := os.Getenv("GATHERMEDATA_PARALLEL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse GATHERMEDATA_PARALLEL: %w", err)
		}
		c.Parallel = n
	}
	if v := os.Getenv("GATHERMEDATA_REGION"); v != "" {
		c.Region = v
	}
	if v := os.Getenv("GATHERMEDATA_HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse GATHERMEDATA_HTTP_TIMEOUT: %w", err)
		}
		c.HTTPTimeout = d
	}
	if v := os.Getenv("GATHERMEDATA_RETRY_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse GATHERMEDATA_RETRY_ATTEMPTS: %w", err)
		}
		c.Retry.Attempts = n
	}
	if v := os.Getenv("GATHERMEDATA_RETRY_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse GATHERMEDATA_RETRY_DELAY: %w", err)
		}
		c.Retry.Delay = d
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Parallel <= 0 {
		return errors.New("config: parallel must be positive")
	}
	if c.Retry.Attempts <= 0 {
		return errors.New("config: retry attempts must be positive")
	}
	if c.HTTPTimeout <= 0 {
		return errors.New("config: http timeout must be positive")
	}
	return nil
}

// Merge merges override values into c, returning a new Config.
// Zero values in override are ignored.
func (c Config) Merge(override Config) Config {
	if override.Path != "" {
		c.Path = override.Path
	}
	if override.Parallel != 0 {
		c.Parallel = override.Parallel
	}
	if override.Region != "" {
		c.Region = override.Region
	}
	if override.HTTPTimeout != 0 {
		c.HTTPTimeout = override.HTTPTimeout
	}
	if override.Retry.Attempts != 0 {
		c.Retry.Attempts = override.Retry.Attempts
	}
	if override.Retry.Delay != 0 {
		c.Retry.Delay = override.Retry.Delay
	}
	return c
}

// DefaultRoot returns the platform-specific default download root.
func DefaultRoot() string {
	switch runtime.GOOS {
	case "darwin":
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, "Downloads")
		}
		return "."
	case "windows":
		return `S:\`
	default:
		return "/storage/nexus"
	}
}

// DestRoot resolves the destination root for a dataset subdirectory. An
// explicit path whose final element already names the dataset is used
// as-is; otherwise the dataset subdirectory is appended. This keeps the
// key-to-path mapping a pure function of the inputs.
func DestRoot(explicit, subdir string) string {
	if explicit == "" {
		return filepath.Join(DefaultRoot(), subdir)
	}
	if filepath.Base(filepath.Clean(explicit)) == subdir {
		return filepath.Clean(explicit)
	}
	return filepath.Join(explicit, subdir)
}
