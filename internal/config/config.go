package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config drives one pipeline run. Every field has a default, so a run
// without a config file behaves sensibly against the public storefront.
type Config struct {
	Site   Site   `yaml:"site"`
	Fetch  Fetch  `yaml:"fetch"`
	AI     AI     `yaml:"ai"`
	Cache  Cache  `yaml:"cache"`
	Output Output `yaml:"output"`
}

type Site struct {
	// TitleTrimSuffix is removed from every page title before it becomes
	// an item title.
	TitleTrimSuffix string `yaml:"title_trim_suffix"`
}

type Fetch struct {
	UserAgent         string `yaml:"user_agent"`
	TimeoutSeconds    int    `yaml:"timeout_seconds"`
	PerHostIntervalMS int    `yaml:"per_host_interval_ms"`
	Burst             int    `yaml:"burst"`
	// DisableRobots skips the robots.txt gate. Off by default.
	DisableRobots bool `yaml:"disable_robots"`
}

type AI struct {
	// Provider is openai, mock, or empty for environment auto-detection.
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
}

type Cache struct {
	Dir string `yaml:"dir"`
}

type Output struct {
	Workbook string `yaml:"workbook"`
	SQLite   string `yaml:"sqlite"`
}

func (f Fetch) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

func (f Fetch) PerHostInterval() time.Duration {
	return time.Duration(f.PerHostIntervalMS) * time.Millisecond
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Site: Site{
			TitleTrimSuffix: " - Jardin du thé",
		},
		Fetch: Fetch{
			UserAgent:         "jardin-du-the-bot/1.0",
			TimeoutSeconds:    20,
			PerHostIntervalMS: 1000,
			Burst:             2,
		},
		Cache: Cache{
			Dir: ".",
		},
		Output: Output{
			Workbook: "jardin-du-the.xlsx",
		},
	}
}

// Load reads a YAML config file over the defaults, so a file only needs
// the keys it wants to change.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config failed: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config failed: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load, except an empty path yields the
// defaults instead of an error.
func LoadOrDefault(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

func (c Config) Validate() error {
	if c.Fetch.TimeoutSeconds <= 0 {
		return fmt.Errorf("fetch.timeout_seconds must be positive, got %d", c.Fetch.TimeoutSeconds)
	}
	if c.Fetch.PerHostIntervalMS < 0 {
		return fmt.Errorf("fetch.per_host_interval_ms must not be negative, got %d", c.Fetch.PerHostIntervalMS)
	}
	if c.Fetch.Burst <= 0 {
		return fmt.Errorf("fetch.burst must be positive, got %d", c.Fetch.Burst)
	}
	if c.Cache.Dir == "" {
		return fmt.Errorf("cache.dir must not be empty")
	}
	return nil
}
