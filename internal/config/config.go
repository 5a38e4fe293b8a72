package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Input   string        `yaml:"input"`
	Output  string        `yaml:"output"`
	Loader  LoaderConfig  `yaml:"loader"`
	Include []string      `yaml:"include,omitempty"`
	Exclude []string      `yaml:"exclude,omitempty"`
	Nixdoc  NixdocConfig  `yaml:"nixdoc"`
	Index   IndexConfig   `yaml:"index"`
	Metrics MetricsConfig `yaml:"metrics"`
	History HistoryConfig `yaml:"history"`
	Events  EventsConfig  `yaml:"events"`
	Watch   WatchConfig   `yaml:"watch"`

	// Concurrency bounds the number of parallel nixdoc invocations.
	Concurrency int `yaml:"concurrency,omitempty"`
}

// LoaderStrategy selects how source paths map to documentation paths.
type LoaderStrategy string

const (
	StrategyAuto   LoaderStrategy = "auto"
	StrategyMapped LoaderStrategy = "mapped"
)

// LoaderConfig configures the path resolution strategy.
type LoaderConfig struct {
	Strategy   LoaderStrategy `yaml:"strategy,omitempty"`
	Extensions []string       `yaml:"extensions,omitempty"` // documentable source extensions, auto strategy
	Mappings   []MappingEntry `yaml:"mappings,omitempty"`   // explicit entries, mapped strategy
}

// MappingEntry is one explicit (source pattern -> destination) pair.
// Entries are order-sensitive; the first matching entry wins.
type MappingEntry struct {
	Source      string `yaml:"source"`
	Destination string `yaml:"destination"`
}

// NixdocConfig configures invocation of the external nixdoc tool.
type NixdocConfig struct {
	Binary       string `yaml:"binary,omitempty"`
	Prefix       string `yaml:"prefix,omitempty"`
	AnchorPrefix string `yaml:"anchor_prefix,omitempty"`
}

// IndexConfig gates generation of the aggregate index artifact.
type IndexConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path,omitempty"` // defaults to <output>/index.md
	Title   string `yaml:"title,omitempty"`
}

// MetricsConfig configures the Prometheus endpoint (watch mode only).
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen,omitempty"`
}

// HistoryConfig configures the SQLite run history store.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path,omitempty"`
}

// EventsConfig configures NATS run-summary publishing.
type EventsConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url,omitempty"`
	Subject string `yaml:"subject,omitempty"`
}

// WatchConfig configures watch-mode behavior.
type WatchConfig struct {
	Debounce string `yaml:"debounce,omitempty"` // duration string (default 2s)
	Interval string `yaml:"interval,omitempty"` // optional scheduled rebuild interval
}

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	// Load .env/.env.local if present; missing files are not an error.
	_ = godotenv.Load(".env", ".env.local")

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.ApplyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Default returns a configuration with defaults applied for the given
// input and output directories, without consulting a config file.
func Default(input, output string) *Config {
	cfg := &Config{Input: input, Output: output}
	cfg.ApplyDefaults()
	return cfg
}
