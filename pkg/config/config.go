package config

import (
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// output formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatRSS  = "rss"
	FormatOPML = "opml"
)

// Formats lists supported output formats
var Formats = []string{FormatJSON, FormatYAML, FormatRSS, FormatOPML}

// Config holds the application configuration
type Config struct {
	Parse  ParseConfig  `yaml:"parse" json:"parse" jsonschema:"description=Atom mapping settings"`
	Fetch  FetchConfig  `yaml:"fetch" json:"fetch" jsonschema:"description=Source loading settings"`
	Output OutputConfig `yaml:"output" json:"output" jsonschema:"description=Output settings"`
}

// ParseConfig holds mapping mode settings
type ParseConfig struct {
	Strict       bool `yaml:"strict" json:"strict" jsonschema:"default=false,description=Fail on the first violation instead of skipping invalid values"`
	RelaxedDates bool `yaml:"relaxed_dates" json:"relaxed_dates" jsonschema:"default=false,description=Accept non RFC 3339 dates"`
}

// FetchConfig holds settings for reading sources
type FetchConfig struct {
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP request timeout"`
	UserAgent     string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=atomfeed/1.0,description=User agent for HTTP requests"`
	Retries       int           `yaml:"retries" json:"retries" jsonschema:"default=3,minimum=1,description=Attempts per URL"`
	MaxConcurrent int           `yaml:"max_concurrent" json:"max_concurrent" jsonschema:"default=4,minimum=1,description=Maximum sources loaded at once"`
	MaxSize       int64         `yaml:"max_size" json:"max_size" jsonschema:"default=10485760,minimum=-1,description=Document size limit in bytes. -1 for no limit"`
}

// OutputConfig holds output rendering settings
type OutputConfig struct {
	Format  string `yaml:"format" json:"format" jsonschema:"default=json,enum=json,enum=yaml,enum=rss,enum=opml,description=Output format"`
	Compact bool   `yaml:"compact" json:"compact" jsonschema:"default=false,description=Compact json output"`
	RawHTML bool   `yaml:"raw_html" json:"raw_html" jsonschema:"default=false,description=Keep html in rss descriptions without sanitizing"`
}

// Default returns the configuration used when no config file is given
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) setDefaults() {
	// set defaults for fetch
	if c.Fetch.Timeout == 0 {
		c.Fetch.Timeout = 30 * time.Second
	}
	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = "atomfeed/1.0"
	}
	if c.Fetch.Retries == 0 {
		c.Fetch.Retries = 3
	}
	if c.Fetch.MaxConcurrent == 0 {
		c.Fetch.MaxConcurrent = 4
	}
	if c.Fetch.MaxSize == 0 {
		c.Fetch.MaxSize = 10 * 1024 * 1024
	}

	// set defaults for output
	if c.Output.Format == "" {
		c.Output.Format = FormatJSON
	}
}

// SizeLimit returns the document size limit in bytes, 0 means no limit
func (f FetchConfig) SizeLimit() int64 {
	if f.MaxSize < 0 {
		return 0
	}
	return f.MaxSize
}

// Validate checks configuration for correctness, it is also called for CLI overrides
func (c *Config) Validate() error {
	if c.Fetch.Timeout < 100*time.Millisecond {
		return fmt.Errorf("fetch.timeout must be at least 100ms")
	}
	if c.Fetch.Retries < 1 {
		return fmt.Errorf("fetch.retries must be at least 1")
	}
	if c.Fetch.MaxConcurrent < 1 {
		return fmt.Errorf("fetch.max_concurrent must be at least 1")
	}
	if c.Fetch.MaxSize < -1 {
		return fmt.Errorf("fetch.max_size must be -1 (no limit) or non-negative")
	}
	if !slices.Contains(Formats, c.Output.Format) {
		return fmt.Errorf("output.format %q is not one of %v", c.Output.Format, Formats)
	}
	return nil
}
