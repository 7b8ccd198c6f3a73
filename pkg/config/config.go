// Package config provides configuration loading and management for unshredder.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Edge metrics
const (
	MetricEuclidean = "euclidean"
	MetricChecksum  = "checksum"
)

// Start-band strategies
const (
	StartInDegree = "indegree"
	StartLegacy   = "legacy"
)

// DefaultBandWidth is the band width used when neither a width nor a count is configured.
// It matches the strip width of the classic shredded panorama.
const DefaultBandWidth = 32

// ErrInvalidConfig is returned by Validate for unusable settings
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the application configuration loaded from YAML
type Config struct {
	// Processing parameters
	Processing struct {
		// NumCores specifies how many goroutines build the distance matrix
		NumCores int `yaml:"numCores"`

		// Bands is the number of bands the image was cut into (0 = derive from BandWidth)
		Bands int `yaml:"bands"`

		// BandWidth is the width of a single band in pixels (0 = derive from Bands)
		BandWidth int `yaml:"bandWidth"`

		// Metric selects the edge distance: euclidean or checksum
		Metric string `yaml:"metric"`

		// StartStrategy selects how the leftmost band is resolved: indegree or legacy
		StartStrategy string `yaml:"startStrategy"`

		// AllowTruncate accepts images whose width is not a multiple of the band width.
		// Remainder columns are left out of matching and copied through unchanged.
		AllowTruncate bool `yaml:"allowTruncate"`
	} `yaml:"processing"`

	// Output parameters
	Output struct {
		// File is the output image filename
		File string `yaml:"file"`

		// Format overrides the format derived from the file extension
		Format string `yaml:"format"`

		// SaveIntermediaryResults determines whether to save the matrix, bands and report
		SaveIntermediaryResults bool `yaml:"saveIntermediaryResults"`

		// IntermediaryDir is where intermediary results are written
		IntermediaryDir string `yaml:"intermediaryDir"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Processing.NumCores = runtime.NumCPU()
	cfg.Processing.Metric = MetricEuclidean
	cfg.Processing.StartStrategy = StartInDegree
	cfg.Processing.AllowTruncate = false

	cfg.Output.File = "unshredded.png"
	cfg.Output.SaveIntermediaryResults = false
	cfg.Output.IntermediaryDir = "intermediary_results"
	cfg.Output.Verbose = true

	return cfg
}

// Validate checks the settings that do not depend on the input image
func (c *Config) Validate() error {
	p := c.Processing
	if p.Bands < 0 || p.BandWidth < 0 {
		return fmt.Errorf("%w: bands and bandWidth must not be negative", ErrInvalidConfig)
	}
	if p.NumCores < 1 {
		return fmt.Errorf("%w: numCores must be at least 1, got %d", ErrInvalidConfig, p.NumCores)
	}
	switch p.Metric {
	case MetricEuclidean, MetricChecksum:
	default:
		return fmt.Errorf("%w: unknown metric %q", ErrInvalidConfig, p.Metric)
	}
	switch p.StartStrategy {
	case StartInDegree, StartLegacy:
	default:
		return fmt.Errorf("%w: unknown start strategy %q", ErrInvalidConfig, p.StartStrategy)
	}
	if c.Output.File == "" {
		return fmt.Errorf("%w: output file must be set", ErrInvalidConfig)
	}
	return nil
}

// BandSettings returns the configured band count and band width.
// When neither is set, DefaultBandWidth is used.
func (c *Config) BandSettings() (bands, bandWidth int) {
	if c.Processing.Bands == 0 && c.Processing.BandWidth == 0 {
		return 0, DefaultBandWidth
	}
	return c.Processing.Bands, c.Processing.BandWidth
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
