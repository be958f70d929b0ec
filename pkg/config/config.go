// Package config provides configuration loading and management for the saca
// command. It handles loading configuration from YAML files and provides
// default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Analysis modes
const (
	Mode2D = "2d"
	Mode3D = "3d"
)

// Automatic threshold methods
const (
	ThresholdManual = "manual"
	ThresholdOtsu   = "otsu"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Processing parameters
	Processing struct {
		// Workers specifies how many goroutines process pixels in parallel
		Workers int `yaml:"workers"`

		// Mode selects 2D image or 3D stack analysis
		Mode string `yaml:"mode"`
	} `yaml:"processing"`

	// Colocalization parameters
	Colocalization struct {
		// ThresholdA and ThresholdB are the channel intensity thresholds
		ThresholdA float64 `yaml:"thresholdA"`
		ThresholdB float64 `yaml:"thresholdB"`

		// AutoThreshold is "manual" or "otsu"
		AutoThreshold string `yaml:"autoThreshold"`

		// HistogramBins is the histogram size used by automatic thresholds
		HistogramBins int `yaml:"histogramBins"`

		// PValues enables the p-value map
		PValues bool `yaml:"pValues"`

		// SignificanceLevel is the alpha used to count significant pixels
		SignificanceLevel float64 `yaml:"significanceLevel"`
	} `yaml:"colocalization"`

	// Output parameters
	Output struct {
		// Directory receives every output file
		Directory string `yaml:"directory"`

		// Heatmap writes the z-score heatmap image(s)
		Heatmap bool `yaml:"heatmap"`

		// HeatmapLimit is the |z| mapped to full color, 0 scales to the data
		HeatmapLimit float64 `yaml:"heatmapLimit"`

		// ZScores writes the raw z-scores as little-endian float64
		ZScores bool `yaml:"zScores"`

		// Summary writes summary.yaml
		Summary bool `yaml:"summary"`

		// Verbose enables debug logging
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default processing parameters
	cfg.Processing.Workers = runtime.NumCPU() // Use all available cores by default
	cfg.Processing.Mode = Mode2D

	// Set default colocalization parameters
	cfg.Colocalization.ThresholdA = 0
	cfg.Colocalization.ThresholdB = 0
	cfg.Colocalization.AutoThreshold = ThresholdManual
	cfg.Colocalization.HistogramBins = 256
	cfg.Colocalization.PValues = true
	cfg.Colocalization.SignificanceLevel = 0.05

	// Set default output parameters
	cfg.Output.Directory = "output"
	cfg.Output.Heatmap = true
	cfg.Output.HeatmapLimit = 0
	cfg.Output.ZScores = true
	cfg.Output.Summary = true
	cfg.Output.Verbose = false

	return cfg
}

// Validate checks that the configuration values are usable
func (c *Config) Validate() error {
	if c.Processing.Workers < 1 {
		return fmt.Errorf("processing.workers must be at least 1, got %d", c.Processing.Workers)
	}
	if c.Processing.Mode != Mode2D && c.Processing.Mode != Mode3D {
		return fmt.Errorf("processing.mode must be %q or %q, got %q", Mode2D, Mode3D, c.Processing.Mode)
	}
	switch c.Colocalization.AutoThreshold {
	case ThresholdManual, ThresholdOtsu:
	default:
		return fmt.Errorf("colocalization.autoThreshold must be %q or %q, got %q",
			ThresholdManual, ThresholdOtsu, c.Colocalization.AutoThreshold)
	}
	if c.Colocalization.HistogramBins < 2 {
		return fmt.Errorf("colocalization.histogramBins must be at least 2, got %d", c.Colocalization.HistogramBins)
	}
	if a := c.Colocalization.SignificanceLevel; a <= 0 || a >= 1 {
		return fmt.Errorf("colocalization.significanceLevel must be in (0, 1), got %g", a)
	}
	if c.Output.HeatmapLimit < 0 {
		return fmt.Errorf("output.heatmapLimit must not be negative, got %g", c.Output.HeatmapLimit)
	}
	if c.Output.Directory == "" {
		return fmt.Errorf("output.directory must not be empty")
	}
	return nil
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
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
	return SaveConfig(DefaultConfig(), configPath)
}
