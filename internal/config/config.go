// Package config handles generator configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/geosphere/pkg/formats"
	"github.com/Faultbox/geosphere/pkg/geosphere"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all generator settings.
type Config struct {
	Generation GenerationConfig `yaml:"generation"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GenerationConfig holds sphere generation settings.
type GenerationConfig struct {
	Level      int `yaml:"level"`       // Subdivision level, 0..geosphere.MaxLevel
	Workers    int `yaml:"workers"`     // Worker pool size
	BatchWidth int `yaml:"batch_width"` // Faces dispatched per batch
}

// OutputConfig holds mesh export settings.
type OutputConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"` // obj, gltf or glb; empty picks from the path extension
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	JSON    bool   `yaml:"json"` // JSON lines in the log file instead of console text
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Generation: GenerationConfig{
			Level:      4,
			Workers:    geosphere.DefaultWorkers,
			BatchWidth: geosphere.DefaultBatchWidth,
		},
		Output: OutputConfig{
			Path:   "geosphere.glb",
			Format: "",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
			JSON:    false,
		},
	}
}

// OutputFormat resolves the configured output format.
func (c *Config) OutputFormat() (formats.Format, error) {
	if c.Output.Format != "" {
		return formats.ParseFormat(c.Output.Format)
	}
	return formats.FormatFromPath(c.Output.Path)
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if !geosphere.ValidLevel(c.Generation.Level) {
		return fmt.Errorf("%w: generation.level %d outside 0..%d", ErrInvalidConfig, c.Generation.Level, geosphere.MaxLevel)
	}
	if c.Generation.Workers <= 0 {
		return fmt.Errorf("%w: generation.workers must be positive, got %d", ErrInvalidConfig, c.Generation.Workers)
	}
	if c.Generation.BatchWidth <= 0 {
		return fmt.Errorf("%w: generation.batch_width must be positive, got %d", ErrInvalidConfig, c.Generation.BatchWidth)
	}
	if c.Output.Path == "" {
		return fmt.Errorf("%w: output.path is empty", ErrInvalidConfig)
	}
	if _, err := c.OutputFormat(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level %q", ErrInvalidConfig, c.Logging.Level)
	}
	return nil
}
