// Package config loads image-science settings from YAML or JSON files and
// the environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ironsheep/image-science/internal/engine"
	"github.com/ironsheep/image-science/internal/logging"
)

// Configuration errors.
var (
	ErrConfigNotFound    = errors.New("config file not found")
	ErrUnsupportedFormat = errors.New("unsupported config format")
	ErrInvalidFormat     = errors.New("invalid config syntax")
	ErrInvalidConfig     = errors.New("invalid configuration")
)

// Watch modes.
const (
	ModeThumbnail = "thumbnail"
	ModeCropped   = "cropped"
	ModeFit       = "fit"
)

// Config is the complete image-science configuration.
type Config struct {
	// Engine selects the imaging engine: "imaging" or "bild".
	Engine string `yaml:"engine" json:"engine"`

	// Filter is the resample filter, e.g. "catmullrom" or "lanczos".
	Filter string `yaml:"filter" json:"filter"`

	// JPEGQuality is the JPEG encode quality, 1-100.
	JPEGQuality int `yaml:"jpeg_quality" json:"jpeg_quality"`

	// AutoOrient applies the EXIF orientation tag on load.
	AutoOrient bool `yaml:"auto_orient" json:"auto_orient"`

	Log   LogConfig   `yaml:"log" json:"log"`
	Watch WatchConfig `yaml:"watch" json:"watch"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// WatchConfig configures the derivative generator behind the watch command.
type WatchConfig struct {
	// Mode is "thumbnail", "cropped" or "fit".
	Mode string `yaml:"mode" json:"mode"`

	// Size is the longest edge for thumbnail and cropped modes.
	Size float64 `yaml:"size" json:"size"`

	// MaxWidth and MaxHeight bound the output in fit mode.
	MaxWidth  int `yaml:"max_width" json:"max_width"`
	MaxHeight int `yaml:"max_height" json:"max_height"`

	// Suffix is appended to the base name of each output file.
	Suffix string `yaml:"suffix" json:"suffix"`

	// Format is the output extension, e.g. "png". Empty keeps the source
	// extension.
	Format string `yaml:"format" json:"format"`

	// OutputDir receives the derivatives. Empty writes next to the source.
	OutputDir string `yaml:"output_dir" json:"output_dir"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	opts := engine.DefaultOptions()
	return &Config{
		Engine:      opts.Name,
		Filter:      opts.Filter,
		JPEGQuality: opts.JPEGQuality,
		AutoOrient:  opts.AutoOrient,
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Watch: WatchConfig{
			Mode:   ModeThumbnail,
			Size:   128,
			Suffix: "_thumb",
		},
	}
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var problems []string

	if _, err := engine.New(c.EngineOptions()); err != nil {
		problems = append(problems, err.Error())
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		problems = append(problems, fmt.Sprintf("jpeg_quality %d not in 1-100", c.JPEGQuality))
	}
	if !logging.ValidLevel(c.Log.Level) {
		problems = append(problems, fmt.Sprintf("unknown log level %q", c.Log.Level))
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		problems = append(problems, fmt.Sprintf("unknown log format %q", c.Log.Format))
	}

	switch c.Watch.Mode {
	case ModeThumbnail, ModeCropped:
		if c.Watch.Size <= 0 {
			problems = append(problems, fmt.Sprintf("watch size %g must be positive", c.Watch.Size))
		}
	case ModeFit:
		if c.Watch.MaxWidth <= 0 || c.Watch.MaxHeight <= 0 {
			problems = append(problems, fmt.Sprintf("watch box %dx%d must be positive", c.Watch.MaxWidth, c.Watch.MaxHeight))
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown watch mode %q", c.Watch.Mode))
	}
	if c.Watch.Format != "" && !engine.FormatFromExtension(c.Watch.Format).CanWrite() {
		problems = append(problems, fmt.Sprintf("watch format %q cannot be written", c.Watch.Format))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// EngineOptions converts the engine settings.
func (c *Config) EngineOptions() engine.Options {
	return engine.Options{
		Name:        c.Engine,
		Filter:      c.Filter,
		JPEGQuality: c.JPEGQuality,
		AutoOrient:  c.AutoOrient,
	}
}

// LoggingConfig converts the log settings.
func (c *Config) LoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Log.Level
	cfg.Format = c.Log.Format
	return cfg
}

// NewEngine builds the engine described by cfg.
func NewEngine(cfg *Config) (engine.Engine, error) {
	eng, err := engine.New(cfg.EngineOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return eng, nil
}
