package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format represents a configuration file format.
type Format string

const (
	// FormatYAML is the YAML format.
	FormatYAML Format = "yaml"
	// FormatJSON is the JSON format.
	FormatJSON Format = "json"
)

// Environment variables that override file settings.
const (
	EnvEngine      = "IMAGE_SCIENCE_ENGINE"
	EnvFilter      = "IMAGE_SCIENCE_FILTER"
	EnvLogLevel    = "IMAGE_SCIENCE_LOG_LEVEL"
	EnvJPEGQuality = "IMAGE_SCIENCE_JPEG_QUALITY"
)

// Resolve builds the effective configuration: defaults, then the file at
// path when path is not empty, then environment overrides. The result is
// validated.
func Resolve(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads configuration from a file path. The format follows the
// extension (.yaml, .yml or .json). Fields missing from the file keep their
// defaults.
func LoadFile(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to access config file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrInvalidFormat, path)
	}

	var format Format
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		format = FormatYAML
	case ".json":
		format = FormatJSON
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	return Load(f, format)
}

// Load reads configuration from r. ${VAR} references are expanded from the
// environment before parsing.
func Load(r io.Reader, format Format) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	data = []byte(os.ExpandEnv(string(data)))

	cfg := Default()
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with any IMAGE_SCIENCE_* variables that are set.
func ApplyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvEngine); ok && v != "" {
		cfg.Engine = v
	}
	if v, ok := os.LookupEnv(EnvFilter); ok && v != "" {
		cfg.Filter = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v, ok := os.LookupEnv(EnvJPEGQuality); ok && v != "" {
		q, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, EnvJPEGQuality, v)
		}
		cfg.JPEGQuality = q
	}
	return nil
}
