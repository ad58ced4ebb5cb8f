package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-science/internal/engine"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.Equal(t, "imaging", cfg.Engine)
	require.Equal(t, "catmullrom", cfg.Filter)
	require.Equal(t, 95, cfg.JPEGQuality)
	require.True(t, cfg.AutoOrient)
	require.Equal(t, ModeThumbnail, cfg.Watch.Mode)
	require.NoError(t, cfg.Validate())
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
engine: bild
filter: lanczos
jpeg_quality: 80
log:
  level: debug
watch:
  mode: fit
  max_width: 320
  max_height: 200
  format: png
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	require.Equal(t, "bild", cfg.Engine)
	require.Equal(t, "lanczos", cfg.Filter)
	require.Equal(t, 80, cfg.JPEGQuality)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, ModeFit, cfg.Watch.Mode)
	require.Equal(t, 320, cfg.Watch.MaxWidth)
	require.Equal(t, 200, cfg.Watch.MaxHeight)

	// Untouched fields keep their defaults.
	require.True(t, cfg.AutoOrient)
	require.Equal(t, "console", cfg.Log.Format)
	require.Equal(t, "_thumb", cfg.Watch.Suffix)
	require.NoError(t, cfg.Validate())
}

func TestLoadFile_JSON(t *testing.T) {
	path := writeFile(t, "config.json", `{"engine": "imaging", "auto_orient": false, "watch": {"mode": "cropped", "size": 64}}`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.False(t, cfg.AutoOrient)
	require.Equal(t, ModeCropped, cfg.Watch.Mode)
	require.Equal(t, 64.0, cfg.Watch.Size)
}

func TestLoadFile_Errors(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.ErrorIs(t, err, ErrConfigNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := LoadFile(t.TempDir())
		require.ErrorIs(t, err, ErrInvalidFormat)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := LoadFile(writeFile(t, "config.toml", "engine = 'bild'"))
		require.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("bad yaml", func(t *testing.T) {
		_, err := LoadFile(writeFile(t, "config.yml", "engine: [unterminated"))
		require.ErrorIs(t, err, ErrInvalidFormat)
	})
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("THUMB_DIR", "/srv/thumbs")

	cfg, err := Load(strings.NewReader("watch:\n  output_dir: ${THUMB_DIR}\n"), FormatYAML)
	require.NoError(t, err)
	require.Equal(t, "/srv/thumbs", cfg.Watch.OutputDir)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvEngine, "bild")
	t.Setenv(EnvFilter, "box")
	t.Setenv(EnvLogLevel, "WARN")
	t.Setenv(EnvJPEGQuality, "70")

	cfg := Default()
	require.NoError(t, ApplyEnv(cfg))

	require.Equal(t, "bild", cfg.Engine)
	require.Equal(t, "box", cfg.Filter)
	require.Equal(t, "warn", cfg.Log.Level)
	require.Equal(t, 70, cfg.JPEGQuality)
}

func TestApplyEnv_BadQuality(t *testing.T) {
	t.Setenv(EnvJPEGQuality, "high")

	err := ApplyEnv(Default())
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown engine", func(c *Config) { c.Engine = "freeimage" }},
		{"unknown filter", func(c *Config) { c.Filter = "sinc" }},
		{"quality too low", func(c *Config) { c.JPEGQuality = 0 }},
		{"quality too high", func(c *Config) { c.JPEGQuality = 101 }},
		{"log level", func(c *Config) { c.Log.Level = "loud" }},
		{"log format", func(c *Config) { c.Log.Format = "xml" }},
		{"watch mode", func(c *Config) { c.Watch.Mode = "stretch" }},
		{"thumbnail size", func(c *Config) { c.Watch.Size = 0 }},
		{"fit box", func(c *Config) { c.Watch.Mode = ModeFit }},
		{"watch format", func(c *Config) { c.Watch.Format = "webp" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestResolve(t *testing.T) {
	t.Setenv(EnvEngine, "bild")

	path := writeFile(t, "config.yaml", "engine: imaging\njpeg_quality: 60\n")
	cfg, err := Resolve(path)
	require.NoError(t, err)

	// Environment beats the file.
	require.Equal(t, "bild", cfg.Engine)
	require.Equal(t, 60, cfg.JPEGQuality)
}

func TestResolve_NoFile(t *testing.T) {
	cfg, err := Resolve("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestNewEngine(t *testing.T) {
	cfg := Default()
	cfg.Engine = "bild"

	eng, err := NewEngine(cfg)
	require.NoError(t, err)
	require.Equal(t, "bild", eng.Name())

	cfg.Engine = "nope"
	_, err = NewEngine(cfg)
	require.ErrorIs(t, err, ErrInvalidConfig)
	require.ErrorIs(t, err, engine.ErrUnknownEngine)
}

func TestLoggingConfig(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"

	lc := cfg.LoggingConfig()
	require.Equal(t, "debug", lc.Level)
	require.Equal(t, "json", lc.Format)
	require.Equal(t, os.Stderr, lc.Output)
}
