package logging

import (
	"bytes"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/felixgeelhaar/bolt/v3"
	"github.com/stretchr/testify/require"
)

// testLogger creates a logger that writes JSON to a buffer.
func testLogger() (*bolt.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := New(Config{Level: "trace", Format: "json", Output: buf})
	return logger, buf
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	config := DefaultConfig()
	require.Equal(t, "info", config.Level)
	require.Equal(t, "console", config.Format)
	require.Equal(t, os.Stderr, config.Output)
}

func TestProductionConfig(t *testing.T) {
	t.Parallel()

	config := ProductionConfig()
	require.Equal(t, "json", config.Format)
	require.Equal(t, os.Stderr, config.Output)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected bolt.Level
	}{
		{"trace", bolt.TRACE},
		{"debug", bolt.DEBUG},
		{"info", bolt.INFO},
		{"warn", bolt.WARN},
		{"error", bolt.ERROR},
		{"unknown", bolt.INFO},
		{"", bolt.INFO},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestValidLevel(t *testing.T) {
	t.Parallel()

	require.True(t, ValidLevel("debug"))
	require.True(t, ValidLevel("error"))
	require.False(t, ValidLevel("verbose"))
	require.False(t, ValidLevel(""))
}

func TestLevelFiltering(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger := New(Config{Level: "warn", Format: "json", Output: buf})

	logger.Info().Msg("hidden")
	require.Zero(t, buf.Len())

	logger.Warn().Msg("shown")
	require.Contains(t, buf.String(), "shown")
}

func TestFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		field Field
		want  []string
	}{
		{"path", Path("/tmp/a.png"), []string{`"path":"/tmp/a.png"`}},
		{"dimensions", Dimensions(640, 480), []string{`"width":640`, `"height":480`}},
		{"engine", Engine("bild"), []string{`"engine":"bild"`}},
		{"tool", ToolName("image_resize"), []string{`"tool":"image_resize"`}},
		{"method", Method("tools/call"), []string{`"method":"tools/call"`}},
		{"duration", Duration(100 * time.Millisecond), []string{`"duration_ms":100`}},
		{"live", Live(3), []string{`"live":3`}},
		{"component", Component("watch"), []string{`"component":"watch"`}},
		{"operation", Operation("thumbnail"), []string{`"operation":"thumbnail"`}},
		{"str", Str("format", "PNG"), []string{`"format":"PNG"`}},
		{"int", Int("size", 42), []string{`"size":42`}},
		{"error", ErrorField(errors.New("boom")), []string{`"error":"boom"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logger, buf := testLogger()
			NewEvent(logger.Info()).Add(tt.field).Msg("test")

			for _, w := range tt.want {
				require.Contains(t, buf.String(), w)
			}
		})
	}
}

func TestErrorFieldNil(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()
	NewEvent(logger.Info()).Add(ErrorField(nil)).Msg("test")

	require.NotContains(t, buf.String(), `"error"`)
}

func TestSetDefault(t *testing.T) {
	logger, buf := testLogger()
	SetDefault(logger)
	t.Cleanup(func() { SetDefault(New(DefaultConfig())) })

	Warn().Add(Path("x.png")).Msg("replaced")

	require.Contains(t, buf.String(), "replaced")
	require.Contains(t, buf.String(), `"path":"x.png"`)
	require.Same(t, logger, Get())
}
