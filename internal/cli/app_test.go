package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-science/internal/config"
	"github.com/ironsheep/image-science/internal/engine"
	"github.com/ironsheep/image-science/internal/imaging"
)

// run executes the CLI and returns stdout. Every scope the command opened
// must be released by the time it returns.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := New().WithOutput(&stdout, &stderr)
	err := app.ExecuteWithArgs(context.Background(), args)
	if app.eng != nil {
		require.Zero(t, app.eng.Live(), "bitmaps still live after %v", args)
	}
	return stdout.String(), err
}

// writeQuadrants writes a PNG with red, green, blue and white quadrants.
func writeQuadrants(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{255, 255, 255, 255}
			switch {
			case x < w/2 && y < h/2:
				c = color.NRGBA{255, 0, 0, 255}
			case y < h/2:
				c = color.NRGBA{0, 255, 0, 255}
			case x < w/2:
				c = color.NRGBA{0, 0, 255, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	path := filepath.Join(t.TempDir(), "src.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func dimensions(t *testing.T, path string) (int, int) {
	t.Helper()
	eng, err := engine.New(engine.DefaultOptions())
	require.NoError(t, err)
	dims, err := imaging.GetDimensions(eng, path)
	require.NoError(t, err)
	return dims.Width, dims.Height
}

func TestApp_Version(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, "image-science version dev")

	// version never touches configuration
	_, err = run(t, "version", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
}

func TestApp_Help(t *testing.T) {
	out, err := run(t, "--help")
	require.NoError(t, err)
	for _, name := range []string{"serve", "watch", "thumbnail", "cropped-thumbnail", "fit", "crop", "convert", "info", "type", "color"} {
		require.Contains(t, out, name)
	}
}

func TestApp_Config(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := run(t, "type", "x.png", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
		require.ErrorIs(t, err, config.ErrConfigNotFound)
	})

	t.Run("engine flag", func(t *testing.T) {
		src := writeQuadrants(t, 40, 20)
		dst := filepath.Join(t.TempDir(), "t.png")
		_, err := run(t, "thumbnail", src, dst, "--size", "10", "--engine", "bild")
		require.NoError(t, err)
		w, h := dimensions(t, dst)
		require.Equal(t, []int{10, 5}, []int{w, h})
	})

	t.Run("unknown engine", func(t *testing.T) {
		_, err := run(t, "type", "x.png", "--engine", "magick")
		require.ErrorIs(t, err, config.ErrInvalidConfig)
	})

	t.Run("file settings", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cfg.yaml")
		require.NoError(t, os.WriteFile(path, []byte("engine: bild\nlog:\n  level: debug\n"), 0o644))

		var stdout, stderr bytes.Buffer
		app := New().WithOutput(&stdout, &stderr)
		require.NoError(t, app.ExecuteWithArgs(context.Background(), []string{"type", "x.png", "-c", path}))
		require.Equal(t, "bild", app.eng.Name())
		require.Contains(t, stderr.String(), "configured")
	})
}

func TestApp_Info(t *testing.T) {
	src := writeQuadrants(t, 64, 32)

	out, err := run(t, "info", src)
	require.NoError(t, err)
	require.Contains(t, out, "64x32")
	require.Contains(t, out, "PNG")
	require.Contains(t, out, "RGB")

	out, err = run(t, "info", src, "--json")
	require.NoError(t, err)
	var info imaging.ImageInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	require.Equal(t, 64, info.Width)
	require.Equal(t, imaging.RGB, info.ColorType)

	_, err = run(t, "info", filepath.Join(t.TempDir(), "missing.png"))
	require.ErrorIs(t, err, imaging.ErrDecode)
}

func TestApp_Type(t *testing.T) {
	src := writeQuadrants(t, 4, 4)
	text := filepath.Join(t.TempDir(), "notes")
	require.NoError(t, os.WriteFile(text, []byte("plain text"), 0o644))

	out, err := run(t, "type", src)
	require.NoError(t, err)
	require.Equal(t, "PNG\n", out)

	out, err = run(t, "type", src, text)
	require.NoError(t, err)
	require.Contains(t, out, src+": PNG")
	require.Contains(t, out, text+": unknown")
}

func TestApp_Color(t *testing.T) {
	src := writeQuadrants(t, 10, 10)

	out, err := run(t, "color", src, "0", "0")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "#FF0000 rgb(255,0,0)"), out)

	out, err = run(t, "color", src, "9", "9", "--json")
	require.NoError(t, err)
	require.Contains(t, out, `"hex": "#FFFFFF"`)

	_, err = run(t, "color", src, "10", "0")
	require.ErrorIs(t, err, imaging.ErrOutOfBounds)

	_, err = run(t, "color", src, "a", "0")
	require.Error(t, err)
}

func TestApp_Transforms(t *testing.T) {
	src := writeQuadrants(t, 200, 100)

	tests := []struct {
		name  string
		args  []string
		wantW int
		wantH int
	}{
		{"resize", []string{"resize", "--width", "30", "--height", "40"}, 30, 40},
		{"thumbnail", []string{"thumbnail", "--size", "50"}, 50, 25},
		{"fractional thumbnail", []string{"thumbnail", "--size", "25.7"}, 25, 12},
		{"cropped thumbnail", []string{"cropped-thumbnail", "--size", "40"}, 40, 40},
		{"fit", []string{"fit", "--max-width", "100", "--max-height", "100"}, 100, 50},
		{"fit never enlarges", []string{"fit", "--max-width", "1000", "--max-height", "1000"}, 200, 100},
		{"crop", []string{"crop", "--x1", "10", "--y1", "5", "--x2", "60", "--y2", "25"}, 50, 20},
		{"crop region", []string{"crop", "--region", "left-half"}, 100, 100},
		{"convert", []string{"convert"}, 200, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := filepath.Join(t.TempDir(), "out.png")
			args := append([]string{tt.args[0], src, dst}, tt.args[1:]...)

			out, err := run(t, args...)
			require.NoError(t, err)
			require.Contains(t, out, "wrote "+dst)

			w, h := dimensions(t, dst)
			require.Equal(t, tt.wantW, w)
			require.Equal(t, tt.wantH, h)
		})
	}
}

func TestApp_ConvertFormat(t *testing.T) {
	src := writeQuadrants(t, 16, 16)
	dst := filepath.Join(t.TempDir(), "out.jpg")

	_, err := run(t, "convert", src, dst)
	require.NoError(t, err)
	require.Equal(t, engine.FormatJPEG, engine.DetectFile(dst))
}

func TestApp_TransformErrors(t *testing.T) {
	src := writeQuadrants(t, 20, 20)
	dir := t.TempDir()

	t.Run("invalid dimension", func(t *testing.T) {
		dst := filepath.Join(dir, "zero.png")
		_, err := run(t, "resize", src, dst, "--width", "0", "--height", "25")
		require.ErrorIs(t, err, imaging.ErrInvalidDimension)
		require.NoFileExists(t, dst)
	})

	t.Run("out of bounds crop", func(t *testing.T) {
		_, err := run(t, "crop", src, filepath.Join(dir, "c.png"), "--x2", "30", "--y2", "5")
		require.ErrorIs(t, err, imaging.ErrOutOfBounds)
	})

	t.Run("unwritable format", func(t *testing.T) {
		_, err := run(t, "convert", src, filepath.Join(dir, "out.psd"))
		require.ErrorIs(t, err, imaging.ErrUnknownFormat)
	})

	t.Run("required flag", func(t *testing.T) {
		_, err := run(t, "thumbnail", src, filepath.Join(dir, "t.png"))
		require.Error(t, err)
	})

	t.Run("arguments", func(t *testing.T) {
		_, err := run(t, "thumbnail", src, "--size", "10")
		require.Error(t, err)
	})
}

func TestApp_Serve(t *testing.T) {
	in := strings.NewReader(`{"jsonrpc":"2.0","id":7,"method":"ping"}` + "\n" +
		`{"jsonrpc":"2.0","id":8,"method":"tools/list"}` + "\n")

	var stdout, stderr bytes.Buffer
	app := New().WithOutput(&stdout, &stderr).WithInput(in)
	require.NoError(t, app.ExecuteWithArgs(context.Background(), []string{"serve"}))

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], `"id":7`)
	require.Contains(t, lines[1], "image_cropped_thumbnail")
}

func TestApp_Watch(t *testing.T) {
	dir := filepath.Dir(writeQuadrants(t, 300, 100))
	outDir := t.TempDir()

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	var stdout, stderr bytes.Buffer
	app := New().WithOutput(&stdout, &stderr)
	err := app.ExecuteWithArgs(ctx, []string{
		"watch", dir, "--initial", "--mode", "cropped", "--size", "30", "--output-dir", outDir,
	})
	require.NoError(t, err)
	require.Zero(t, app.eng.Live())

	want := filepath.Join(outDir, "src_thumb.png")
	require.Contains(t, stdout.String(), "wrote "+want+" (30x30)")
	require.FileExists(t, want)
}

func TestApp_WatchInvalid(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "watch", dir, "--mode", "spiral")
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = run(t, "watch", dir, "--mode", "fit")
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = run(t, "watch", filepath.Join(dir, "missing"))
	require.Error(t, err)
}
