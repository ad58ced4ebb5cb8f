// Package watch generates derivative images for files dropped into a
// directory.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ironsheep/image-science/internal/config"
	"github.com/ironsheep/image-science/internal/engine"
	"github.com/ironsheep/image-science/internal/imaging"
	"github.com/ironsheep/image-science/internal/logging"
)

// Watch errors.
var (
	// ErrSkipped is returned by Process for files it does not handle:
	// unreadable formats and the watcher's own outputs.
	ErrSkipped = errors.New("file skipped")

	// ErrNotSaved means the encoder declined the derivative.
	ErrNotSaved = errors.New("derivative not saved")
)

// DefaultSettle is how long a file must stay quiet before it is processed.
const DefaultSettle = 250 * time.Millisecond

// Result describes one generated derivative.
type Result struct {
	Source string
	Output string
	Width  int
	Height int
}

// Watcher turns source images into derivatives as described by a
// config.WatchConfig.
type Watcher struct {
	eng    engine.Engine
	cfg    config.WatchConfig
	settle time.Duration
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithSettle sets the quiet period before a changed file is processed.
func WithSettle(d time.Duration) Option {
	return func(w *Watcher) {
		w.settle = d
	}
}

// New creates a watcher that derives images with eng.
func New(eng engine.Engine, cfg config.WatchConfig, opts ...Option) *Watcher {
	w := &Watcher{eng: eng, cfg: cfg, settle: DefaultSettle}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// OutputPath returns where the derivative of src is written: the output
// directory (or the directory of src), the base name plus the suffix, and
// the configured extension (or the extension of src).
func (w *Watcher) OutputPath(src string) string {
	dir := w.cfg.OutputDir
	if dir == "" {
		dir = filepath.Dir(src)
	}
	ext := filepath.Ext(src)
	base := strings.TrimSuffix(filepath.Base(src), ext)
	if w.cfg.Format != "" {
		ext = "." + strings.TrimPrefix(w.cfg.Format, ".")
	}
	return filepath.Join(dir, base+w.cfg.Suffix+ext)
}

// skip reports why path is not a source image, or "" if it is one.
func (w *Watcher) skip(path string) string {
	if !engine.FormatFromFilename(path).CanRead() {
		return "unsupported extension"
	}
	if w.cfg.Suffix != "" {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if strings.HasSuffix(base, w.cfg.Suffix) {
			return "derivative"
		}
	}
	if filepath.Clean(w.OutputPath(path)) == filepath.Clean(path) {
		return "output would overwrite source"
	}
	return ""
}

// Process generates the derivative for one file. Files that are not source
// images fail with ErrSkipped.
func (w *Watcher) Process(path string) (*Result, error) {
	if reason := w.skip(path); reason != "" {
		return nil, fmt.Errorf("%w: %s: %s", ErrSkipped, path, reason)
	}

	out := w.OutputPath(path)
	result := &Result{Source: path, Output: out}

	err := imaging.WithImage(w.eng, path, func(img *imaging.Handle) error {
		return w.derive(img, func(d *imaging.Handle) error {
			saved, err := d.Save(out)
			if err != nil {
				return err
			}
			if !saved {
				return fmt.Errorf("%w: %s", ErrNotSaved, out)
			}
			result.Width, result.Height = d.Width(), d.Height()
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (w *Watcher) derive(img *imaging.Handle, fn func(*imaging.Handle) error) error {
	switch w.cfg.Mode {
	case config.ModeCropped:
		return img.WithCroppedThumbnail(w.cfg.Size, fn)
	case config.ModeFit:
		return img.WithFitWithin(w.cfg.MaxWidth, w.cfg.MaxHeight, fn)
	default:
		return img.WithThumbnail(w.cfg.Size, fn)
	}
}

// ProcessDir processes every source image already in dir, in name order.
// Failures are logged and do not stop the scan.
func (w *Watcher) ProcessDir(dir string) ([]Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var results []Result
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if r, ok := w.handle(filepath.Join(dir, e.Name())); ok {
			results = append(results, *r)
		}
	}
	return results, nil
}

// handle processes path and logs the outcome.
func (w *Watcher) handle(path string) (*Result, bool) {
	start := time.Now()
	r, err := w.Process(path)
	switch {
	case errors.Is(err, ErrSkipped):
		logging.Trace().Add(logging.Path(path)).Add(logging.ErrorField(err)).Msg("skipped")
		return nil, false
	case err != nil:
		logging.Warn().
			Add(logging.Component("watch")).
			Add(logging.Path(path)).
			Add(logging.ErrorField(err)).
			Msg("derivative failed")
		return nil, false
	}
	logging.Info().
		Add(logging.Component("watch")).
		Add(logging.Path(r.Output)).
		Add(logging.Dimensions(r.Width, r.Height)).
		Add(logging.Duration(time.Since(start))).
		Msg("derivative written")
	return r, true
}

// Run watches dir until ctx is done. Each created or written file is
// processed once it has been quiet for the settle period. Run returns nil
// when ctx is cancelled.
func (w *Watcher) Run(ctx context.Context, dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dir)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = fw.Close()
	}()

	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch path: %w", err)
	}

	logging.Info().
		Add(logging.Component("watch")).
		Add(logging.Path(dir)).
		Add(logging.Str("mode", w.cfg.Mode)).
		Msg("watching")

	tick := w.settle / 2
	if tick <= 0 {
		tick = time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	pending := make(map[string]time.Time)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) {
				pending[event.Name] = time.Now().Add(w.settle)
			}
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				delete(pending, event.Name)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logging.Error().Add(logging.Component("watch")).Add(logging.ErrorField(err)).Msg("watch error")

		case now := <-ticker.C:
			for _, path := range due(pending, now) {
				delete(pending, path)
				if fi, err := os.Stat(path); err != nil || fi.IsDir() {
					continue
				}
				w.handle(path)
			}
		}
	}
}

// due returns the pending paths whose settle deadline has passed, sorted.
func due(pending map[string]time.Time, now time.Time) []string {
	var paths []string
	for p, deadline := range pending {
		if !now.Before(deadline) {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}
