// Package file drives a tree.Live from a fixture file on disk, re-rendering
// whenever the file is written. A test (or an external renderer) can then
// change what a scry wait sees simply by rewriting the fixture.
package file

import (
	"context"
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/scry/tree"
)

// Reload signals.
var (
	// TreeReloaded is emitted when the fixture is parsed and rendered.
	TreeReloaded = capitan.NewSignal(
		"scry.tree.reloaded",
		"Fixture tree rendered",
	)

	// TreeReloadFailed is emitted when the fixture cannot be read or parsed.
	// The previously rendered tree stays current.
	TreeReloadFailed = capitan.NewSignal(
		"scry.tree.reload.failed",
		"Fixture tree reload failed",
	)
)

// Field keys for reload events.
var (
	// KeyPath is the fixture file path.
	KeyPath = capitan.NewStringKey("path")

	// KeyError is the error message when a reload fails.
	KeyError = capitan.NewStringKey("error")
)

// Watcher renders a fixture file into a tree.Live.
type Watcher struct {
	path  string
	parse []tree.ParseOption
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithParseOptions sets the options passed to tree.Parse, e.g. the
// component registry.
func WithParseOptions(opts ...tree.ParseOption) Option {
	return func(w *Watcher) {
		w.parse = opts
	}
}

// New creates a Watcher for the fixture at path.
func New(path string, opts ...Option) *Watcher {
	w := &Watcher{path: path}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Load reads and parses the fixture once.
func (w *Watcher) Load() (*tree.Node, error) {
	data, err := os.ReadFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", w.path, err)
	}
	root, err := tree.Parse(data, w.parse...)
	if err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", w.path, err)
	}
	return root, nil
}

// Watch renders the fixture into live, then keeps re-rendering it on every
// write until ctx is canceled. The initial load is synchronous; its error is
// returned and nothing is watched.
func (w *Watcher) Watch(ctx context.Context, live *tree.Live) error {
	root, err := w.Load()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	if err := watcher.Add(w.path); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch file %s: %w", w.path, err)
	}

	live.Render(root)
	capitan.Emit(ctx, TreeReloaded, KeyPath.Field(w.path))

	go w.watch(ctx, watcher, live)
	return nil
}

func (w *Watcher) watch(ctx context.Context, watcher *fsnotify.Watcher, live *tree.Live) {
	defer watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			// Only reload on write or create events
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			w.reload(ctx, live)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			capitan.Emit(ctx, TreeReloadFailed,
				KeyPath.Field(w.path),
				KeyError.Field(err.Error()),
			)
		}
	}
}

func (w *Watcher) reload(ctx context.Context, live *tree.Live) {
	root, err := w.Load()
	if err != nil {
		capitan.Emit(ctx, TreeReloadFailed,
			KeyPath.Field(w.path),
			KeyError.Field(err.Error()),
		)
		return
	}
	live.Render(root)
	capitan.Emit(ctx, TreeReloaded, KeyPath.Field(w.path))
}
