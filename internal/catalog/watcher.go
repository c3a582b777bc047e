package catalog

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/KirkDiggler/bt-ship-roller/internal/errors"
)

const defaultDebounce = 200 * time.Millisecond

// WatcherConfig configures a Watcher
type WatcherConfig struct {
	// Files are the override files to watch. Their directories are watched
	// so editors that replace files on save are still seen.
	Files    []string
	Store    *Store
	Loader   *Loader
	Debounce time.Duration
	// OnReload is called after each reload attempt, mainly for tests
	OnReload func(err error)
}

// Validate ensures all required dependencies are provided
func (c *WatcherConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if len(c.Files) == 0 {
		vb.RequiredField("Files")
	}
	if c.Store == nil {
		vb.RequiredField("Store")
	}
	if c.Loader == nil {
		vb.RequiredField("Loader")
	}

	return vb.Build()
}

// Watcher reloads a Store when any watched override file changes
type Watcher struct {
	files    map[string]bool
	store    *Store
	loader   *Loader
	debounce time.Duration
	onReload func(err error)

	fw      *fsnotify.Watcher
	done    chan struct{}
	started bool
}

// NewWatcher creates a watcher. Call Start to begin watching.
func NewWatcher(cfg *WatcherConfig) (*Watcher, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create file watcher")
	}

	files := make(map[string]bool, len(cfg.Files))
	for _, f := range cfg.Files {
		abs, err := filepath.Abs(f)
		if err != nil {
			_ = fw.Close()
			return nil, errors.Wrapf(err, "failed to resolve %s", f)
		}
		files[abs] = true
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	return &Watcher{
		files:    files,
		store:    cfg.Store,
		loader:   cfg.Loader,
		debounce: debounce,
		onReload: cfg.OnReload,
		fw:       fw,
		done:     make(chan struct{}),
	}, nil
}

// Start watches until ctx is done or Close is called
func (w *Watcher) Start(ctx context.Context) error {
	dirs := make(map[string]bool)
	for f := range w.files {
		dirs[filepath.Dir(f)] = true
	}
	for dir := range dirs {
		if err := w.fw.Add(dir); err != nil {
			return errors.Wrapf(err, "failed to watch %s", dir)
		}
	}

	w.started = true
	go w.loop(ctx)
	return nil
}

// Close stops the watcher and waits for the loop to exit
func (w *Watcher) Close() error {
	err := w.fw.Close()
	if w.started {
		<-w.done
	}
	return err
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.done)

	var pending time.Time
	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !w.files[filepath.Clean(event.Name)] {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case <-ticker.C:
			if pending.IsZero() || time.Since(pending) < w.debounce {
				continue
			}
			pending = time.Time{}
			w.reload(ctx)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			slog.Warn("Override watcher error", "error", err)
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	err := w.store.Reload(ctx, w.loader)
	if err != nil {
		slog.Error("Catalog reload failed, keeping previous catalog", "error", err)
	} else {
		slog.Info("Catalog reloaded", "records", w.store.Catalog().Len())
	}
	if w.onReload != nil {
		w.onReload(err)
	}
}
