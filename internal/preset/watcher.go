package preset

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/cwbudde/algo-amp/amp/param"
	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a preset file into a Store whenever the file changes.
//
// The parent directory is watched rather than the file itself, so editors
// that save by renaming a temporary file are handled.
type Watcher struct {
	path    string
	store   *param.Store
	w       *fsnotify.Watcher
	applied chan Preset
	errs    chan error
}

// NewWatcher starts watching path for store. The file does not need to
// exist yet. Call Run to process changes and Close to release the watch.
func NewWatcher(path string, store *param.Store) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("preset: watcher: %w", err)
	}

	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("preset: watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:    abs,
		store:   store,
		w:       w,
		applied: make(chan Preset, 1),
		errs:    make(chan error, 1),
	}, nil
}

// Applied delivers each preset after it has been written to the Store.
// Deliveries are dropped when nobody is reading.
func (w *Watcher) Applied() <-chan Preset { return w.applied }

// Errors delivers load and watch errors. Deliveries are dropped when nobody
// is reading.
func (w *Watcher) Errors() <-chan error { return w.errs }

// Run processes file events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.w.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(ev.Name) != w.path {
				continue
			}

			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}

			w.reload()

		case err, ok := <-w.w.Errors:
			if !ok {
				return nil
			}

			w.report(err)
		}
	}
}

// Reload applies the file now, outside of any event.
func (w *Watcher) Reload() error {
	p, err := Load(w.path)
	if err != nil {
		return err
	}

	return p.Apply(w.store)
}

func (w *Watcher) reload() {
	p, err := Load(w.path)
	if err == nil {
		err = p.Apply(w.store)
	}

	if err != nil {
		w.report(err)
		return
	}

	select {
	case w.applied <- p:
	default:
	}
}

func (w *Watcher) report(err error) {
	select {
	case w.errs <- err:
	default:
	}
}

// Close stops the watch. Run returns afterwards.
func (w *Watcher) Close() error {
	return w.w.Close()
}
