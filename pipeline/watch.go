package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/teranos/fixturegen/errors"
	"github.com/teranos/fixturegen/logger"
)

// DefaultDebounce is how long a unit must stay quiet before it is regenerated.
const DefaultDebounce = 200 * time.Millisecond

// Handler receives the outcome of each regeneration. err is non-nil when the
// unit failed to load; the watch keeps running.
type Handler func(r *UnitResult, err error)

// Watcher regenerates units whenever they change on disk.
type Watcher struct {
	opts     Options
	handler  Handler
	debounce time.Duration

	units   map[string]string // cleaned absolute path -> path as given
	watcher *fsnotify.Watcher

	mu     sync.Mutex
	timers map[string]*time.Timer
	wg     sync.WaitGroup
}

// NewWatcher watches the directories holding paths. Directories rather than
// files are watched so that editors replacing a file by rename are seen.
func NewWatcher(paths []string, opts Options, handler Handler) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		opts:     opts.withDefaults(),
		handler:  handler,
		debounce: DefaultDebounce,
		units:    make(map[string]string, len(paths)),
		watcher:  fw,
		timers:   map[string]*time.Timer{},
	}

	dirs := map[string]bool{}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "failed to resolve %s", p)
		}
		w.units[abs] = p
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "failed to watch %s", dir)
		}
	}
	return w, nil
}

// SetDebounce overrides DefaultDebounce. Call before Run.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run processes file events until ctx is cancelled, then waits for any
// in-flight regeneration and closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	log := w.opts.Logger.Named("watch")
	defer func() {
		w.stopTimers()
		w.wg.Wait()
		w.watcher.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			unit, ok := w.units[filepath.Clean(event.Name)]
			if !ok {
				continue
			}
			log.Debugw("Unit changed",
				logger.FieldUnit, unit,
				logger.FieldOperation, event.Op.String())
			w.schedule(ctx, unit)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Warnw("Watcher error", logger.FieldError, err)
		}
	}
}

// schedule debounces rapid changes to one unit.
func (w *Watcher) schedule(ctx context.Context, unit string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[unit]; ok {
		if !t.Stop() {
			// already fired; its run is accounted for in wg
			delete(w.timers, unit)
		} else {
			w.wg.Done()
		}
	}

	w.wg.Add(1)
	var t *time.Timer
	t = time.AfterFunc(w.debounce, func() {
		defer w.wg.Done()
		w.mu.Lock()
		if w.timers[unit] == t {
			delete(w.timers, unit)
		}
		w.mu.Unlock()

		if ctx.Err() != nil {
			return
		}
		r, err := processUnit(ctx, unit, w.opts)
		if err == nil {
			err = w.sync(r)
		}
		w.handler(r, err)
	})
	w.timers[unit] = t
}

// sync makes the output file match r: written when the unit yields
// builders, removed when it no longer does.
func (w *Watcher) sync(r *UnitResult) error {
	if r.Output == "" {
		return nil
	}
	written, err := Write(r)
	if err != nil || written {
		return err
	}
	if err := os.Remove(r.Output); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "failed to remove %s", r.Output)
	}
	w.opts.Logger.Infow("Removed output of unit without builders",
		logger.FieldUnit, r.Unit,
		logger.FieldOutput, r.Output)
	return nil
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for unit, t := range w.timers {
		if t.Stop() {
			w.wg.Done()
		}
		delete(w.timers, unit)
	}
}

// Watch runs an initial pass over paths, then regenerates each unit as it
// changes. A unit that stops yielding builders has its output file removed.
// It blocks until ctx is cancelled.
func Watch(ctx context.Context, paths []string, opts Options, handler Handler) error {
	w, err := NewWatcher(paths, opts, handler)
	if err != nil {
		return err
	}
	for _, p := range paths {
		r, err := processUnit(ctx, p, w.opts)
		if err == nil {
			err = w.sync(r)
		}
		handler(r, err)
	}
	return w.Run(ctx)
}
