package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Watch waits for a burst of file events to
// settle before reloading.
const DefaultDebounce = 100 * time.Millisecond

// Update is one reload of a watched file.
type Update struct {
	Config Config
	Err    error
}

// WatchOption configures Watch.
type WatchOption func(*watchOptions)

type watchOptions struct {
	debounce time.Duration
}

// WithDebounce sets the quiet period after the last event before the file
// is reloaded. Zero reloads on every event.
func WithDebounce(d time.Duration) WatchOption {
	return func(o *watchOptions) {
		if d >= 0 {
			o.debounce = d
		}
	}
}

// Watch reloads path whenever it is written, created or renamed into place,
// and sends the result on the returned channel. Events closer together than
// the debounce period yield one reload. The channel is closed when ctx is
// done.
func Watch(ctx context.Context, path string, opts ...WatchOption) (<-chan Update, error) {
	o := watchOptions{debounce: DefaultDebounce}
	for _, opt := range opts {
		opt(&o)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch config %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch config %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch config %s: %w", path, err)
	}

	out := make(chan Update, 1)
	go func() {
		defer close(out)
		defer w.Close()

		send := func(u Update) bool {
			select {
			case out <- u:
				return true
			case <-ctx.Done():
				return false
			}
		}

		// pending fires once the file has been quiet for the debounce period.
		var pending <-chan time.Time
		timer := time.NewTimer(time.Hour)
		timer.Stop()
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
					continue
				}
				if o.debounce == 0 {
					cfg, err := Load(abs)
					if !send(Update{Config: cfg, Err: err}) {
						return
					}
					continue
				}
				timer.Reset(o.debounce)
				pending = timer.C
			case <-pending:
				pending = nil
				cfg, err := Load(abs)
				if !send(Update{Config: cfg, Err: err}) {
					return
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				if !send(Update{Err: fmt.Errorf("watch config %s: %w", path, err)}) {
					return
				}
			}
		}
	}()
	return out, nil
}
