package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 150 * time.Millisecond

// Watch renders once and then again every time the transcript or the viseme
// map changes on disk. Render failures are logged and do not stop the loop.
// It returns when ctx is done.
func Watch(ctx context.Context, cfg Config) error {
	logf := cfg.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	targets, err := watchTargets(cfg.Input, cfg.VisemeMap)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	dirs := map[string]bool{}
	for p := range targets {
		dirs[filepath.Dir(p)] = true
	}
	for d := range dirs {
		if err := w.Add(d); err != nil {
			return fmt.Errorf("watch %s: %w", d, err)
		}
		logf("watching %s", d)
	}

	render := func() {
		if err := Run(ctx, cfg); err != nil {
			logf("render failed: %v", err)
		}
	}
	render()

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevant(event, targets) {
				continue
			}
			pending = time.After(watchDebounce)

		case <-pending:
			pending = nil
			logf("change detected, rendering")
			render()

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logf("watcher error: %v", err)
		}
	}
}

func watchTargets(paths ...string) (map[string]bool, error) {
	out := make(map[string]bool, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, err
		}
		out[abs] = true
	}
	return out, nil
}

func relevant(event fsnotify.Event, targets map[string]bool) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return targets[abs]
}
