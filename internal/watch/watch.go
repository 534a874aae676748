// Package watch re-runs a callback whenever a single file changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultDelay is how long the file must stay quiet before the callback runs.
const DefaultDelay = 500 * time.Millisecond

// Watcher monitors one file through its parent directory, so the file may
// be replaced by rename or deleted and re-created.
type Watcher struct {
	path  string
	delay time.Duration
	fsw   *fsnotify.Watcher
	log   logrus.FieldLogger
}

// New creates a watcher for path. The file does not need to exist yet, but
// its directory does.
func New(path string, delay time.Duration, log logrus.FieldLogger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch folder %s: %w", filepath.Dir(abs), err)
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Watcher{path: abs, delay: delay, fsw: fsw, log: log}, nil
}

// Run blocks until ctx is done, calling fn once per burst of writes to the
// watched file. Calls to fn never overlap.
func (w *Watcher) Run(ctx context.Context, fn func()) error {
	defer w.fsw.Close()
	w.log.WithField("path", w.path).Info("watching")

	timer := time.NewTimer(w.delay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.log.WithFields(logrus.Fields{"path": event.Name, "op": event.Op.String()}).Debug("change detected")
			timer.Reset(w.delay)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("watcher error")

		case <-timer.C:
			fn()
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write)
}
