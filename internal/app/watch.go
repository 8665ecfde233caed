package app

import (
	"fmt"
	"sync/atomic"

	"github.com/ausocean/utils/logging"
	"github.com/fsnotify/fsnotify"
)

// DirWatcher flags when a file in a directory is created, written, removed
// or renamed. Close stops it.
type DirWatcher struct {
	w       *fsnotify.Watcher
	log     logging.Logger
	changed atomic.Bool
	done    chan struct{}
}

// WatchDir starts watching dir.
func WatchDir(dir string, log logging.Logger) (*DirWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("could not watch %s: %w", dir, err)
	}
	d := &DirWatcher{w: w, log: log, done: make(chan struct{})}
	go d.watchLoop()
	return d, nil
}

// Changed reports whether the directory changed since the last call.
func (d *DirWatcher) Changed() bool {
	return d.changed.Swap(false)
}

// Close stops watching and waits for the event loop to end.
func (d *DirWatcher) Close() error {
	err := d.w.Close()
	<-d.done
	return err
}

const watchedOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

func (d *DirWatcher) watchLoop() {
	defer close(d.done)
	for {
		select {
		case ev, ok := <-d.w.Events:
			if !ok {
				return
			}
			if ev.Op&watchedOps != 0 {
				d.log.Debug("watched file changed", "name", ev.Name, "op", ev.Op.String())
				d.changed.Store(true)
			}
		case err, ok := <-d.w.Errors:
			if !ok {
				return
			}
			d.log.Warning("watch error", "error", err)
		}
	}
}
