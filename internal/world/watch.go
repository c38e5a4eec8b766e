package world

import (
	"fmt"
	"path/filepath"
	"time"

	"portfolio3d/internal/utils"

	"github.com/fsnotify/fsnotify"
)

// settle lets editors finish writing before the file is re-read.
const settle = 50 * time.Millisecond

// LayoutWatcher reloads a layout file whenever it changes on disk.
type LayoutWatcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// WatchLayout watches path and hands each successfully parsed layout to
// onChange through post, so onChange runs on the loop thread. The directory
// is watched rather than the file to survive editors that replace it.
func WatchLayout(path string, post func(func()), onChange func(Layout)) (*LayoutWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create layout watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}

	lw := &LayoutWatcher{watcher: w, done: make(chan struct{})}
	go lw.run(abs, post, onChange)
	return lw, nil
}

func (lw *LayoutWatcher) run(path string, post func(func()), onChange func(Layout)) {
	defer close(lw.done)
	var pending <-chan time.Time
	for {
		select {
		case event, ok := <-lw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				pending = time.After(settle)
			}
		case <-pending:
			pending = nil
			l, err := LoadLayout(path)
			if err != nil {
				utils.Warn("Layout reload failed: %v", err)
				continue
			}
			post(func() { onChange(l) })
		case err, ok := <-lw.watcher.Errors:
			if !ok {
				return
			}
			utils.Warn("Layout watcher: %v", err)
		}
	}
}

// Close stops watching and waits for the watcher goroutine to exit.
func (lw *LayoutWatcher) Close() error {
	err := lw.watcher.Close()
	<-lw.done
	return err
}
