// internal/defs/watch.go
package defs

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/LupusDei/space-towers-sub001/pkg/logger"
)

// Watcher hot-reloads the definition directory while the game runs, so
// balance edits land without a restart. Reloads are delivered on Libraries
// and should be swapped in between waves, never mid-combat.
type Watcher struct {
	watcher   *fsnotify.Watcher
	dir       string
	Libraries chan *Library
	Errors    chan error
	closeCh   chan struct{}
	once      sync.Once
}

// Watch starts watching dir for definition file changes.
func Watch(dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher:   fw,
		dir:       dir,
		Libraries: make(chan *Library, 1),
		Errors:    make(chan error, 1),
		closeCh:   make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher. The run goroutine owns the output channels and
// closes them on its way out; closing them here would race its sends.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Errors)
	defer close(w.Libraries)

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !isDefinitionFile(event.Name) {
				continue
			}
			// Editors fire bursts of events per save; debounce them.
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < 100*time.Millisecond {
				continue
			}
			last[event.Name] = now

			lib, err := LoadDir(w.dir)
			if err != nil {
				logger.Log.WithError(err).Warn("definition reload failed, keeping current library")
				continue
			}
			// Replace any pending library rather than blocking. This
			// goroutine is the only sender, so drain-then-send cannot race
			// another send.
			select {
			case <-w.Libraries:
			default:
			}
			select {
			case w.Libraries <- lib:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func isDefinitionFile(name string) bool {
	switch filepath.Base(name) {
	case "towers.json", "enemies.json", "waves.json":
		return true
	}
	return false
}
