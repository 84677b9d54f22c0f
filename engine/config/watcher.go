package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce is the quiet period after the last write before the file is reloaded.
const debounce = 100 * time.Millisecond

// Watcher reloads a scene file whenever it changes on disk.
// Successfully parsed configs arrive on Updates; decode and validation
// failures arrive on Errors and leave the caller's current config in place.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string

	Updates chan *Config
	Errors  chan error

	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher watches path. The parent directory is watched so that editors
// replacing the file by rename are still seen.
//
// Parameters:
//   - path: the scene file to watch
//
// Returns:
//   - *Watcher: the running watcher, call Close when done
//   - error: if the file format is unknown or the directory cannot be watched
func NewWatcher(path string) (*Watcher, error) {
	if _, err := FormatFor(path); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("config: watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		watcher: fw,
		path:    abs,
		Updates: make(chan *Config, 4),
		Errors:  make(chan error, 4),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Poll returns the newest pending config, or nil, and the first pending error.
// It never blocks, so the frame loop can call it every frame.
//
// Returns:
//   - *Config: the most recent reload, nil if none arrived
//   - error: a reload failure, nil if none arrived
func (w *Watcher) Poll() (*Config, error) {
	var latest *Config
	for drained := false; !drained; {
		select {
		case cfg, ok := <-w.Updates:
			if !ok {
				drained = true
				break
			}
			latest = cfg
		default:
			drained = true
		}
	}

	var err error
	select {
	case e, ok := <-w.Errors:
		if ok {
			err = e
		}
	default:
	}
	return latest, err
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Updates)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if name, err := filepath.Abs(event.Name); err != nil || name != w.path {
				continue
			}
			timer.Reset(debounce)
		case <-timer.C:
			cfg, err := Load(w.path)
			if err != nil {
				w.send(nil, err)
				continue
			}
			w.send(cfg, nil)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.send(nil, err)
		case <-w.closeCh:
			return
		}
	}
}

// send delivers without blocking past Close.
func (w *Watcher) send(cfg *Config, err error) {
	if err != nil {
		select {
		case w.Errors <- err:
		case <-w.closeCh:
		}
		return
	}
	select {
	case w.Updates <- cfg:
	case <-w.closeCh:
	}
}
