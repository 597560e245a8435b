package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// ReloadFunc receives a freshly loaded configuration.
type ReloadFunc func(*Config)

// ReloadErrorFunc receives errors from reading or validating a changed file.
type ReloadErrorFunc func(path string, err error)

// Watcher reloads the config file whenever it changes on disk. The parent
// directory is watched rather than the file itself so that editors which
// replace the file on save are still observed.
type Watcher struct {
	path    string
	dataDir string
	watcher *fsnotify.Watcher

	onReload ReloadFunc
	onError  ReloadErrorFunc

	mu    sync.Mutex
	timer *time.Timer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWatcher starts watching configPath. A missing file is not an error; it
// is picked up when created.
func NewWatcher(configPath, dataDir string, onReload ReloadFunc, onError ReloadErrorFunc) (*Watcher, error) {
	if configPath == "" {
		return nil, errors.New("config path is empty")
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     filepath.Clean(configPath),
		dataDir:  dataDir,
		watcher:  fw,
		onReload: onReload,
		onError:  onError,
		ctx:      ctx,
		cancel:   cancel,
	}

	w.wg.Add(1)
	go w.run()

	return w, nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	w.cancel()

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(w.path, err)
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(reloadDebounce, w.reload)
}

func (w *Watcher) reload() {
	if w.ctx.Err() != nil {
		return
	}

	if _, err := os.Stat(w.path); err != nil {
		// Rename-away half of an atomic save; the create that follows
		// triggers another reload.
		return
	}

	cfg, err := Load(w.path, w.dataDir)
	if err != nil {
		if w.onError != nil {
			w.onError(w.path, err)
		}
		return
	}

	if w.onReload != nil {
		w.onReload(cfg)
	}
}
