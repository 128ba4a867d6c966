package library

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/jsphweid/buzzer/logger"
	"github.com/jsphweid/buzzer/score"
	"github.com/jsphweid/buzzer/util"
)

var extensions = []string{".yaml", ".yml", ".json", ".mid", ".midi"}

// Dir keeps melodies as files in a directory. Tables are indexed by name
// (their name field, or the file name), and only the index is cached.
type Dir struct {
	path string

	mu    sync.RWMutex
	index map[string]string
}

func NewDir(path string) (*Dir, error) {
	if err := util.EnsureDir(path); err != nil {
		return nil, fmt.Errorf("could not create library dir: %w", err)
	}
	d := &Dir{path: path}
	if err := d.Reload(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dir) Reload() error {
	paths, err := util.GatherPaths(d.path, extensions...)
	if err != nil {
		return fmt.Errorf("could not scan library dir: %w", err)
	}
	index := make(map[string]string)
	for _, p := range paths {
		t, err := score.Load(p)
		if err != nil {
			logger.Warn("skipping melody file", logger.String("path", p), logger.ErrorField(err))
			continue
		}
		if prev, ok := index[t.Name]; ok {
			logger.Warn("duplicate melody name", logger.String("name", t.Name),
				logger.String("kept", prev), logger.String("ignored", p))
			continue
		}
		index[t.Name] = p
	}

	d.mu.Lock()
	d.index = index
	d.mu.Unlock()
	logger.Debug("library reloaded", logger.String("path", d.path), logger.Int("melodies", len(index)))
	return nil
}

func (d *Dir) List(_ context.Context) ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return util.SortedKeys(d.index), nil
}

func (d *Dir) lookup(name string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	p, ok := d.index[name]
	return p, ok
}

func (d *Dir) Get(_ context.Context, name string) (*score.Table, error) {
	p, ok := d.lookup(name)
	if !ok {
		return nil, ErrNotFound
	}
	t, err := score.Load(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Put writes t as <name>.yaml, replacing whatever file held that name.
func (d *Dir) Put(_ context.Context, t *score.Table) error {
	if err := ValidateName(t.Name); err != nil {
		return err
	}
	p := filepath.Join(d.path, t.Name+".yaml")

	d.mu.Lock()
	defer d.mu.Unlock()
	if old, ok := d.index[t.Name]; ok && old != p {
		if err := os.Remove(old); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("could not replace %v: %w", old, err)
		}
	}
	if err := score.Save(p, t); err != nil {
		return err
	}
	d.index[t.Name] = p
	return nil
}

func (d *Dir) Delete(_ context.Context, name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.index[name]
	if !ok {
		return ErrNotFound
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("could not delete %v: %w", p, err)
	}
	delete(d.index, name)
	return nil
}

// Watch reloads the index whenever files change, until ctx is done.
// Bursts of events (editors writing temp files) cause a single reload.
func (d *Dir) Watch(ctx context.Context, wait time.Duration) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(d.path); err != nil {
		return fmt.Errorf("could not watch %v: %w", d.path, err)
	}

	debounced := debounce.New(wait)
	reload := func() {
		if err := d.Reload(); err != nil {
			logger.Error("library reload failed", logger.ErrorField(err))
		}
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			logger.Debug("library changed", logger.String("file", event.Name), logger.String("op", event.Op.String()))
			debounced(reload)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("library watcher error", logger.ErrorField(err))
		}
	}
}
