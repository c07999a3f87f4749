package config

import (
	"context"
	"log"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// Store holds the current configuration snapshot and swaps it atomically on
// reload. Readers always observe one fully-formed snapshot; a failed reload
// leaves the previous snapshot in place.
type Store struct {
	path     string
	snapshot atomic.Pointer[Config]
}

// NewStore loads the configuration at the given path and returns a Store
// serving it.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path: path,
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Get returns the current configuration snapshot. The returned Config must be
// treated as read-only.
func (s *Store) Get() *Config {
	return s.snapshot.Load()
}

// Reload re-reads the configuration file and publishes a new snapshot.
func (s *Store) Reload() error {
	config, err := Load(s.path)
	if err != nil {
		return err
	}
	s.snapshot.Store(config)
	return nil
}

// Watch reloads the store whenever the configuration file changes on disk. It
// blocks until the context is canceled or the underlying watcher fails.
// Editors commonly replace files by rename, so the watch is established on
// the file's directory rather than the file itself.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "error creating config watcher")
	}
	defer watcher.Close()
	if err = watcher.Add(filepath.Dir(s.path)); err != nil {
		return errors.Wrapf(
			err,
			"error watching directory of config file %s",
			s.path,
		)
	}
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("config watcher closed unexpectedly")
			}
			if event.Name != s.path ||
				!event.Op.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if err := s.Reload(); err != nil {
				log.Printf("error reloading config; keeping previous: %s", err)
				continue
			}
			log.Printf("reloaded config from %s", s.path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("config watcher closed unexpectedly")
			}
			return errors.Wrap(err, "error watching config file")
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
