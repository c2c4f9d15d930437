package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/fsnotify/fsnotify"
)

// Subscribe registers a listener for externally caused state changes.
// The channel is buffered; a slow listener misses intermediate states but
// always eventually observes the latest one delivered.
func (s *Store) Subscribe() <-chan State {
	ch := make(chan State, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

// Watch observes the session file for changes made by other running
// instances and re-derives the local state without requiring a restart,
// the CLI counterpart of the browser's cross-tab storage events.
//
// The parent directory is watched rather than the file: logout removes the
// file, and atomic writes replace it, both of which would silently drop a
// file-level watch. Events are attributed by name, and subscribers are only
// notified when the re-derived state actually differs, so a process's own
// writes are naturally ignored.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting session watcher: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		watcher.Close()
		return err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != filepath.Base(s.path) {
					continue
				}
				if !ev.Has(fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename) {
					continue
				}
				s.reloadAndNotify(ctx)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.log.Warn(ctx, "session watcher error", "err", err)
			}
		}
	}()

	return nil
}

func (s *Store) reloadAndNotify(ctx context.Context) {
	s.mu.Lock()
	old := s.state
	s.state = s.read()
	changed := !old.equal(s.state)
	st := s.state
	subs := slices.Clone(s.subs)
	s.mu.Unlock()

	if !changed {
		return
	}
	s.log.Info(ctx, "session changed externally", "authenticated", st.Authenticated())

	for _, ch := range subs {
		// Drop the stale value if the listener hasn't consumed it yet.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- st:
		default:
		}
	}
}
