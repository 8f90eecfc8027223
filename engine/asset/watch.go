package asset

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

func (s *server) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("asset: create watcher: %w", err)
	}
	defer w.Close()

	s.mu.Lock()
	if s.watcher != nil {
		s.mu.Unlock()
		return errors.New("asset: already watching")
	}
	s.watcher = w
	dirs := make(map[string]bool)
	for path := range s.handles {
		dirs[filepath.Dir(s.abs(path))] = true
	}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.watcher = nil
		s.watched = make(map[string]bool)
		for _, t := range s.debounce {
			t.Stop()
		}
		s.debounce = make(map[string]*time.Timer)
		s.mu.Unlock()
	}()

	for dir := range dirs {
		s.watchDir(w, dir)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				s.schedule(ev.Name)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Printf("asset: watch error: %v", err)
		}
	}
}

func (s *server) watchDir(w *fsnotify.Watcher, dir string) {
	s.mu.Lock()
	if s.watched[dir] {
		s.mu.Unlock()
		return
	}
	s.watched[dir] = true
	s.mu.Unlock()

	if err := w.Add(dir); err != nil {
		s.logger.Printf("asset: watch %s: %v", dir, err)
	}
}

// schedule debounces a change: the reload runs once the file has been quiet for watchDelay.
func (s *server) schedule(absPath string) {
	rel, err := filepath.Rel(s.root, absPath)
	if err != nil {
		return
	}
	path := filepath.ToSlash(rel)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.handles[path]; !ok {
		return
	}
	if t, ok := s.debounce[path]; ok {
		t.Reset(s.watchDelay)
		return
	}
	s.debounce[path] = time.AfterFunc(s.watchDelay, func() {
		s.mu.Lock()
		delete(s.debounce, path)
		s.mu.Unlock()
		s.Reload(path)
	})
}
