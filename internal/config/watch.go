package config

import (
	"log"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the store whenever its backing file changes, letting
// operators retune physics constants without restarting the server. It
// blocks until stop is closed; call it from its own goroutine.
func (s *Store) Watch(stop <-chan struct{}) {
	if s.path == "" {
		return
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("[config] failed to start watcher, falling back to static tunables: %v", err)
		return
	}
	defer watcher.Close()

	if err := watcher.Add(s.path); err != nil {
		log.Printf("[config] failed to watch %s: %v", s.path, err)
		return
	}

	for {
		select {
		case <-stop:
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := s.reload(); err != nil {
				log.Printf("[config] reload of %s failed, keeping previous tunables: %v", s.path, err)
				continue
			}
			log.Printf("[config] reloaded tunables from %s", s.path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[config] watcher error: %v", err)
		}
	}
}
