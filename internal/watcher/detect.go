package watcher

import (
	"os"
	"path/filepath"
)

// detect fires onChange if the watched file's mtime differs from the last seen one.
func (w *Watcher) detect() {
	w.mu.RLock()
	path := w.path
	last := w.lastModTime
	w.mu.RUnlock()

	info, err := os.Stat(path)
	if err != nil {
		w.log.Debug("watched file unavailable", "path", path, "error", err)
		return
	}

	mod := info.ModTime()
	if mod.Equal(last) {
		return
	}

	w.mu.Lock()
	w.lastModTime = mod
	w.mu.Unlock()

	w.log.Info("config file changed", "path", path)
	w.onChange()
}

func dirOf(path string) string {
	return filepath.Dir(path)
}
