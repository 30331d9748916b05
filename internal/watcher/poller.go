package watcher

import (
	"context"
	"time"
)

// StartPolling compares the config file's mtime every interval. It is the
// fallback for mounts where fsnotify events never arrive.
func (w *Watcher) StartPolling(ctx context.Context) {
	w.mu.RLock()
	interval := w.interval
	path := w.path
	w.mu.RUnlock()

	w.log.Info("polling config file", "path", path, "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.detect()
		}
	}
}
