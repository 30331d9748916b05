// Package watcher monitors the config file and fires a callback when it changes.
package watcher

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/Lakarti/archive-and-delete/internal/config"
	"github.com/Lakarti/archive-and-delete/internal/fsprobe"
	"github.com/Lakarti/archive-and-delete/internal/logging"
)

// Watcher observes one file and calls onChange when its mtime moves.
type Watcher struct {
	mu sync.RWMutex

	path     string
	mode     string
	interval time.Duration
	debounce time.Duration

	log logging.Logger

	lastModTime time.Time

	onChange func()
}

// New creates a watcher for path. The current mtime is the baseline, so an
// unchanged file never fires.
func New(cfg config.ReloadConfig, path string, log logging.Logger, onChange func()) *Watcher {
	w := &Watcher{
		path:     path,
		mode:     cfg.Method,
		interval: cfg.PollInterval,
		debounce: cfg.DebounceWindow,
		log:      log,
		onChange: onChange,
	}
	if w.interval <= 0 {
		w.interval = config.DefaultPollInterval
	}
	if info, err := os.Stat(path); err == nil {
		w.lastModTime = info.ModTime()
	}
	return w
}

// Start chooses the watching strategy and blocks until ctx is done.
func (w *Watcher) Start(ctx context.Context) error {
	switch w.mode {
	case "fsnotify":
		return w.StartFsNotify(ctx)

	case "poll":
		w.StartPolling(ctx)
		return nil

	case "auto":
		res := fsprobe.Probe(dirOf(w.path), fsprobe.DefaultTimeout)
		if res.FsnotifySupported {
			return w.StartFsNotify(ctx)
		}
		w.log.Warn("fsnotify disabled", "reason", res.Reason)
		w.StartPolling(ctx)
		return nil

	default:
		return fmt.Errorf("unknown mode %q", w.mode)
	}
}
