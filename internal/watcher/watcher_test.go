package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Lakarti/archive-and-delete/internal/config"
	"github.com/Lakarti/archive-and-delete/internal/logging"
)

func writeConfig(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	if err := os.WriteFile(path, []byte("schedule: \"@daily\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
}

func waitFor(t *testing.T, n *atomic.Int32, want int32) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for n.Load() < want {
		if time.Now().After(deadline) {
			t.Fatalf("onChange called %d times, want %d", n.Load(), want)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestDetectIgnoresUnchangedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, time.Now().Add(-time.Hour))

	var n atomic.Int32
	w := New(config.ReloadConfig{Method: "poll"}, path, logging.Discard(), func() { n.Add(1) })

	w.detect()
	if n.Load() != 0 {
		t.Fatal("fired for unchanged file")
	}

	writeConfig(t, path, time.Now())
	w.detect()
	w.detect()
	if n.Load() != 1 {
		t.Fatalf("fired %d times, want 1", n.Load())
	}
}

func TestPollingFiresOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, time.Now().Add(-time.Hour))

	var n atomic.Int32
	cfg := config.ReloadConfig{Method: "poll", PollInterval: 10 * time.Millisecond}
	w := New(cfg, path, logging.Discard(), func() { n.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Start(ctx) }()

	writeConfig(t, path, time.Now())
	waitFor(t, &n, 1)
}

func TestFsNotifyFiresOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeConfig(t, path, time.Now().Add(-time.Hour))

	var n atomic.Int32
	cfg := config.ReloadConfig{Method: "fsnotify", DebounceWindow: 20 * time.Millisecond}
	w := New(cfg, path, logging.Discard(), func() { n.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- w.Start(ctx) }()

	// give the watch time to register before writing
	time.Sleep(50 * time.Millisecond)
	select {
	case err := <-errCh:
		t.Skipf("fsnotify unavailable: %v", err)
	default:
	}

	writeConfig(t, path, time.Now())
	waitFor(t, &n, 1)
}

func TestStartUnknownMode(t *testing.T) {
	w := New(config.ReloadConfig{Method: "inotify"}, "config.yaml", logging.Discard(), func() {})
	if err := w.Start(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
