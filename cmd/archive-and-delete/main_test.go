package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Lakarti/archive-and-delete/internal/config"
	"github.com/Lakarti/archive-and-delete/internal/logging"
)

func TestConfigPath(t *testing.T) {
	t.Setenv(configEnv, "")
	if got := configPath(); got != "config.yaml" {
		t.Errorf("default path = %q", got)
	}

	t.Setenv(configEnv, "/etc/archive-and-delete.yaml")
	if got := configPath(); got != "/etc/archive-and-delete.yaml" {
		t.Errorf("env path = %q", got)
	}
}

func TestRunOnceSurvivesMissingDirectories(t *testing.T) {
	root := t.TempDir()
	orders := filepath.Join(root, "orders")
	if err := os.Mkdir(orders, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(orders, "a.pdf"), []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Sweeps = []config.SweepConfig{{Path: filepath.Join(root, "missing")}}
	cfg.Consolidation.Path = orders

	runOnce(cfg, logging.Discard())

	if _, err := os.Stat(filepath.Join(orders, "a.pdf")); !os.IsNotExist(err) {
		t.Fatal("consolidation skipped after failed sweep")
	}

	w := newWorker(cfg, logging.Discard(), nil, nil)
	if res := w.Run(context.Background()); res.Err == nil {
		t.Fatal("expected the missing directory to be reported")
	}
}
