package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Lakarti/archive-and-delete/internal/archive"
	"github.com/Lakarti/archive-and-delete/internal/config"
	"github.com/Lakarti/archive-and-delete/internal/logging"
	"github.com/Lakarti/archive-and-delete/internal/mailbox"
	"github.com/Lakarti/archive-and-delete/internal/metrics"
	"github.com/Lakarti/archive-and-delete/internal/retention"
	"github.com/Lakarti/archive-and-delete/internal/schedule"
	"github.com/Lakarti/archive-and-delete/internal/watcher"
	"github.com/Lakarti/archive-and-delete/internal/worker"
)

const configEnv = "ARCHIVE_AND_DELETE_CONFIG"

func configPath() string {
	if p := os.Getenv(configEnv); p != "" {
		return p
	}
	return "config.yaml"
}

func main() {
	cfgPath := configPath()

	// Load config
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Logger
	logg, err := logging.Init(cfg.Logging)
	if err != nil {
		log.Fatalf("failed to initialise logging: %v", err)
	}
	defer logging.Close()

	if cfg.Schedule == "" {
		runOnce(cfg, logg)
		return
	}

	if err := runDaemon(cfgPath, cfg, logg); err != nil {
		logg.Error("daemon failed", "error", err)
	}
}

// runOnce performs a single housekeeping pass. Component failures are in
// the log; the process still exits 0.
func runOnce(cfg *config.Config, logg *slog.Logger) {
	w := newWorker(cfg, logg, nil, nil)
	res := w.Run(context.Background())
	if res.Err != nil {
		logg.Warn("housekeeping finished with errors", "run_id", res.RunID)
	}
}

func newWorker(cfg *config.Config, logg *slog.Logger, mb *mailbox.Mailbox[worker.Job], m *metrics.Metrics) *worker.Worker {
	sweeper := retention.New(nil, logg)
	consolidator := archive.New(nil, logg)
	return worker.New(cfg, logg, sweeper, consolidator, mb, m)
}

func runDaemon(cfgPath string, cfg *config.Config, logg *slog.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logg.Info("shutting down")
		cancel()
	}()

	var m *metrics.Metrics
	if cfg.Metrics.Listen != "" {
		reg := prometheus.NewRegistry()
		m = metrics.New(reg)
		go serveMetrics(ctx, cfg.Metrics.Listen, reg, logg)
	}

	// Mailbox for housekeeping jobs
	mb := mailbox.New[worker.Job]()
	w := newWorker(cfg, logg, mb, m)

	sched := schedule.New(cfg.Schedule, logg, func() { w.Enqueue("schedule") })
	if err := sched.Start(ctx); err != nil {
		return err
	}

	reload := func() {
		newCfg, err := config.Load(cfgPath)
		if err != nil {
			logg.Error("config reload failed", "error", err)
			return
		}
		w.UpdateConfig(newCfg)
		logg.Info("config reloaded")
	}

	// Hot reload on SIGHUP
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGHUP)
		for {
			select {
			case <-ctx.Done():
				return
			case <-sigCh:
				reload()
			}
		}
	}()

	if cfg.ConfigReload.Enabled {
		watch := watcher.New(cfg.ConfigReload, cfgPath, logg, reload)
		go func() {
			if err := watch.Start(ctx); err != nil {
				logg.Error("config watcher failed", "error", err)
			}
		}()
	}

	w.Enqueue("startup")
	w.Start(ctx)
	return nil
}

func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry, logg *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(reg))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logg.Info("metrics listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logg.Error("metrics server failed", "error", err)
	}
}
