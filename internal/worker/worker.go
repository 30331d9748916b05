// Package worker runs housekeeping: every retention sweep, then the consolidation.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Lakarti/archive-and-delete/internal/archive"
	"github.com/Lakarti/archive-and-delete/internal/config"
	"github.com/Lakarti/archive-and-delete/internal/logging"
	"github.com/Lakarti/archive-and-delete/internal/mailbox"
	"github.com/Lakarti/archive-and-delete/internal/metrics"
	"github.com/Lakarti/archive-and-delete/internal/retention"
)

// Worker executes housekeeping runs one at a time.
type Worker struct {
	mu            sync.RWMutex
	sweeps        []config.SweepConfig
	consolidation config.ConsolidationConfig

	log          logging.Logger
	sweeper      *retention.Sweeper
	consolidator *archive.Consolidator
	metrics      *metrics.Metrics
	mb           *mailbox.Mailbox[Job]
}

// New creates a worker for cfg. m may be nil.
func New(cfg *config.Config, log logging.Logger, s *retention.Sweeper, c *archive.Consolidator, mb *mailbox.Mailbox[Job], m *metrics.Metrics) *Worker {
	log.Debug("creating worker")
	return &Worker{
		sweeps:        append([]config.SweepConfig(nil), cfg.Sweeps...),
		consolidation: cfg.Consolidation,
		log:           log,
		sweeper:       s,
		consolidator:  c,
		metrics:       m,
		mb:            mb,
	}
}

// Result describes one housekeeping run. Err joins every component failure.
type Result struct {
	RunID         string
	Sweeps        []retention.Report
	Consolidation archive.Report
	Err           error
}

// Start runs the worker loop using mailbox semantics until ctx is done.
func (w *Worker) Start(ctx context.Context) {
	w.log.Info("starting worker")
	for {
		job, ok := w.mb.Take(ctx)
		if !ok {
			w.log.Info("worker stopped")
			return
		}
		w.log.Debug("job taken", "trigger", job.Trigger, "requested", job.Requested)
		w.Run(ctx)
	}
}

// Enqueue posts a job for trigger. A job still waiting in the mailbox is
// replaced, so bursts of triggers collapse into one run.
func (w *Worker) Enqueue(trigger string) (coalesced bool) {
	coalesced = w.mb.Put(Job{Trigger: trigger, Requested: time.Now()})
	if coalesced {
		w.log.Debug("pending run coalesced", "trigger", trigger)
	}
	return coalesced
}

// Run performs one housekeeping pass. A failing sweep is logged and the
// remaining components still run.
func (w *Worker) Run(ctx context.Context) Result {
	w.mu.RLock()
	sweeps := w.sweeps
	cons := w.consolidation
	w.mu.RUnlock()

	res := Result{RunID: uuid.NewString()}
	start := time.Now()
	w.log.Info("housekeeping run started", "run_id", res.RunID)

	var errs []error
	for _, s := range sweeps {
		rep, err := w.sweeper.Sweep(ctx, s.Path, s.Threshold())
		res.Sweeps = append(res.Sweeps, rep)
		for _, p := range rep.Pruned {
			w.metrics.Pruned(p.Reason)
		}
		if err != nil {
			w.log.Error("An error occurred", "run_id", res.RunID, "dir", s.Path, "error", err)
			errs = append(errs, fmt.Errorf("sweep %s: %w", s.Path, err))
		}
	}

	if cons.Path != "" {
		rep, err := w.consolidator.Consolidate(ctx, cons.Path, cons.Extension)
		res.Consolidation = rep
		w.metrics.Archived(len(rep.Archived))
		if err != nil {
			w.log.Error("An error occurred while creating archives", "run_id", res.RunID, "dir", cons.Path, "error", err)
			errs = append(errs, err)
		}
	}

	res.Err = errors.Join(errs...)
	w.metrics.RunFinished(res.Err != nil)
	w.log.Info("housekeeping run finished",
		"run_id", res.RunID,
		"duration", time.Since(start),
		"pruned", res.pruned(),
		"archived", len(res.Consolidation.Archived),
		"failed", res.Err != nil,
	)
	return res
}

func (r Result) pruned() int {
	n := 0
	for _, s := range r.Sweeps {
		n += len(s.Pruned)
	}
	return n
}

// UpdateConfig hot-reloads the directories; an in-flight run keeps the old ones.
func (w *Worker) UpdateConfig(cfg *config.Config) {
	w.log.Debug("entering Worker.UpdateConfig()")
	w.mu.Lock()
	w.sweeps = append([]config.SweepConfig(nil), cfg.Sweeps...)
	w.consolidation = cfg.Consolidation
	w.mu.Unlock()
}
