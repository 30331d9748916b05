// Package schedule triggers housekeeping runs on a cron expression.
package schedule

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/Lakarti/archive-and-delete/internal/logging"
)

// Scheduler calls post on every tick of a standard 5-field cron expression.
// post must not block; the driver hands it a mailbox Put.
type Scheduler struct {
	expr    string
	post    func()
	log     logging.Logger
	mu      sync.Mutex
	cron    *cron.Cron
	running bool
}

func New(expr string, log logging.Logger, post func()) *Scheduler {
	return &Scheduler{
		expr: expr,
		post: post,
		log:  log,
	}
}

// Validate reports whether expr is a usable schedule.
func Validate(expr string) error {
	if _, err := cron.ParseStandard(expr); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", expr, err)
	}
	return nil
}

// Start registers the job and runs cron until ctx is done or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}
	if err := Validate(s.expr); err != nil {
		return err
	}

	c := cron.New()
	if _, err := c.AddFunc(s.expr, s.tick); err != nil {
		return fmt.Errorf("failed to schedule housekeeping: %w", err)
	}
	c.Start()
	s.cron = c
	s.running = true

	s.log.Info("scheduler started", "schedule", s.expr)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	return nil
}

func (s *Scheduler) tick() {
	s.log.Debug("schedule fired", "schedule", s.expr)
	s.post()
}

// Stop stops the scheduler and waits for a running tick to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil || !s.running {
		return
	}
	<-s.cron.Stop().Done()
	s.running = false
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) isRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
