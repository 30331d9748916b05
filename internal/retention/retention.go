// Package retention prunes stale and malformed date-named entries.
package retention

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Lakarti/archive-and-delete/internal/fs"
	"github.com/Lakarti/archive-and-delete/internal/logging"
)

// Reasons an entry gets pruned.
const (
	ReasonMalformed = "malformed"
	ReasonStale     = "stale"
)

type Sweeper struct {
	fs  fs.FS
	log logging.Logger
	now func() time.Time
}

func New(filesystem fs.FS, log logging.Logger) *Sweeper {
	if filesystem == nil {
		filesystem = fs.New()
	}
	return &Sweeper{
		fs:  filesystem,
		log: log,
		now: time.Now,
	}
}

// WithClock replaces the time source. Entry dates are interpreted in the
// location of the returned time.
func (s *Sweeper) WithClock(now func() time.Time) *Sweeper {
	s.now = now
	return s
}

type Pruned struct {
	Name   string
	Reason string
}

// Report lists what a sweep did, including partial work before an error.
type Report struct {
	Dir    string
	Kept   []string
	Pruned []Pruned
}

// Sweep deletes every immediate child of dir whose name is not a
// YYYY-MM-DD date or whose date is more than thresholdDays days old.
// The first filesystem error stops the sweep; entries already removed stay removed.
func (s *Sweeper) Sweep(ctx context.Context, dir string, thresholdDays int) (Report, error) {
	rep := Report{Dir: dir}
	if thresholdDays < 0 {
		return rep, fmt.Errorf("sweep %s: negative threshold %d", dir, thresholdDays)
	}

	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		return rep, fmt.Errorf("reading directory: %w", err)
	}

	now := s.now()
	maxAge := time.Duration(thresholdDays) * 24 * time.Hour

	for _, ent := range entries {
		if err := ctx.Err(); err != nil {
			return rep, err
		}

		name := ent.Name()
		full := filepath.Join(dir, name)

		c := Classify(name, now.Location())
		switch c.Kind {
		case Malformed:
			if err := s.fs.RemoveAll(full); err != nil {
				return rep, fmt.Errorf("removing %s: %w", full, err)
			}
			rep.Pruned = append(rep.Pruned, Pruned{Name: name, Reason: ReasonMalformed})
			s.log.Info("entry deleted: does not match the date format", "entry", name, "dir", dir)

		case Dated:
			if wallAge(now, c.Date) <= maxAge {
				rep.Kept = append(rep.Kept, name)
				continue
			}
			if err := s.fs.RemoveAll(full); err != nil {
				return rep, fmt.Errorf("removing %s: %w", full, err)
			}
			rep.Pruned = append(rep.Pruned, Pruned{Name: name, Reason: ReasonStale})
			s.log.Info("entry deleted: older than threshold",
				"entry", name, "dir", dir, "threshold_days", thresholdDays)
		}
	}

	return rep, nil
}

// wallAge is now minus then on the calendar, ignoring zone offset changes,
// so a DST shift never moves an entry across the threshold.
func wallAge(now, then time.Time) time.Duration {
	return wallClock(now).Sub(wallClock(then))
}

func wallClock(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
