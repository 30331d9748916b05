package worker

import (
	"time"
)

// Job asks the worker for one housekeeping run.
type Job struct {
	Trigger   string // "startup", "schedule", "reload"
	Requested time.Time
}
