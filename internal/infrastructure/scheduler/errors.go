package scheduler

import "errors"

var (
	// ErrInvalidSchedule is returned for a schedule that is not "minute hour * * *"
	ErrInvalidSchedule = errors.New("invalid daily schedule")

	// ErrNotRunning is returned when triggering a stopped trigger
	ErrNotRunning = errors.New("scheduler is not running")
)
