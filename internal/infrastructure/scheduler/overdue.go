package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// OverdueMarker flips PENDING bills past their due date to OVERDUE
type OverdueMarker interface {
	MarkOverdue(ctx context.Context) (int64, error)
}

// StatsInvalidator drops cached dashboard statistics
type StatsInvalidator interface {
	InvalidateAdminStats(ctx context.Context)
}

// NewOverdueSweep builds the daily overdue sweep. stats may be nil.
func NewOverdueSweep(schedule string, loc *time.Location, bills OverdueMarker, stats StatsInvalidator, logger *zap.Logger) (*DailyTrigger, error) {
	hour, minute, err := ParseDailySchedule(schedule)
	if err != nil {
		return nil, err
	}
	job := func(ctx context.Context) error {
		n, err := bills.MarkOverdue(ctx)
		if err != nil {
			return err
		}
		if n > 0 && stats != nil {
			stats.InvalidateAdminStats(ctx)
		}
		logger.Info("Overdue sweep finished", zap.Int64("bills", n))
		return nil
	}
	return NewDailyTrigger(DailyTriggerConfig{
		Name:          "overdue-sweep",
		Hour:          hour,
		Minute:        minute,
		Location:      loc,
		CheckInterval: time.Minute,
		Timeout:       5 * time.Minute,
	}, job, logger), nil
}
