// Package scheduler runs in-process daily jobs such as the overdue sweep.
package scheduler

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseDailySchedule reads the hour and minute of a daily cron expression
// ("30 2 * * *" runs at 02:30). Only the first two fields are honoured and
// both must be numbers. An empty expression means 00:05.
func ParseDailySchedule(expr string) (hour, minute int, err error) {
	parts := strings.Fields(expr)
	if len(parts) == 0 {
		return 0, 5, nil
	}
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSchedule, expr)
	}

	minute, err = strconv.Atoi(parts[0])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: minute %q", ErrInvalidSchedule, parts[0])
	}
	hour, err = strconv.Atoi(parts[1])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w: hour %q", ErrInvalidSchedule, parts[1])
	}
	return hour, minute, nil
}
