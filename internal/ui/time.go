package ui

import (
	"fmt"
	"time"

	internalage "github.com/amonks/routine/internal/age"
	"github.com/amonks/routine/task"
)

// DueLayout is the absolute form used for due dates.
const DueLayout = "2006-01-02 15:04"

// FormatTaskAge returns how long ago item was created, like "2m ago", or
// "-" when the creation time is unknown.
func FormatTaskAge(item task.Task, now time.Time) string {
	age, ok := task.AgeData(item, now)
	if !ok {
		return "-"
	}
	return FormatDurationShort(age) + " ago"
}

// FormatDue describes a due date relative to now: "in 3h" or "2h overdue".
func FormatDue(due *time.Time, now time.Time) string {
	if due == nil {
		return "-"
	}
	until := internalage.Until(*due, now)
	if until <= 0 {
		return FormatDurationShort(-until) + " overdue"
	}
	return "in " + FormatDurationShort(until)
}

// FormatTimestamp prints t in the local zone, or "-" when unset.
func FormatTimestamp(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Local().Format(DueLayout)
}

// FormatDurationShort formats a duration using short units (s/m/h/d).
func FormatDurationShort(duration time.Duration) string {
	if duration < 0 {
		duration = 0
	}

	duration = duration.Truncate(time.Second)
	seconds := int64(duration.Seconds())
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}

	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}

	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh", hours)
	}

	days := hours / 24
	return fmt.Sprintf("%dd", days)
}

