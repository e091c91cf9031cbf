package task

import (
	"time"

	internalage "github.com/amonks/routine/internal/age"
)

// AgeData computes the display age and whether timing data exists.
func AgeData(item Task, now time.Time) (time.Duration, bool) {
	return internalage.AgeData(item.CreatedAt, now)
}

// DurationData computes how long the task has been (or was) worked on.
func DurationData(item Task, now time.Time) (time.Duration, bool) {
	startedAt := time.Time{}
	if item.StartedAt != nil {
		startedAt = *item.StartedAt
	}

	completedAt := time.Time{}
	if item.CompletedAt != nil {
		completedAt = *item.CompletedAt
	}

	switch item.Status {
	case StatusInProgress:
		return internalage.DurationData(startedAt, time.Time{}, true, now)
	case StatusDone:
		return internalage.DurationData(startedAt, completedAt, false, now)
	}
	return 0, false
}
