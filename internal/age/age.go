// Package age computes display ages and durations.
package age

import "time"

// AgeData returns how long ago then was, and whether then is set.
// Future times clamp to zero.
func AgeData(then time.Time, now time.Time) (time.Duration, bool) {
	if then.IsZero() {
		return 0, false
	}
	return clamp(now.Sub(then)), true
}

// DurationData computes how long work took. Active work runs until now;
// finished work runs until completedAt. ok is false without timing data.
func DurationData(startedAt time.Time, completedAt time.Time, active bool, now time.Time) (time.Duration, bool) {
	if startedAt.IsZero() {
		return 0, false
	}
	if active {
		return clamp(now.Sub(startedAt)), true
	}
	if completedAt.IsZero() {
		return 0, false
	}
	return clamp(completedAt.Sub(startedAt)), true
}

// Until returns the signed time from now until then.
func Until(then time.Time, now time.Time) time.Duration {
	return then.Sub(now)
}

func clamp(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
