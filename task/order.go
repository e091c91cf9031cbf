package task

import (
	"sort"
	"time"
)

// UrgentWindow is how far ahead a due date counts as urgent.
const UrgentWindow = 8 * time.Hour

// Urgency groups tasks by how soon they are due. Lower sorts first.
type Urgency int

const (
	UrgencyOverdue Urgency = iota
	UrgencyUrgent
	UrgencyLater
	UrgencyNone
)

// String returns the display name of the urgency group.
func (u Urgency) String() string {
	switch u {
	case UrgencyOverdue:
		return "overdue"
	case UrgencyUrgent:
		return "urgent"
	case UrgencyLater:
		return "later"
	default:
		return "none"
	}
}

// UrgencyOf computes the urgency group of t relative to now. A due date at
// or before now is overdue; one within UrgentWindow after now is urgent.
func UrgencyOf(t Task, now time.Time) Urgency {
	if t.DueDate == nil {
		return UrgencyNone
	}
	until := t.DueDate.Sub(now)
	switch {
	case until <= 0:
		return UrgencyOverdue
	case until < UrgentWindow:
		return UrgencyUrgent
	default:
		return UrgencyLater
	}
}

// Compare orders two tasks as of now. It returns a negative number when a
// sorts before b, a positive number when b sorts before a, and zero on a
// full tie. The levels are, in order: status weight, urgency group (skipped
// for done tasks), priority weight, and due date (dated before undated,
// earlier before later).
func Compare(a, b Task, now time.Time) int {
	if d := StatusWeight(a.Status) - StatusWeight(b.Status); d != 0 {
		return d
	}

	if a.Status != StatusDone {
		if d := int(UrgencyOf(a, now)) - int(UrgencyOf(b, now)); d != 0 {
			return d
		}
	}

	if d := PriorityWeight(a.Priority) - PriorityWeight(b.Priority); d != 0 {
		return d
	}

	switch {
	case a.DueDate != nil && b.DueDate == nil:
		return -1
	case a.DueDate == nil && b.DueDate != nil:
		return 1
	case a.DueDate != nil && b.DueDate != nil:
		return a.DueDate.Compare(*b.DueDate)
	}

	return 0
}

// Order returns a sorted copy of tasks as of now. Full ties keep their
// relative input order. tasks is not modified.
func Order(tasks []Task, now time.Time) []Task {
	ordered := make([]Task, len(tasks))
	copy(ordered, tasks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return Compare(ordered[i], ordered[j], now) < 0
	})
	return ordered
}
