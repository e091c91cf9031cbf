// Package task implements the task ordering and lifecycle engine.
//
// A Store owns the canonical, insertion-ordered collection of tasks. It is
// the only mutator: every operation applies the status state machine, keeps
// checklist ids unique, and hands a snapshot of the whole collection to the
// configured Persistence. Reads always go through Order, so consumers see the
// collection sorted by status, due-date urgency, priority, and due date as of
// the moment of the read.
//
// The public API mirrors the CLI commands:
//   - Create, Update, UpdateStatus, Delete for the task lifecycle
//   - AddChecklistItem, ToggleChecklistItem for checklists
//   - List, ListAt, Get, Resolve for querying
//   - Reconcile, ExpireOverdue for the optional expiry policy
package task

import (
	"time"

	internalstrings "github.com/amonks/routine/internal/strings"
	"github.com/amonks/routine/internal/validation"
)

// Status represents the state of a task.
type Status string

const (
	// StatusTodo indicates the task has not been started.
	StatusTodo Status = "todo"

	// StatusInProgress indicates the task is currently being worked on.
	StatusInProgress Status = "in_progress"

	// StatusDone indicates the task has been completed.
	StatusDone Status = "done"
)

// ValidStatuses returns all valid status values.
func ValidStatuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusDone}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	for _, valid := range ValidStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// ParseStatus parses a user-supplied status name. It accepts the stored
// names plus a few spellings people type ("in-progress", "doing").
func ParseStatus(value string) (Status, error) {
	switch internalstrings.NormalizeLowerTrimSpace(value) {
	case "todo", "open":
		return StatusTodo, nil
	case "in_progress", "in-progress", "inprogress", "doing", "started":
		return StatusInProgress, nil
	case "done", "complete", "completed":
		return StatusDone, nil
	}
	return "", validation.FormatInvalidValueError(ErrInvalidStatus, Status(value), ValidStatuses())
}

// StatusWeight is the scheduling weight of a status. Lower sorts first.
func StatusWeight(s Status) int {
	switch s {
	case StatusInProgress:
		return 1
	case StatusTodo:
		return 2
	case StatusDone:
		return 3
	default:
		return 2
	}
}

// Priority is the importance of a task.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium" // default
	PriorityLow    Priority = "low"
)

// ValidPriorities returns all valid priority values, most important first.
func ValidPriorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// IsValid returns true if the priority is a known valid value.
func (p Priority) IsValid() bool {
	for _, valid := range ValidPriorities() {
		if p == valid {
			return true
		}
	}
	return false
}

// ParsePriority parses a user-supplied priority name.
func ParsePriority(value string) (Priority, error) {
	switch internalstrings.NormalizeLowerTrimSpace(value) {
	case "high", "h", "1":
		return PriorityHigh, nil
	case "medium", "med", "m", "2":
		return PriorityMedium, nil
	case "low", "l", "3":
		return PriorityLow, nil
	}
	return "", validation.FormatInvalidValueError(ErrInvalidPriority, Priority(value), ValidPriorities())
}

// PriorityWeight is the scheduling weight of a priority. Lower sorts first.
// Unknown and missing priorities weigh as PriorityMedium.
func PriorityWeight(p Priority) int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityLow:
		return 3
	default:
		return 2
	}
}

// PriorityPtr returns a pointer to the provided priority.
func PriorityPtr(p Priority) *Priority {
	return &p
}

// ChecklistItem is one entry of a task's checklist.
type ChecklistItem struct {
	// ID is unique within the owning task.
	ID string `json:"id"`

	// Text is the item label. It may be blank when a producer supplied one.
	Text string `json:"text"`

	// Completed reports whether the item is checked off.
	Completed bool `json:"completed"`
}

// Task is a single unit of work.
type Task struct {
	// ID is unique for the lifetime of the store.
	ID string `json:"id"`

	// Text is the trimmed, non-empty summary.
	Text string `json:"text"`

	// Status is the current state of the task.
	Status Status `json:"status"`

	// CreatedAt is when the task was created. It never changes.
	CreatedAt time.Time `json:"createdAt"`

	// StartedAt is when the task first entered in_progress (nil if never).
	StartedAt *time.Time `json:"startedAt,omitempty"`

	// CompletedAt is when the task became done (nil unless done).
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	// DueDate is when the task is due (nil if it has no due date).
	DueDate *time.Time `json:"dueDate,omitempty"`

	// Priority is the importance level.
	Priority Priority `json:"priority"`

	// Checklist is ordered by insertion.
	Checklist []ChecklistItem `json:"checklist"`
}

// Clone returns a deep copy of t.
func (t Task) Clone() Task {
	out := t
	out.StartedAt = cloneTime(t.StartedAt)
	out.CompletedAt = cloneTime(t.CompletedAt)
	out.DueDate = cloneTime(t.DueDate)
	out.Checklist = append([]ChecklistItem{}, t.Checklist...)
	return out
}

// ChecklistProgress returns the number of completed items and the total.
func (t Task) ChecklistProgress() (done, total int) {
	for _, item := range t.Checklist {
		if item.Completed {
			done++
		}
	}
	return done, len(t.Checklist)
}

func cloneTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}

func timePtr(value time.Time) *time.Time {
	return &value
}
