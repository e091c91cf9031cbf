package task

import (
	"time"

	internalstrings "github.com/amonks/routine/internal/strings"
)

// CreateInput describes a new task.
type CreateInput struct {
	// Text is required; it is trimmed before use.
	Text string

	// DueDate is optional.
	DueDate *time.Time

	// Checklist becomes the item texts in order. Blank entries are kept;
	// filtering them is the producer's job.
	Checklist []string

	// Priority defaults to PriorityMedium when empty.
	Priority Priority
}

// New builds a task in StatusTodo. ok is false when the text is blank.
func New(id string, input CreateInput, ids IDGenerator, now time.Time) (Task, bool) {
	text := internalstrings.TrimSpace(input.Text)
	if text == "" {
		return Task{}, false
	}
	priority := input.Priority
	if !priority.IsValid() {
		priority = PriorityMedium
	}
	return Task{
		ID:        id,
		Text:      text,
		Status:    StatusTodo,
		CreatedAt: now,
		DueDate:   cloneTime(input.DueDate),
		Priority:  priority,
		Checklist: buildChecklist(input.Checklist, ids),
	}, true
}

// ApplyStatus moves t into status. Transitions are unrestricted:
//   - entering in_progress sets StartedAt only if it was never set
//   - entering done always stamps CompletedAt with now
//   - any non-done status clears CompletedAt
func ApplyStatus(t Task, status Status, now time.Time) Task {
	out := t.Clone()
	out.Status = status

	if status == StatusInProgress && out.StartedAt == nil {
		out.StartedAt = timePtr(now)
	}

	if status == StatusDone {
		out.CompletedAt = timePtr(now)
	} else {
		out.CompletedAt = nil
	}

	return out
}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	// Text replaces the text when it is non-blank after trimming.
	Text *string

	// DueDate replaces the due date.
	DueDate *time.Time

	// ClearDueDate removes the due date. It wins over DueDate.
	ClearDueDate bool

	// ChecklistItem appends a new item when non-blank after trimming.
	ChecklistItem *string

	// Priority replaces the priority when valid.
	Priority *Priority
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Text == nil && p.DueDate == nil && !p.ClearDueDate && p.ChecklistItem == nil && p.Priority == nil
}

// ApplyPatch returns t with the patch applied.
func ApplyPatch(t Task, patch Patch, ids IDGenerator) Task {
	out := t.Clone()
	if patch.Text != nil {
		if text := internalstrings.TrimSpace(*patch.Text); text != "" {
			out.Text = text
		}
	}
	if patch.ClearDueDate {
		out.DueDate = nil
	} else if patch.DueDate != nil {
		out.DueDate = cloneTime(patch.DueDate)
	}
	if patch.Priority != nil && patch.Priority.IsValid() {
		out.Priority = *patch.Priority
	}
	if patch.ChecklistItem != nil {
		out, _ = AddItem(out, *patch.ChecklistItem, ids)
	}
	return out
}

// IsOverdue reports whether t is unfinished and its due date is before now.
// A task due exactly at now is kept by ExpireOverdue, even though UrgencyOf
// already groups it as overdue.
func IsOverdue(t Task, now time.Time) bool {
	return t.Status != StatusDone && t.DueDate != nil && t.DueDate.Before(now)
}
