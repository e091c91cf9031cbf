package task

import (
	"encoding/json"
	"fmt"
	"time"

	internalstrings "github.com/amonks/routine/internal/strings"
)

// record is the persisted shape of a task. Every field is optional so that
// documents written by older versions still decode.
type record struct {
	ID          string       `json:"id"`
	Text        string       `json:"text"`
	Status      Status       `json:"status,omitempty"`
	Completed   *bool        `json:"completed,omitempty"`
	CreatedAt   *time.Time   `json:"createdAt,omitempty"`
	StartedAt   *time.Time   `json:"startedAt,omitempty"`
	CompletedAt *time.Time   `json:"completedAt,omitempty"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	Priority    Priority     `json:"priority,omitempty"`
	Checklist   []recordItem `json:"checklist,omitempty"`
}

type recordItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Encode serializes tasks in insertion order as a JSON array.
func Encode(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("encode tasks: %w", err)
	}
	return data, nil
}

// Decode parses a persisted collection and upgrades older records:
//   - missing status becomes done when the legacy completed flag is set,
//     todo otherwise
//   - missing priority becomes medium, missing checklist becomes empty
//   - completedAt is cleared on unfinished tasks and backfilled from
//     createdAt on done tasks that lack it
//   - records with no id or blank text are dropped, as are repeated ids
//
// An empty document decodes to an empty collection.
func Decode(data []byte) ([]Task, error) {
	if len(data) == 0 || internalstrings.IsBlank(string(data)) {
		return []Task{}, nil
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	tasks := make([]Task, 0, len(records))
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		t, ok := rec.upgrade()
		if !ok || seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (rec record) upgrade() (Task, bool) {
	text := internalstrings.TrimSpace(rec.Text)
	if rec.ID == "" || text == "" {
		return Task{}, false
	}

	t := Task{
		ID:          rec.ID,
		Text:        text,
		Status:      normalizeStatus(rec.Status),
		StartedAt:   cloneTime(rec.StartedAt),
		CompletedAt: cloneTime(rec.CompletedAt),
		DueDate:     cloneTime(rec.DueDate),
		Priority:    normalizePriority(rec.Priority),
		Checklist:   make([]ChecklistItem, 0, len(rec.Checklist)),
	}
	if rec.CreatedAt != nil {
		t.CreatedAt = *rec.CreatedAt
	}

	if t.Status == "" {
		if rec.Completed != nil && *rec.Completed {
			t.Status = StatusDone
		} else {
			t.Status = StatusTodo
		}
	}

	if t.Status == StatusDone {
		if t.CompletedAt == nil {
			t.CompletedAt = timePtr(t.CreatedAt)
		}
	} else {
		t.CompletedAt = nil
	}

	for _, item := range rec.Checklist {
		if item.ID == "" || hasItemID(t.Checklist, item.ID) {
			continue
		}
		t.Checklist = append(t.Checklist, ChecklistItem(item))
	}

	return t, true
}

func normalizeStatus(status Status) Status {
	if status == "" {
		return ""
	}
	parsed, err := ParseStatus(string(status))
	if err != nil {
		return StatusTodo
	}
	return parsed
}

func normalizePriority(priority Priority) Priority {
	parsed, err := ParsePriority(string(priority))
	if err != nil {
		return PriorityMedium
	}
	return parsed
}
