package task

import (
	"time"

	internalstrings "github.com/amonks/routine/internal/strings"
)

// Create adds a new task as the newest entry. ok is false, and nothing
// changes, when the text is blank.
func (s *Store) Create(input CreateInput) (Task, bool) {
	if internalstrings.IsBlank(input.Text) {
		return Task{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := New(s.newTaskID(), input, s.ids, s.now())
	if !ok {
		return Task{}, false
	}

	s.tasks = append([]Task{t}, s.tasks...)
	s.save()
	return t.Clone(), true
}

// UpdateStatus moves a task into status following the lifecycle rules of
// ApplyStatus. ok is false when id is unknown or status is invalid.
func (s *Store) UpdateStatus(id string, status Status) (Task, bool) {
	if !status.IsValid() {
		return Task{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Task{}, false
	}
	return s.replace(i, ApplyStatus(s.tasks[i], status, s.now())), true
}

// Start marks a task as in progress.
func (s *Store) Start(id string) (Task, bool) {
	return s.UpdateStatus(id, StatusInProgress)
}

// Finish marks a task as done.
func (s *Store) Finish(id string) (Task, bool) {
	return s.UpdateStatus(id, StatusDone)
}

// Reopen moves a task back to todo.
func (s *Store) Reopen(id string) (Task, bool) {
	return s.UpdateStatus(id, StatusTodo)
}

// Update applies a partial update. ok is false when id is unknown.
func (s *Store) Update(id string, patch Patch) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Task{}, false
	}
	return s.replace(i, ApplyPatch(s.tasks[i], patch, s.ids)), true
}

// AddChecklistItem appends an item to a task's checklist. ok is false when
// the id is unknown or the text is blank.
func (s *Store) AddChecklistItem(id, text string) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Task{}, false
	}
	updated, ok := AddItem(s.tasks[i], text, s.ids)
	if !ok {
		return Task{}, false
	}
	return s.replace(i, updated), true
}

// ToggleChecklistItem flips one checklist item. ok is false when either id
// is unknown. The task's status is not touched.
func (s *Store) ToggleChecklistItem(taskID, itemID string) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(taskID)
	if i < 0 {
		return Task{}, false
	}
	updated, ok := ToggleItem(s.tasks[i], itemID)
	if !ok {
		return Task{}, false
	}
	return s.replace(i, updated), true
}

// Delete removes a task permanently. It returns false when id is unknown.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	s.save()
	return true
}

// Get returns a copy of the task with id.
func (s *Store) Get(id string) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i].Clone(), true
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// List returns every task ordered as of the store clock.
func (s *Store) List() []Task {
	return s.ListAt(s.now())
}

// ListAt returns every task ordered as of now.
func (s *Store) ListAt(now time.Time) []Task {
	s.mu.Lock()
	snapshot := make([]Task, len(s.tasks))
	for i := range s.tasks {
		snapshot[i] = s.tasks[i].Clone()
	}
	s.mu.Unlock()

	return Order(snapshot, now)
}

// Resolve returns the full id of the task matching prefix.
func (s *Store) Resolve(prefix string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return NewIDIndex(s.tasks).Resolve(prefix)
}

// ResolveItem returns the full id of the checklist item matching prefix
// within the task taskID.
func (s *Store) ResolveItem(taskID, prefix string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(taskID)
	if i < 0 {
		return "", ErrTaskNotFound
	}
	itemIDs := make([]string, 0, len(s.tasks[i].Checklist))
	for _, item := range s.tasks[i].Checklist {
		itemIDs = append(itemIDs, item.ID)
	}
	return resolvePrefix(itemIDs, prefix, ErrItemNotFound, ErrAmbiguousIDPrefix)
}

// IDIndex returns an index of all task ids.
func (s *Store) IDIndex() IDIndex {
	s.mu.Lock()
	defer s.mu.Unlock()
	return NewIDIndex(s.tasks)
}
