package task

import "time"

// Policy selects what Reconcile does when the application resumes.
type Policy int

const (
	// PolicyKeep leaves every task in place.
	PolicyKeep Policy = iota

	// PolicyExpireOverdue removes unfinished tasks whose due date passed.
	PolicyExpireOverdue
)

// Reconcile runs the resume pass for policy and returns the removed tasks.
// Calling it repeatedly is harmless: a second pass finds nothing to do.
func (s *Store) Reconcile(now time.Time, policy Policy) []Task {
	switch policy {
	case PolicyExpireOverdue:
		return s.ExpireOverdue(now)
	default:
		return nil
	}
}

// ExpireOverdue removes every unfinished task whose due date is before now
// and returns the removed tasks in stored order. Nothing is saved when no
// task expires.
func (s *Store) ExpireOverdue(now time.Time) []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expired []Task
	kept := s.tasks[:0:0]
	for _, t := range s.tasks {
		if IsOverdue(t, now) {
			expired = append(expired, t.Clone())
			continue
		}
		kept = append(kept, t)
	}
	if len(expired) == 0 {
		return nil
	}

	s.tasks = kept
	s.save()
	return expired
}
