package task

import (
	"fmt"

	"github.com/amonks/routine/internal/ids"
)

// IDGenerator produces identifiers for tasks and checklist items.
type IDGenerator interface {
	NewID() string
}

// IDIndex indexes task IDs for prefix matching and display.
type IDIndex struct {
	ids []string
}

// NewIDIndex builds an IDIndex from a slice of tasks.
func NewIDIndex(tasks []Task) IDIndex {
	taskIDs := make([]string, 0, len(tasks))
	for _, t := range tasks {
		taskIDs = append(taskIDs, t.ID)
	}
	return IDIndex{ids: taskIDs}
}

// Resolve returns the full task ID for a prefix.
func (index IDIndex) Resolve(prefix string) (string, error) {
	return resolvePrefix(index.ids, prefix, ErrTaskNotFound, ErrAmbiguousIDPrefix)
}

// PrefixLengths returns the shortest unique prefix length for each ID.
func (index IDIndex) PrefixLengths() map[string]int {
	return ids.UniquePrefixLengths(index.ids)
}

func resolvePrefix(candidates []string, prefix string, notFound, ambiguousErr error) (string, error) {
	match, found, ambiguous := ids.MatchPrefix(candidates, prefix)
	if !found {
		return "", notFound
	}
	if ambiguous {
		return "", fmt.Errorf("%w: %s", ambiguousErr, prefix)
	}
	return match, nil
}
