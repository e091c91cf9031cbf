package task

import "errors"

var (
	// ErrEmptyText is returned when task text is blank.
	ErrEmptyText = errors.New("task text cannot be empty")

	// ErrInvalidStatus is returned when an unknown status is provided.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidPriority is returned when an unknown priority is provided.
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrTaskNotFound is returned when no task matches an ID or prefix.
	ErrTaskNotFound = errors.New("task not found")

	// ErrAmbiguousIDPrefix is returned when an ID prefix matches multiple tasks.
	ErrAmbiguousIDPrefix = errors.New("ambiguous task ID prefix")

	// ErrItemNotFound is returned when no checklist item matches an ID or prefix.
	ErrItemNotFound = errors.New("checklist item not found")

	// ErrNoPersistence is returned by Open when no Persistence is configured.
	ErrNoPersistence = errors.New("task store requires a persistence provider")
)
