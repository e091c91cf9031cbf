package task

import (
	"context"
	"log"
	"os"
	"sync"
	"time"

	"github.com/amonks/routine/internal/ids"
)

// Options configures a Store.
type Options struct {
	// Persistence loads and saves the collection. Required.
	Persistence Persistence

	// Logger receives persistence failures. Defaults to stderr.
	Logger *log.Logger

	// Now is the store clock. Defaults to time.Now.
	Now func() time.Time

	// IDs generates task and checklist item ids. Defaults to ids.NewGenerator.
	IDs IDGenerator
}

// Store owns the task collection.
//
// The collection is kept newest-first in insertion order; reads never expose
// it directly and always return Order'd copies.
type Store struct {
	logger *log.Logger
	now    func() time.Time
	ids    IDGenerator
	saver  *saver

	mu    sync.Mutex
	tasks []Task
}

// Open loads the collection and returns a ready Store. A load failure or an
// undecodable document is logged and the store starts empty.
func Open(ctx context.Context, opts Options) (*Store, error) {
	if opts.Persistence == nil {
		return nil, ErrNoPersistence
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "task: ", log.LstdFlags)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	gen := opts.IDs
	if gen == nil {
		gen = ids.NewGenerator()
	}

	s := &Store{
		logger: logger,
		now:    now,
		ids:    gen,
		tasks:  loadTasks(ctx, opts.Persistence, logger),
	}
	s.saver = newSaver(opts.Persistence, logger)
	return s, nil
}

func loadTasks(ctx context.Context, persist Persistence, logger *log.Logger) []Task {
	data, err := persist.Load(ctx)
	if err != nil {
		logger.Printf("load tasks: %v; starting with an empty list", err)
		return []Task{}
	}
	tasks, err := Decode(data)
	if err != nil {
		logger.Printf("load tasks: %v; starting with an empty list", err)
		return []Task{}
	}
	return tasks
}

// Flush waits until every mutation so far has been handed to the
// persistence provider and returns the error of the most recent save.
func (s *Store) Flush() error {
	return s.saver.flush()
}

// Close flushes pending saves and stops the background writer. The store
// must not be mutated afterwards.
func (s *Store) Close() error {
	return s.saver.close()
}

// Now returns the store clock's current time.
func (s *Store) Now() time.Time {
	return s.now()
}

// save snapshots the collection. Callers hold s.mu.
func (s *Store) save() {
	data, err := Encode(s.tasks)
	if err != nil {
		s.logger.Printf("save tasks: %v", err)
		return
	}
	s.saver.enqueue(data)
}

// indexOf returns the position of id in s.tasks or -1. Callers hold s.mu.
func (s *Store) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// newTaskID draws ids until one is unused. Callers hold s.mu.
func (s *Store) newTaskID() string {
	for {
		id := s.ids.NewID()
		if s.indexOf(id) < 0 {
			return id
		}
	}
}

// replace swaps the task at index i, saves, and returns a copy.
// Callers hold s.mu.
func (s *Store) replace(i int, t Task) Task {
	s.tasks[i] = t
	s.save()
	return t.Clone()
}
