package task

import (
	"context"
	"log"
	"sync"
)

// Persistence stores the serialized task collection.
type Persistence interface {
	// Load returns the stored document, or nil when nothing was stored yet.
	Load(ctx context.Context) ([]byte, error)

	// Save replaces the stored document.
	Save(ctx context.Context, data []byte) error
}

// saver writes snapshots on a background goroutine. Only the newest pending
// snapshot is kept: every snapshot holds the full collection, so a failed or
// skipped write is repaired by the next one.
type saver struct {
	persist Persistence
	logger  *log.Logger

	mu      sync.Mutex
	cond    *sync.Cond
	pending []byte
	queued  bool
	busy    bool
	closed  bool
	lastErr error
	done    chan struct{}
}

func newSaver(persist Persistence, logger *log.Logger) *saver {
	s := &saver{
		persist: persist,
		logger:  logger,
		done:    make(chan struct{}),
	}
	s.cond = sync.NewCond(&s.mu)
	go s.run()
	return s
}

// enqueue schedules data to be written and returns immediately.
func (s *saver) enqueue(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.pending = data
	s.queued = true
	s.cond.Broadcast()
}

func (s *saver) run() {
	defer close(s.done)
	for {
		s.mu.Lock()
		for !s.queued && !s.closed {
			s.cond.Wait()
		}
		if !s.queued {
			s.mu.Unlock()
			return
		}
		data := s.pending
		s.pending = nil
		s.queued = false
		s.busy = true
		s.mu.Unlock()

		err := s.persist.Save(context.Background(), data)
		if err != nil {
			s.logger.Printf("save tasks: %v", err)
		}

		s.mu.Lock()
		s.busy = false
		s.lastErr = err
		s.cond.Broadcast()
		s.mu.Unlock()
	}
}

// flush blocks until no write is pending or running and returns the result
// of the last write.
func (s *saver) flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.queued || s.busy {
		s.cond.Wait()
	}
	return s.lastErr
}

// close drains pending writes and stops the goroutine.
func (s *saver) close() error {
	s.mu.Lock()
	if s.closed {
		err := s.lastErr
		s.mu.Unlock()
		return err
	}
	s.closed = true
	s.cond.Broadcast()
	s.mu.Unlock()

	<-s.done

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
