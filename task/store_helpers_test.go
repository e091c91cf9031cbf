package task

import (
	"bytes"
	"context"
	"errors"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/amonks/routine/internal/ids"
)

var testNow = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

// memoryPersistence records every save.
type memoryPersistence struct {
	mu      sync.Mutex
	data    []byte
	loadErr error
	saveErr error
	saves   int
}

func (m *memoryPersistence) Load(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.data, nil
}

func (m *memoryPersistence) Save(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data = append([]byte(nil), data...)
	return nil
}

func (m *memoryPersistence) setSaveErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

func (m *memoryPersistence) stored() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data
}

// testClock is a settable clock.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type testStore struct {
	*Store
	persist *memoryPersistence
	clock   *testClock
	logs    *bytes.Buffer
}

func newTestStore(t *testing.T) *testStore {
	t.Helper()
	return openTestStoreWith(t, &memoryPersistence{})
}

func openTestStoreWith(t *testing.T, persist *memoryPersistence) *testStore {
	t.Helper()

	clock := &testClock{now: testNow}
	logs := &bytes.Buffer{}
	store, err := Open(context.Background(), Options{
		Persistence: persist,
		Logger:      log.New(logs, "", 0),
		Now:         clock.Now,
		IDs:         ids.NewSequence("t"),
	})
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return &testStore{Store: store, persist: persist, clock: clock, logs: logs}
}

func (ts *testStore) mustCreate(t *testing.T, input CreateInput) Task {
	t.Helper()
	created, ok := ts.Create(input)
	if !ok {
		t.Fatalf("failed to create task %q", input.Text)
	}
	return created
}

func at(d time.Duration) *time.Time {
	value := testNow.Add(d)
	return &value
}

var errDiskFull = errors.New("disk full")
