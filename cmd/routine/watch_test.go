package main

import (
	"context"
	"testing"

	"github.com/fsnotify/fsnotify"

	"github.com/amonks/routine/storage"
)

func TestIsStoreEvent(t *testing.T) {
	tests := []struct {
		event fsnotify.Event
		want  bool
	}{
		{event: fsnotify.Event{Name: "/state/tasks.json", Op: fsnotify.Write}, want: true},
		{event: fsnotify.Event{Name: "/state/tasks.json", Op: fsnotify.Rename}, want: true},
		{event: fsnotify.Event{Name: "/state/routine.db-wal", Op: fsnotify.Write}, want: true},
		{event: fsnotify.Event{Name: "/state/tasks.json", Op: fsnotify.Chmod}, want: false},
		{event: fsnotify.Event{Name: "/state/notes.txt", Op: fsnotify.Write}, want: false},
		{event: fsnotify.Event{Name: "/state/tasks.json.tmp123", Op: fsnotify.Create}, want: false},
	}
	for _, tt := range tests {
		if got := isStoreEvent(tt.event); got != tt.want {
			t.Errorf("isStoreEvent(%v) = %v, want %v", tt.event, got, tt.want)
		}
	}
}

func TestReadTasks(t *testing.T) {
	ctx := context.Background()
	provider := storage.NewMemory()

	tasks, err := readTasks(ctx, provider)
	if err != nil || tasks != nil {
		t.Fatalf("empty provider: %v, %v", tasks, err)
	}

	doc := `[{"id":"a","text":"water plants","status":"todo","createdAt":"2026-03-10T09:00:00Z","priority":"high","checklist":[]}]`
	if err := provider.Set(ctx, tasksKey, []byte(doc)); err != nil {
		t.Fatalf("set: %v", err)
	}
	tasks, err = readTasks(ctx, provider)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Text != "water plants" {
		t.Fatalf("unexpected tasks %+v", tasks)
	}
}
