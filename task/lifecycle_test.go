package task

import (
	"testing"
	"time"

	"github.com/amonks/routine/internal/ids"
)

func TestNew(t *testing.T) {
	got, ok := New("t1", CreateInput{Text: "  Buy milk "}, ids.NewSequence("c"), testNow)
	if !ok {
		t.Fatal("expected task to be created")
	}
	if got.Text != "Buy milk" {
		t.Errorf("expected trimmed text, got %q", got.Text)
	}
	if got.Status != StatusTodo {
		t.Errorf("expected status todo, got %q", got.Status)
	}
	if got.Priority != PriorityMedium {
		t.Errorf("expected medium priority, got %q", got.Priority)
	}
	if len(got.Checklist) != 0 || got.Checklist == nil {
		t.Errorf("expected empty, non-nil checklist, got %#v", got.Checklist)
	}
	if !got.CreatedAt.Equal(testNow) {
		t.Errorf("expected createdAt %v, got %v", testNow, got.CreatedAt)
	}
	if got.StartedAt != nil || got.CompletedAt != nil || got.DueDate != nil {
		t.Errorf("expected no optional timestamps, got %+v", got)
	}
}

func TestNew_BlankText(t *testing.T) {
	if _, ok := New("t1", CreateInput{Text: "   "}, ids.NewSequence("c"), testNow); ok {
		t.Fatal("expected blank text to be rejected")
	}
}

func TestApplyStatus_StartedAtIsSetOnce(t *testing.T) {
	item := Task{ID: "t1", Text: "Write", Status: StatusTodo}

	first := testNow
	item = ApplyStatus(item, StatusInProgress, first)
	item = ApplyStatus(item, StatusTodo, first.Add(time.Hour))
	item = ApplyStatus(item, StatusInProgress, first.Add(2*time.Hour))
	item = ApplyStatus(item, StatusTodo, first.Add(3*time.Hour))
	item = ApplyStatus(item, StatusInProgress, first.Add(4*time.Hour))

	if item.StartedAt == nil || !item.StartedAt.Equal(first) {
		t.Fatalf("expected startedAt %v, got %v", first, item.StartedAt)
	}
}

func TestApplyStatus_StartedAtSurvivesDone(t *testing.T) {
	item := ApplyStatus(Task{ID: "t1", Text: "Write"}, StatusInProgress, testNow)
	item = ApplyStatus(item, StatusDone, testNow.Add(time.Hour))
	item = ApplyStatus(item, StatusTodo, testNow.Add(2*time.Hour))

	if item.StartedAt == nil || !item.StartedAt.Equal(testNow) {
		t.Fatalf("expected startedAt to be kept, got %v", item.StartedAt)
	}
}

func TestApplyStatus_CompletedAt(t *testing.T) {
	item := Task{ID: "t1", Text: "Write", Status: StatusTodo}

	item = ApplyStatus(item, StatusDone, testNow)
	if item.CompletedAt == nil || !item.CompletedAt.Equal(testNow) {
		t.Fatalf("expected completedAt %v, got %v", testNow, item.CompletedAt)
	}

	later := testNow.Add(time.Hour)
	item = ApplyStatus(item, StatusDone, later)
	if !item.CompletedAt.Equal(later) {
		t.Errorf("expected re-entering done to restamp completedAt, got %v", item.CompletedAt)
	}

	for _, status := range []Status{StatusTodo, StatusInProgress} {
		reopened := ApplyStatus(item, status, later)
		if reopened.CompletedAt != nil {
			t.Errorf("expected %s to clear completedAt, got %v", status, reopened.CompletedAt)
		}
	}
}

func TestApplyStatus_CompletedAtIffDone(t *testing.T) {
	statuses := ValidStatuses()
	item := Task{ID: "t1", Text: "Cycle", Status: StatusTodo}
	now := testNow
	for i := 0; i < 30; i++ {
		now = now.Add(time.Minute)
		item = ApplyStatus(item, statuses[(i*7)%len(statuses)], now)
		if (item.CompletedAt != nil) != (item.Status == StatusDone) {
			t.Fatalf("step %d: status %q with completedAt %v", i, item.Status, item.CompletedAt)
		}
	}
}

func TestApplyPatch(t *testing.T) {
	gen := ids.NewSequence("c")
	base, _ := New("t1", CreateInput{Text: "Draft", DueDate: at(time.Hour), Checklist: []string{"outline"}}, gen, testNow)

	text := "Draft report"
	due := testNow.Add(5 * time.Hour)
	item := "proofread"
	high := PriorityHigh
	got := ApplyPatch(base, Patch{Text: &text, DueDate: &due, ChecklistItem: &item, Priority: &high}, gen)

	if got.Text != "Draft report" {
		t.Errorf("expected new text, got %q", got.Text)
	}
	if !got.DueDate.Equal(due) {
		t.Errorf("expected due %v, got %v", due, got.DueDate)
	}
	if got.Priority != PriorityHigh {
		t.Errorf("expected high priority, got %q", got.Priority)
	}
	if len(got.Checklist) != 2 || got.Checklist[0].Text != "outline" || got.Checklist[1].Text != "proofread" {
		t.Errorf("expected item appended, got %+v", got.Checklist)
	}
	if base.Text != "Draft" || len(base.Checklist) != 1 {
		t.Error("ApplyPatch mutated its input")
	}
}

func TestApplyPatch_AbsentFieldsUnchanged(t *testing.T) {
	gen := ids.NewSequence("c")
	base, _ := New("t1", CreateInput{Text: "Draft", DueDate: at(time.Hour), Priority: PriorityLow}, gen, testNow)

	blank := "   "
	got := ApplyPatch(base, Patch{Text: &blank, ChecklistItem: &blank}, gen)

	if got.Text != "Draft" {
		t.Errorf("expected blank text to be ignored, got %q", got.Text)
	}
	if got.DueDate == nil || !got.DueDate.Equal(*base.DueDate) {
		t.Errorf("expected due date unchanged, got %v", got.DueDate)
	}
	if got.Priority != PriorityLow {
		t.Errorf("expected priority unchanged, got %q", got.Priority)
	}
	if len(got.Checklist) != 0 {
		t.Errorf("expected blank checklist item to be ignored, got %+v", got.Checklist)
	}
}

func TestApplyPatch_ClearDueDate(t *testing.T) {
	gen := ids.NewSequence("c")
	base, _ := New("t1", CreateInput{Text: "Draft", DueDate: at(time.Hour)}, gen, testNow)

	due := testNow.Add(2 * time.Hour)
	got := ApplyPatch(base, Patch{DueDate: &due, ClearDueDate: true}, gen)
	if got.DueDate != nil {
		t.Errorf("expected due date cleared, got %v", got.DueDate)
	}
}

func TestPatch_IsEmpty(t *testing.T) {
	if !(Patch{}).IsEmpty() {
		t.Error("expected zero patch to be empty")
	}
	if (Patch{ClearDueDate: true}).IsEmpty() {
		t.Error("expected ClearDueDate patch to be non-empty")
	}
}

func TestIsOverdue(t *testing.T) {
	cases := []struct {
		name string
		task Task
		want bool
	}{
		{"no due date", Task{Status: StatusTodo}, false},
		{"future", Task{Status: StatusTodo, DueDate: at(time.Minute)}, false},
		{"due now", Task{Status: StatusTodo, DueDate: at(0)}, false},
		{"past", Task{Status: StatusInProgress, DueDate: at(-time.Minute)}, true},
		{"past but done", Task{Status: StatusDone, DueDate: at(-time.Minute)}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsOverdue(tc.task, testNow); got != tc.want {
				t.Errorf("IsOverdue = %v, want %v", got, tc.want)
			}
		})
	}
}
