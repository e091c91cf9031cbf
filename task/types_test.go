package task

import (
	"errors"
	"testing"
)

func TestStatus_IsValid(t *testing.T) {
	tests := []struct {
		status Status
		valid  bool
	}{
		{StatusTodo, true},
		{StatusInProgress, true},
		{StatusDone, true},
		{Status("invalid"), false},
		{Status(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsValid(); got != tt.valid {
				t.Errorf("Status(%q).IsValid() = %v, want %v", tt.status, got, tt.valid)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input string
		want  Status
	}{
		{"todo", StatusTodo},
		{" TODO ", StatusTodo},
		{"in_progress", StatusInProgress},
		{"in-progress", StatusInProgress},
		{"doing", StatusInProgress},
		{"done", StatusDone},
		{"Completed", StatusDone},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if err != nil {
				t.Fatalf("ParseStatus(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseStatus(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}

	if _, err := ParseStatus("paused"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input string
		want  Priority
	}{
		{"high", PriorityHigh},
		{"High", PriorityHigh},
		{"m", PriorityMedium},
		{"low", PriorityLow},
		{"3", PriorityLow},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePriority(tt.input)
			if err != nil {
				t.Fatalf("ParsePriority(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParsePriority(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}

	if _, err := ParsePriority("urgent"); !errors.Is(err, ErrInvalidPriority) {
		t.Errorf("expected ErrInvalidPriority, got %v", err)
	}
}

func TestWeights(t *testing.T) {
	if !(StatusWeight(StatusInProgress) < StatusWeight(StatusTodo) && StatusWeight(StatusTodo) < StatusWeight(StatusDone)) {
		t.Error("expected in_progress < todo < done")
	}
	if !(PriorityWeight(PriorityHigh) < PriorityWeight(PriorityMedium) && PriorityWeight(PriorityMedium) < PriorityWeight(PriorityLow)) {
		t.Error("expected high < medium < low")
	}
	if PriorityWeight("") != PriorityWeight(PriorityMedium) {
		t.Error("expected missing priority to weigh as medium")
	}
}

func TestTask_CloneIsDeep(t *testing.T) {
	original := Task{
		ID:        "a",
		Text:      "Pack",
		DueDate:   at(0),
		Checklist: []ChecklistItem{{ID: "i1", Text: "socks"}},
	}

	clone := original.Clone()
	clone.Checklist[0].Completed = true
	*clone.DueDate = clone.DueDate.Add(1)

	if original.Checklist[0].Completed {
		t.Error("clone shares checklist storage")
	}
	if !original.DueDate.Equal(testNow) {
		t.Error("clone shares due date storage")
	}
}
