package preset

import (
	"time"

	internalstrings "github.com/amonks/routine/internal/strings"
	"github.com/amonks/routine/task"
)

// Creator is the part of the task store a preset needs.
type Creator interface {
	Create(input task.CreateInput) (task.Task, bool)
}

// Inputs converts the templates of p into create requests as of now.
// Templates with blank text are skipped and blank checklist entries are
// dropped.
func Inputs(p Preset, now time.Time) []task.CreateInput {
	inputs := make([]task.CreateInput, 0, len(p.Tasks))
	for _, tmpl := range p.Tasks {
		if internalstrings.IsBlank(tmpl.Text) {
			continue
		}
		input := task.CreateInput{
			Text:      tmpl.Text,
			Priority:  tmpl.Priority,
			Checklist: nonBlank(tmpl.Checklist),
		}
		if offset, ok := tmpl.DueOffset(); ok {
			due := now.Add(offset)
			input.DueDate = &due
		}
		inputs = append(inputs, input)
	}
	return inputs
}

// Apply creates one task per template of p and returns the created tasks in
// template order.
func Apply(creator Creator, p Preset, now time.Time) []task.Task {
	var created []task.Task
	for _, input := range Inputs(p, now) {
		if item, ok := creator.Create(input); ok {
			created = append(created, item)
		}
	}
	return created
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if internalstrings.IsBlank(value) {
			continue
		}
		out = append(out, internalstrings.TrimSpace(value))
	}
	return out
}
