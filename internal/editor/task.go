package editor

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/BurntSushi/toml"

	internalstrings "github.com/amonks/routine/internal/strings"
	"github.com/amonks/routine/task"
)

// DueLayout is how due dates are written into the editor file.
const DueLayout = "2006-01-02 15:04"

// TaskData represents the data used to render the TOML template.
type TaskData struct {
	ID       string
	Status   string
	Priority string
	// Due is formatted with DueLayout, or empty.
	Due  string
	Text string
	// Done and Total describe checklist progress.
	Done  int
	Total int
}

// DataFromTask creates TaskData from an existing task for editing. The due
// date is written in loc.
func DataFromTask(t task.Task, loc *time.Location) TaskData {
	data := TaskData{
		ID:       t.ID,
		Status:   string(t.Status),
		Priority: string(t.Priority),
		Text:     t.Text,
	}
	if t.DueDate != nil {
		data.Due = formatDue(t.DueDate, loc)
	}
	data.Done, data.Total = t.ChecklistProgress()
	return data
}

func formatDue(due *time.Time, loc *time.Location) string {
	if due == nil {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}
	return due.In(loc).Format(DueLayout)
}

var taskTemplate = template.Must(template.New("task").Parse(`# task {{ .ID }}{{ if .Total }} (checklist {{ .Done }}/{{ .Total }}){{ end }}
status = {{ printf "%q" .Status }} # todo, in_progress, done
priority = {{ printf "%q" .Priority }} # high, medium, low
due = {{ printf "%q" .Due }} # empty for none
---
{{ .Text }}
`))

// RenderTaskTOML renders the task data as a TOML string for editing.
func RenderTaskTOML(data TaskData) (string, error) {
	var buf bytes.Buffer
	if err := taskTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// ParsedTask represents the parsed result from the TOML editor output.
type ParsedTask struct {
	Status   task.Status   `toml:"status"`
	Priority task.Priority `toml:"priority"`
	Due      string        `toml:"due"`
	Text     string        `toml:"-"`
}

// ParseTaskTOML parses the TOML content from the editor.
func ParseTaskTOML(content string) (*ParsedTask, error) {
	frontmatter, body := splitFrontmatter(internalstrings.NormalizeNewlines(content))

	var raw struct {
		Status   string `toml:"status"`
		Priority string `toml:"priority"`
		Due      string `toml:"due"`
	}
	if _, err := toml.Decode(frontmatter, &raw); err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}

	parsed := &ParsedTask{
		Due:  internalstrings.TrimSpace(raw.Due),
		Text: internalstrings.TrimSpace(body),
	}
	if parsed.Text == "" {
		return nil, task.ErrEmptyText
	}
	status, err := task.ParseStatus(raw.Status)
	if err != nil {
		return nil, err
	}
	parsed.Status = status
	priority, err := task.ParsePriority(raw.Priority)
	if err != nil {
		return nil, err
	}
	parsed.Priority = priority
	return parsed, nil
}

// Patch converts the parsed fields into a task.Patch against existing, the
// task that was rendered in loc. A due string left as rendered keeps the
// stored due date. Otherwise parseDue turns a non-empty due string into a
// time and an empty one clears the due date.
func (p *ParsedTask) Patch(existing task.Task, loc *time.Location, parseDue func(string) (time.Time, error)) (task.Patch, error) {
	text := p.Text
	patch := task.Patch{
		Text:     &text,
		Priority: task.PriorityPtr(p.Priority),
	}
	if p.Due == formatDue(existing.DueDate, loc) {
		return patch, nil
	}
	if p.Due == "" {
		patch.ClearDueDate = true
		return patch, nil
	}
	due, err := parseDue(p.Due)
	if err != nil {
		return task.Patch{}, err
	}
	patch.DueDate = &due
	return patch, nil
}

func splitFrontmatter(content string) (string, string) {
	content = strings.TrimLeft(content, "\n")
	if content == "" {
		return "", ""
	}

	lines := strings.Split(content, "\n")
	separatorIndex := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			separatorIndex = i
			break
		}
	}
	if separatorIndex == -1 {
		return content, ""
	}

	frontmatter := strings.Join(lines[:separatorIndex], "\n")
	body := strings.Join(lines[separatorIndex+1:], "\n")
	return frontmatter, body
}

// EditTask opens the editor for a task, with due dates shown in loc, and
// returns the parsed result.
func EditTask(existing task.Task, loc *time.Location) (*ParsedTask, error) {
	content, err := RenderTaskTOML(DataFromTask(existing, loc))
	if err != nil {
		return nil, err
	}

	tmpfile, err := os.CreateTemp("", "routine-task-*.md")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpfile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpfile.WriteString(content); err != nil {
		tmpfile.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpfile.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	if err := Edit(tmpPath); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read edited file: %w", err)
	}

	return ParseTaskTOML(string(edited))
}
