package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/muesli/reflow/wordwrap"

	"github.com/amonks/routine/internal/markdown"
	"github.com/amonks/routine/internal/ui"
	"github.com/amonks/routine/task"
)

const detailLineWidth = 80

func encodeJSONToStdout(value any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

// idHighlighter highlights the unique prefix of task ids.
func idHighlighter(index task.IDIndex) func(string) string {
	lengths := index.PrefixLengths()
	return func(id string) string {
		return ui.HighlightID(id, ui.PrefixLength(lengths, id))
	}
}

func formatTaskTable(tasks []task.Task, now time.Time, highlight func(string) string) string {
	builder := ui.NewTableBuilder([]string{"ID", "STATUS", "PRIORITY", "DUE", "CHECKLIST", "TEXT"}, len(tasks))
	for _, item := range tasks {
		builder.AddRow(
			highlight(item.ID),
			ui.StatusLabel(item.Status),
			ui.PriorityLabel(item.Priority),
			ui.DueLabel(item, now),
			ui.ChecklistLabel(item),
			ui.TruncateTableCell(item.Text),
		)
	}
	return builder.String()
}

func printTaskLine(verb string, item task.Task, highlight func(string) string) {
	fmt.Printf("%s task %s: %s\n", verb, highlight(item.ID), item.Text)
}

// taskDetailMarkdown renders the checklist of item as a markdown task list.
func taskDetailMarkdown(item task.Task) string {
	if len(item.Checklist) == 0 {
		return ""
	}
	var builder strings.Builder
	for _, entry := range item.Checklist {
		mark := " "
		if entry.Completed {
			mark = "x"
		}
		text := entry.Text
		if strings.TrimSpace(text) == "" {
			text = "(blank)"
		}
		fmt.Fprintf(&builder, "- [%s] %s `%s`\n", mark, text, entry.ID)
	}
	return builder.String()
}

func printTaskDetail(item task.Task, now time.Time, highlight func(string) string) {
	fmt.Printf("ID:        %s\n", highlight(item.ID))
	fmt.Printf("Text:      %s\n", wrapIndented(item.Text, detailLineWidth, 11))
	fmt.Printf("Status:    %s\n", ui.StatusLabel(item.Status))
	fmt.Printf("Priority:  %s\n", ui.PriorityLabel(item.Priority))
	fmt.Printf("Created:   %s (%s)\n", ui.FormatTimestamp(&item.CreatedAt), ui.FormatTaskAge(item, now))
	if item.DueDate != nil {
		fmt.Printf("Due:       %s (%s)\n", ui.FormatTimestamp(item.DueDate), ui.DueLabel(item, now))
	}
	if item.StartedAt != nil {
		fmt.Printf("Started:   %s\n", ui.FormatTimestamp(item.StartedAt))
	}
	if item.CompletedAt != nil {
		fmt.Printf("Completed: %s\n", ui.FormatTimestamp(item.CompletedAt))
	}
	if spent, ok := task.DurationData(item, now); ok {
		fmt.Printf("Duration:  %s\n", ui.FormatDurationShort(spent))
	}

	if checklist := taskDetailMarkdown(item); checklist != "" {
		done, total := item.ChecklistProgress()
		fmt.Printf("\nChecklist (%d/%d):\n", done, total)
		width := ui.TerminalWidth(detailLineWidth)
		fmt.Println(string(markdown.Render(width, 2, []byte(checklist))))
	}
}

// wrapIndented wraps value to width and indents continuation lines.
func wrapIndented(value string, width, indent int) string {
	wrapped := wordwrap.String(value, width-indent)
	return strings.ReplaceAll(wrapped, "\n", "\n"+strings.Repeat(" ", indent))
}
