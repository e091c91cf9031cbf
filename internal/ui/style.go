package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/amonks/routine/task"
)

var (
	statusStyles = map[task.Status]lipgloss.Style{
		task.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		task.StatusTodo:       lipgloss.NewStyle(),
		task.StatusDone:       lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}

	urgencyStyles = map[task.Urgency]lipgloss.Style{
		task.UrgencyOverdue: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		task.UrgencyUrgent:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	}

	priorityStyles = map[task.Priority]lipgloss.Style{
		task.PriorityHigh: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		task.PriorityLow:  lipgloss.NewStyle().Faint(true),
	}

	checklistDoneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// HeadingStyle marks section headings such as history dates.
	HeadingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// StatusLabel returns the styled status name.
func StatusLabel(status task.Status) string {
	return Paint(statusStyles[status], string(status))
}

// PriorityLabel returns the styled priority name.
func PriorityLabel(priority task.Priority) string {
	return Paint(priorityStyles[priority], string(priority))
}

// DueLabel returns the relative due text colored by urgency.
func DueLabel(item task.Task, now time.Time) string {
	text := FormatDue(item.DueDate, now)
	if item.Status == task.StatusDone {
		return text
	}
	return Paint(urgencyStyles[task.UrgencyOf(item, now)], text)
}

// ChecklistLabel returns "done/total" or "-" for an empty checklist.
func ChecklistLabel(item task.Task) string {
	done, total := item.ChecklistProgress()
	if total == 0 {
		return "-"
	}
	label := fmt.Sprintf("%d/%d", done, total)
	if task.AllItemsCompleted(item) {
		return Paint(checklistDoneStyle, label)
	}
	return label
}
