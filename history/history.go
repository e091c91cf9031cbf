// Package history groups completed tasks by the calendar day they finished.
package history

import (
	"sort"
	"time"

	"github.com/amonks/routine/task"
)

// DateLayout is the key format for history days.
const DateLayout = "2006-01-02"

// Day is one calendar day of completed tasks.
type Day struct {
	Date  string      `json:"date"`
	Tasks []task.Task `json:"tasks"`
}

// History is a read-only view of completed tasks keyed by completion date.
type History struct {
	days map[string][]task.Task
}

// Build groups the done tasks in tasks by the date of CompletedAt in loc.
// A nil loc means time.Local.
func Build(tasks []task.Task, loc *time.Location) History {
	if loc == nil {
		loc = time.Local
	}
	days := make(map[string][]task.Task)
	for _, item := range tasks {
		if item.Status != task.StatusDone || item.CompletedAt == nil {
			continue
		}
		key := DateKey(*item.CompletedAt, loc)
		days[key] = append(days[key], item.Clone())
	}
	for key := range days {
		list := days[key]
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].CompletedAt.Before(*list[j].CompletedAt)
		})
	}
	return History{days: days}
}

// DateKey formats t as a history date in loc.
func DateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateLayout)
}

// Days returns the dates with completions, newest first.
func (h History) Days() []string {
	dates := make([]string, 0, len(h.days))
	for date := range h.days {
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates
}

// On returns the tasks completed on date, earliest completion first.
func (h History) On(date string) []task.Task {
	list := h.days[date]
	out := make([]task.Task, len(list))
	for i, item := range list {
		out[i] = item.Clone()
	}
	return out
}

// Counts returns the number of completions per date.
func (h History) Counts() map[string]int {
	counts := make(map[string]int, len(h.days))
	for date, list := range h.days {
		counts[date] = len(list)
	}
	return counts
}

// Groups returns every day, newest first.
func (h History) Groups() []Day {
	dates := h.Days()
	groups := make([]Day, 0, len(dates))
	for _, date := range dates {
		groups = append(groups, Day{Date: date, Tasks: h.On(date)})
	}
	return groups
}

// Len returns the total number of completed tasks.
func (h History) Len() int {
	total := 0
	for _, list := range h.days {
		total += len(list)
	}
	return total
}
