package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/amonks/routine/task"
)

var errInvalidDue = errors.New("invalid due date")

// priorityValue is a pflag.Value for task priorities.
type priorityValue struct {
	priority task.Priority
}

var _ pflag.Value = (*priorityValue)(nil)

func (v *priorityValue) String() string { return string(v.priority) }
func (v *priorityValue) Type() string   { return "priority" }

func (v *priorityValue) Set(value string) error {
	priority, err := task.ParsePriority(value)
	if err != nil {
		return err
	}
	v.priority = priority
	return nil
}

// statusValue is a pflag.Value for task statuses.
type statusValue struct {
	status task.Status
}

var _ pflag.Value = (*statusValue)(nil)

func (v *statusValue) String() string { return string(v.status) }
func (v *statusValue) Type() string   { return "status" }

func (v *statusValue) Set(value string) error {
	status, err := task.ParseStatus(value)
	if err != nil {
		return err
	}
	v.status = status
	return nil
}

// dueValue is a pflag.Value for due dates. The raw text is kept and parsed
// against the command clock when the command runs.
type dueValue struct {
	raw string
}

var _ pflag.Value = (*dueValue)(nil)

func (v *dueValue) String() string { return v.raw }
func (v *dueValue) Type() string   { return "due" }

func (v *dueValue) Set(value string) error {
	if _, err := parseDue(value, time.Now()); err != nil {
		return err
	}
	v.raw = value
	return nil
}

// resolve returns the due date as of now, or nil when unset.
func (v *dueValue) resolve(now time.Time) (*time.Time, error) {
	if v.raw == "" {
		return nil, nil
	}
	due, err := parseDue(v.raw, now)
	if err != nil {
		return nil, err
	}
	return &due, nil
}

var dueLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseDue accepts an absolute time in local time, a relative offset such
// as "3h", "90m", or "2d", and the words "today" and "tomorrow" (end of day).
func parseDue(value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	switch strings.ToLower(value) {
	case "":
		return time.Time{}, fmt.Errorf("%w: empty", errInvalidDue)
	case "today":
		return endOfDay(now), nil
	case "tomorrow":
		return endOfDay(now.AddDate(0, 0, 1)), nil
	}

	if offset, ok := parseOffset(value); ok {
		return now.Add(offset), nil
	}
	for _, layout := range dueLayouts {
		if parsed, err := time.ParseInLocation(layout, value, now.Location()); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", errInvalidDue, value)
}

func parseOffset(value string) (time.Duration, bool) {
	value = strings.TrimPrefix(value, "+")
	if days, ok := strings.CutSuffix(value, "d"); ok {
		n, err := strconv.ParseFloat(days, 64)
		if err != nil {
			return 0, false
		}
		return time.Duration(n * 24 * float64(time.Hour)), true
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, false
	}
	return d, true
}

func endOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 0, 0, t.Location())
}

var textFlagAliases = map[string]string{
	"title": "text",
}

func addTextFlagAliases(cmds ...*cobra.Command) {
	for _, cmd := range cmds {
		setFlagAliases(cmd.Flags(), textFlagAliases)
	}
}

func setFlagAliases(flags *pflag.FlagSet, aliases map[string]string) {
	if len(aliases) == 0 {
		return
	}

	normalize := flags.GetNormalizeFunc()
	flags.SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		if alias, ok := aliases[name]; ok {
			name = alias
		}
		return normalize(f, name)
	})
}

func hasChangedFlags(cmd *cobra.Command, flags ...string) bool {
	for _, flag := range flags {
		if cmd.Flags().Changed(flag) {
			return true
		}
	}
	return false
}
