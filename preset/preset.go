// Package preset stores reusable bundles of task templates and applies them
// to a task store.
package preset

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/amonks/routine/task"
)

var (
	// ErrPresetNotFound is returned when no preset matches an id or name.
	ErrPresetNotFound = errors.New("preset not found")

	// ErrAmbiguousPreset is returned when an id prefix matches several presets.
	ErrAmbiguousPreset = errors.New("ambiguous preset")

	// ErrInvalidPreset is returned when a preset fails validation.
	ErrInvalidPreset = errors.New("invalid preset")

	// ErrUnknownFormat is returned for file extensions other than toml and yaml.
	ErrUnknownFormat = errors.New("unknown preset format")
)

// Template describes one task a preset creates.
type Template struct {
	ID   string `json:"id,omitempty" toml:"id,omitempty" yaml:"id,omitempty"`
	Text string `json:"text" toml:"text" yaml:"text" validate:"nonblank"`

	// Priority defaults to medium when empty.
	Priority task.Priority `json:"priority,omitempty" toml:"priority,omitempty" yaml:"priority,omitempty" validate:"omitempty,priority"`

	// DueHoursOffset sets the due date relative to when the preset is applied.
	DueHoursOffset *float64 `json:"dueHoursOffset,omitempty" toml:"due-hours-offset,omitempty" yaml:"dueHoursOffset,omitempty"`

	// DueDaysOffset is the older whole-day form. It is only consulted when
	// DueHoursOffset is unset.
	DueDaysOffset *float64 `json:"dueDaysOffset,omitempty" toml:"due-days-offset,omitempty" yaml:"dueDaysOffset,omitempty"`

	Checklist []string `json:"checklist,omitempty" toml:"checklist,omitempty" yaml:"checklist,omitempty"`
}

// Preset is a named, reusable set of task templates.
type Preset struct {
	ID        string     `json:"id" toml:"id" yaml:"id" validate:"required,slug"`
	Name      string     `json:"name" toml:"name" yaml:"name" validate:"nonblank"`
	Tasks     []Template `json:"tasks" toml:"tasks" yaml:"tasks" validate:"min=1,dive"`
	CreatedAt time.Time  `json:"createdAt" toml:"created-at" yaml:"createdAt"`
}

// DueOffset returns the template's due offset, if any.
func (t Template) DueOffset() (time.Duration, bool) {
	switch {
	case t.DueHoursOffset != nil:
		return time.Duration(*t.DueHoursOffset * float64(time.Hour)), true
	case t.DueDaysOffset != nil:
		return time.Duration(*t.DueDaysOffset * 24 * float64(time.Hour)), true
	}
	return 0, false
}

// HoursPtr returns a pointer to hours.
func HoursPtr(hours float64) *float64 {
	return &hours
}

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("nonblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("priority", func(fl validator.FieldLevel) bool {
		return task.Priority(fl.Field().String()).IsValid()
	})
	return v
}

// Validate reports every rule p breaks as one ErrInvalidPreset error.
func Validate(p Preset) error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %v", ErrInvalidPreset, err)
	}
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, fmt.Sprintf("%s fails %q", e.Namespace(), e.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidPreset, strings.Join(messages, "; "))
}

var slugReplacer = regexp.MustCompile(`[^a-z0-9]+`)

// Slug derives a preset id from a display name.
func Slug(name string) string {
	slug := slugReplacer.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}
