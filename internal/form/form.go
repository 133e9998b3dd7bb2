// Package form converts raw user input into store inputs and validates it.
package form

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/existflow/taskdeck/internal/model"
	"github.com/existflow/taskdeck/internal/store"
	"github.com/hay-kot/criterio"
)

// Field names used as keys in validation errors
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldTags        = "tags"
	FieldPriority    = "priority"
	FieldDueDate     = "due_date"
)

// Length limits for text fields
const (
	TitleMin       = 3
	TitleMax       = 10
	DescriptionMin = 3
	DescriptionMax = 100
)

// DateLayout is the accepted absolute due date format
const DateLayout = "2006-01-02"

// MaxRelativeDays bounds N in a +Nd due date
const MaxRelativeDays = 3650

// ErrBadDate is returned for due dates in an unknown format
var ErrBadDate = errors.New("use YYYY-MM-DD, today, tomorrow or +Nd")

// ParseTags splits a comma-separated list, trimming whitespace and dropping
// empty pieces. Order and duplicates are kept.
func ParseTags(raw string) []string {
	return CleanTags(strings.Split(raw, ","))
}

// CleanTags trims each tag and drops empty ones, keeping order and duplicates
func CleanTags(raw []string) []string {
	tags := []string{}
	for _, part := range raw {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// JoinTags formats tags for an input field
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// ParseDueDate parses raw relative to now. An empty string means no due date.
func ParseDueDate(raw string, now time.Time) (*time.Time, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch {
	case raw == "":
		return nil, nil
	case raw == "today":
		return &today, nil
	case raw == "tomorrow":
		d := today.AddDate(0, 0, 1)
		return &d, nil
	case strings.HasPrefix(raw, "+") && strings.HasSuffix(raw, "d"):
		n, err := strconv.Atoi(raw[1 : len(raw)-1])
		if err != nil || n < 0 || n > MaxRelativeDays {
			return nil, ErrBadDate
		}
		d := today.AddDate(0, 0, n)
		return &d, nil
	}

	d, err := time.ParseInLocation(DateLayout, raw, now.Location())
	if err != nil {
		return nil, ErrBadDate
	}
	return &d, nil
}

// FormatDueDate is the inverse of ParseDueDate for prefilling edit forms
func FormatDueDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(DateLayout)
}

// TaskForm holds raw form input as typed by the user.
// TagList, when non-nil, holds already separated tags and takes precedence
// over the comma-separated Tags.
type TaskForm struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        string   `json:"tags"`
	TagList     []string `json:"-"`
	Priority    string   `json:"priority"`
	DueDate     string   `json:"due_date"`
}

// TagValues returns the effective tags of the form
func (f TaskForm) TagValues() []string {
	if f.TagList != nil {
		return CleanTags(f.TagList)
	}
	return ParseTags(f.Tags)
}

// hasTagInput reports whether any tag input was given, even if blank after trimming
func (f TaskForm) hasTagInput() bool {
	return len(f.TagList) > 0 || strings.TrimSpace(f.Tags) != ""
}

// FromTask prefills a form with the values of t
func FromTask(t model.Task) TaskForm {
	return TaskForm{
		Title:       t.Title,
		Description: t.Description,
		Tags:        JoinTags(t.Tags),
		Priority:    string(t.Priority),
		DueDate:     FormatDueDate(t.DueDate),
	}
}

// Validate checks every field for the add flow
func (f TaskForm) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run(FieldTitle, f.Title, length(TitleMin, TitleMax)),
		criterio.Run(FieldDescription, f.Description, length(DescriptionMin, DescriptionMax)),
		criterio.Run(FieldTags, f.TagValues(), atLeastOneTag),
		criterio.Run(FieldPriority, f.Priority, knownPriority),
		criterio.Run(FieldDueDate, f.DueDate, parseableDate),
	)
}

// ValidatePartial checks only the fields that were filled in, for the edit flow
func (f TaskForm) ValidatePartial() error {
	var errs criterio.FieldErrorsBuilder
	check := func(field, value string, fn func(string) error) {
		if strings.TrimSpace(value) == "" {
			return
		}
		if err := fn(value); err != nil {
			errs = errs.Append(field, err)
		}
	}

	check(FieldTitle, f.Title, length(TitleMin, TitleMax))
	check(FieldDescription, f.Description, length(DescriptionMin, DescriptionMax))
	if f.hasTagInput() {
		if err := atLeastOneTag(f.TagValues()); err != nil {
			errs = errs.Append(FieldTags, err)
		}
	}
	check(FieldPriority, f.Priority, knownPriority)
	check(FieldDueDate, f.DueDate, parseableDate)

	return errs.ToError()
}

// AddInput converts a validated form into store input
func (f TaskForm) AddInput(now time.Time) store.AddInput {
	priority, _ := model.ParsePriority(f.Priority)
	due, _ := ParseDueDate(f.DueDate, now)
	return store.AddInput{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Tags:        f.TagValues(),
		Priority:    priority,
		DueDate:     due,
	}
}

// EditInput converts a form into store edit input. Empty fields are left unset.
// An empty due date is left unset unless clearDue is true.
func (f TaskForm) EditInput(now time.Time, clearDue bool) store.EditInput {
	var in store.EditInput
	if s := strings.TrimSpace(f.Title); s != "" {
		in.Title = model.Some(s)
	}
	if s := strings.TrimSpace(f.Description); s != "" {
		in.Description = model.Some(s)
	}
	if tags := f.TagValues(); len(tags) > 0 {
		in.Tags = model.Some(tags)
	}
	if p, ok := model.ParsePriority(f.Priority); ok {
		in.Priority = model.Some(p)
	}
	if due, err := ParseDueDate(f.DueDate, now); err == nil && due != nil {
		in.DueDate = model.Some(due)
	} else if clearDue {
		in.DueDate = model.Some[*time.Time](nil)
	}
	return in
}

// Messages flattens validation errors into field -> message.
// Errors that aren't field errors are reported under "".
func Messages(err error) map[string]string {
	if err == nil {
		return nil
	}
	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return map[string]string{"": err.Error()}
	}
	out := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		if _, ok := out[fe.Field]; !ok {
			out[fe.Field] = fe.Err.Error()
		}
	}
	return out
}

func length(lo, hi int) func(string) error {
	return func(s string) error {
		n := utf8.RuneCountInString(strings.TrimSpace(s))
		switch {
		case n < lo:
			return fmt.Errorf("must be at least %d characters", lo)
		case n > hi:
			return fmt.Errorf("must be at most %d characters", hi)
		}
		return nil
	}
}

func atLeastOneTag(tags []string) error {
	if len(tags) == 0 {
		return errors.New("at least one tag is required")
	}
	return nil
}

func knownPriority(s string) error {
	if _, ok := model.ParsePriority(s); !ok {
		return fmt.Errorf("must be one of Low, Medium, High")
	}
	return nil
}

func parseableDate(s string) error {
	_, err := ParseDueDate(s, time.Now())
	return err
}
