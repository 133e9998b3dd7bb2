package model

import (
	"strings"
	"time"
)

// Priority is the urgency of a task
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Priorities lists every priority in display order
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// DefaultPriority is used when a task is created without one
const DefaultPriority = PriorityMedium

// ParsePriority converts a string (case-insensitive) to a Priority
func ParsePriority(s string) (Priority, bool) {
	for _, p := range Priorities {
		if strings.EqualFold(strings.TrimSpace(s), string(p)) {
			return p, true
		}
	}
	return "", false
}

// Valid reports whether p is one of the known priorities
func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Task represents a single todo item
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Tags        []string   `json:"tags"`
	TagColors   []string   `json:"tag_colors"`
	Priority    Priority   `json:"priority"`
	Starred     bool       `json:"starred"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Clone returns a deep copy so callers can't alias slices or the due date
func (t Task) Clone() Task {
	c := t
	c.Tags = append([]string(nil), t.Tags...)
	c.TagColors = append([]string(nil), t.TagColors...)
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	return c
}

// HasTag reports whether the task carries tag
func (t *Task) HasTag(tag string) bool {
	for _, tg := range t.Tags {
		if tg == tag {
			return true
		}
	}
	return false
}

// IsDue returns true if the task is due today or overdue
func (t *Task) IsDue() bool {
	return t.isDueAt(time.Now())
}

// IsOverdue returns true if the task is past its due date
func (t *Task) IsOverdue() bool {
	return t.isOverdueAt(time.Now())
}

func (t *Task) isDueAt(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	return t.DueDate.Before(startOfDay(now).Add(24 * time.Hour))
}

func (t *Task) isOverdueAt(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	return t.DueDate.Before(startOfDay(now))
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
