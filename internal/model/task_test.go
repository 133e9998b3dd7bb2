package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in   string
		want Priority
		ok   bool
	}{
		{"Low", PriorityLow, true},
		{"medium", PriorityMedium, true},
		{" HIGH ", PriorityHigh, true},
		{"", "", false},
		{"Urgent", "", false},
	}
	for _, tt := range tests {
		got, ok := ParsePriority(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestPriorityValid(t *testing.T) {
	assert.True(t, PriorityHigh.Valid())
	assert.False(t, Priority("high").Valid())
	assert.False(t, Priority("").Valid())
}

func TestClone(t *testing.T) {
	due := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	orig := Task{ID: "a", Tags: []string{"x"}, TagColors: []string{"green"}, DueDate: &due}

	c := orig.Clone()
	c.Tags[0] = "y"
	c.TagColors[0] = "red"
	*c.DueDate = due.Add(time.Hour)

	assert.Equal(t, "x", orig.Tags[0])
	assert.Equal(t, "green", orig.TagColors[0])
	assert.True(t, orig.DueDate.Equal(due))
}

func TestDueChecks(t *testing.T) {
	now := time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)
	yesterday := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	today := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	nextWeek := time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		due     *time.Time
		isDue   bool
		overdue bool
	}{
		{"no due date", nil, false, false},
		{"yesterday", &yesterday, true, true},
		{"today", &today, true, false},
		{"next week", &nextWeek, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := Task{DueDate: tt.due}
			assert.Equal(t, tt.isDue, task.isDueAt(now))
			assert.Equal(t, tt.overdue, task.isOverdueAt(now))
		})
	}
}

func TestGroupBy(t *testing.T) {
	g, ok := ParseGroupBy("tags")
	assert.True(t, ok)
	assert.Equal(t, GroupTags, g)

	g, ok = ParseGroupBy("")
	assert.True(t, ok)
	assert.Equal(t, GroupNone, g)

	_, ok = ParseGroupBy("color")
	assert.False(t, ok)

	assert.Equal(t, GroupTags, GroupNone.Next())
	assert.Equal(t, GroupNone, GroupFavorites.Next())
}

func TestOptional(t *testing.T) {
	var unset Optional[string]
	_, ok := unset.Get()
	assert.False(t, ok)
	assert.False(t, unset.IsSet())

	v, ok := Some("").Get()
	assert.True(t, ok)
	assert.Equal(t, "", v)

	var nilDate *time.Time
	d, ok := Some(nilDate).Get()
	assert.True(t, ok)
	assert.Nil(t, d)
}
