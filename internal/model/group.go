package model

import "strings"

// GroupBy selects how a task list is partitioned for display
type GroupBy string

const (
	GroupNone      GroupBy = "None"
	GroupTags      GroupBy = "Tags"
	GroupPriority  GroupBy = "Priority"
	GroupFavorites GroupBy = "Favorites"
)

// GroupOptions lists the groupings in menu order
var GroupOptions = []GroupBy{GroupNone, GroupTags, GroupPriority, GroupFavorites}

// Bucket names that don't come from task data
const (
	BucketAll        = "All Tasks"
	BucketStarred    = "Starred"
	BucketNotStarred = "Not Starred"
	BucketNoTags     = "No Tags"
)

// ParseGroupBy converts a string (case-insensitive) to a GroupBy.
// The empty string maps to GroupNone.
func ParseGroupBy(s string) (GroupBy, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return GroupNone, true
	}
	for _, g := range GroupOptions {
		if strings.EqualFold(s, string(g)) {
			return g, true
		}
	}
	return "", false
}

// Next returns the grouping after g in menu order, wrapping around
func (g GroupBy) Next() GroupBy {
	for i, o := range GroupOptions {
		if o == g {
			return GroupOptions[(i+1)%len(GroupOptions)]
		}
	}
	return GroupNone
}

// Bucket is a named subset of tasks produced by grouping
type Bucket struct {
	Name  string `json:"name"`
	Tasks []Task `json:"tasks"`
}

// Empty reports whether the bucket has no members
func (b Bucket) Empty() bool {
	return len(b.Tasks) == 0
}
