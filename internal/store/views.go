package store

import (
	"strings"

	"github.com/existflow/taskdeck/internal/model"
)

// FilterTasks returns the tasks whose title or description contains term,
// ignoring case. An empty term matches every task.
func FilterTasks(tasks []model.Task, term string) []model.Task {
	needle := strings.ToLower(term)
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if needle == "" ||
			strings.Contains(strings.ToLower(t.Title), needle) ||
			strings.Contains(strings.ToLower(t.Description), needle) {
			out = append(out, t.Clone())
		}
	}
	return out
}

// GroupTasks partitions tasks into ordered buckets.
//
// Priority and Favorites always produce their fixed buckets, even when empty.
// Tags produces one bucket per distinct tag in first-seen order and a task
// lands in every bucket whose tag it carries. Untagged tasks go to a trailing
// "No Tags" bucket, which is also the only bucket when no task has a tag.
func GroupTasks(tasks []model.Task, by model.GroupBy) []model.Bucket {
	switch by {
	case model.GroupPriority:
		buckets := make([]model.Bucket, 0, len(model.Priorities))
		for _, p := range model.Priorities {
			buckets = append(buckets, model.Bucket{
				Name:  string(p),
				Tasks: selectTasks(tasks, func(t model.Task) bool { return t.Priority == p }),
			})
		}
		return buckets

	case model.GroupFavorites:
		return []model.Bucket{
			{Name: model.BucketStarred, Tasks: selectTasks(tasks, func(t model.Task) bool { return t.Starred })},
			{Name: model.BucketNotStarred, Tasks: selectTasks(tasks, func(t model.Task) bool { return !t.Starred })},
		}

	case model.GroupTags:
		return groupByTag(tasks)

	default:
		return []model.Bucket{{Name: model.BucketAll, Tasks: selectTasks(tasks, nil)}}
	}
}

func groupByTag(tasks []model.Task) []model.Bucket {
	var order []string
	seen := make(map[string]bool)
	for _, t := range tasks {
		for _, tag := range t.Tags {
			if !seen[tag] {
				seen[tag] = true
				order = append(order, tag)
			}
		}
	}

	buckets := make([]model.Bucket, 0, len(order)+1)
	for _, tag := range order {
		buckets = append(buckets, model.Bucket{
			Name:  tag,
			Tasks: selectTasks(tasks, func(t model.Task) bool { return t.HasTag(tag) }),
		})
	}

	untagged := selectTasks(tasks, func(t model.Task) bool { return len(t.Tags) == 0 })
	if len(untagged) > 0 || len(order) == 0 {
		buckets = append(buckets, model.Bucket{Name: model.BucketNoTags, Tasks: untagged})
	}
	return buckets
}

// selectTasks copies the tasks matching keep; a nil keep selects all
func selectTasks(tasks []model.Task, keep func(model.Task) bool) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if keep == nil || keep(t) {
			out = append(out, t.Clone())
		}
	}
	return out
}
