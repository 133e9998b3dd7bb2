package store

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/existflow/taskdeck/internal/logger"
	"github.com/existflow/taskdeck/internal/model"
	"github.com/google/uuid"
)

// Defaults substituted for empty input on Add
const (
	DefaultTitle       = "Untitled Task"
	DefaultDescription = "No description"
	DefaultTag         = "General"
)

// AddInput holds the fields for a new task. Empty values are replaced by defaults.
type AddInput struct {
	Title       string
	Description string
	Tags        []string
	Priority    model.Priority
	DueDate     *time.Time
}

// EditInput holds per-field overrides for an existing task.
//
// Unset fields keep their current value. Title, Description, Priority and Tags
// also keep their value when set to an empty value. DueDate set to nil clears
// the due date.
type EditInput struct {
	Title       model.Optional[string]
	Description model.Optional[string]
	Tags        model.Optional[[]string]
	Priority    model.Optional[model.Priority]
	DueDate     model.Optional[*time.Time]
}

// snapshot is an immutable view of the collection. Mutations publish a new one.
type snapshot struct {
	tasks      []model.Task
	searchTerm string
}

var emptySnapshot = &snapshot{}

func (s *snapshot) index(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// withTasks returns a copy of s holding tasks
func (s *snapshot) withTasks(tasks []model.Task) *snapshot {
	return &snapshot{tasks: tasks, searchTerm: s.searchTerm}
}

// Option configures a Collection
type Option func(*Collection)

// WithIDFunc overrides the id generator
func WithIDFunc(fn func() string) Option {
	return func(c *Collection) {
		c.newID = fn
	}
}

// WithClock overrides the time source
func WithClock(fn func() time.Time) Option {
	return func(c *Collection) {
		c.now = fn
	}
}

// Collection owns every task record and the active search term.
// The zero value is an empty collection ready for use.
type Collection struct {
	mu      sync.Mutex // serializes writers
	current atomic.Pointer[snapshot]

	newID func() string
	now   func() time.Time

	subsMu  sync.Mutex
	subs    map[int]chan struct{}
	nextSub int
}

// New creates an empty collection
func New(opts ...Option) *Collection {
	c := &Collection{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Collection) load() *snapshot {
	if c == nil {
		return emptySnapshot
	}
	if s := c.current.Load(); s != nil {
		return s
	}
	return emptySnapshot
}

func (c *Collection) id() string {
	if c.newID != nil {
		return c.newID()
	}
	return uuid.New().String()
}

func (c *Collection) clock() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}

// update applies fn to the current snapshot and publishes the result when fn
// reports a change.
func (c *Collection) update(fn func(s *snapshot) (*snapshot, bool)) bool {
	if c == nil {
		logger.Warn("Mutation on uninitialized task collection ignored")
		return false
	}

	c.mu.Lock()
	next, changed := fn(c.load())
	if changed {
		c.current.Store(next)
	}
	c.mu.Unlock()

	if changed {
		c.notify()
	}
	return changed
}

// Add appends a new task built from in and returns it
func (c *Collection) Add(in AddInput) model.Task {
	if c == nil {
		return model.Task{}
	}

	now := c.clock()
	tags := append([]string(nil), in.Tags...)
	if len(tags) == 0 {
		tags = []string{DefaultTag}
	}

	task := model.Task{
		ID:          c.id(),
		Title:       orDefault(in.Title, DefaultTitle),
		Description: orDefault(in.Description, DefaultDescription),
		Tags:        tags,
		TagColors:   TagColors(tags),
		Priority:    normalizePriority(in.Priority),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.DueDate != nil {
		d := *in.DueDate
		task.DueDate = &d
	}

	c.update(func(s *snapshot) (*snapshot, bool) {
		tasks := make([]model.Task, len(s.tasks), len(s.tasks)+1)
		copy(tasks, s.tasks)
		return s.withTasks(append(tasks, task)), true
	})

	logger.Debug("Task added", logger.F("id", task.ID), logger.F("priority", task.Priority))
	return task.Clone()
}

// Edit applies in to the task with the given id. It reports false, changing
// nothing, when no task has that id.
func (c *Collection) Edit(id string, in EditInput) (model.Task, bool) {
	var edited model.Task
	now := time.Time{}
	if c != nil {
		now = c.clock()
	}

	found := c.update(func(s *snapshot) (*snapshot, bool) {
		i := s.index(id)
		if i < 0 {
			return s, false
		}

		t := s.tasks[i].Clone()
		if v, ok := in.Title.Get(); ok && strings.TrimSpace(v) != "" {
			t.Title = v
		}
		if v, ok := in.Description.Get(); ok && strings.TrimSpace(v) != "" {
			t.Description = v
		}
		if tags, ok := in.Tags.Get(); ok && len(tags) > 0 {
			t.Tags = append([]string(nil), tags...)
			t.TagColors = TagColors(t.Tags)
		}
		if p, ok := in.Priority.Get(); ok {
			if parsed, valid := model.ParsePriority(string(p)); valid {
				t.Priority = parsed
			}
		}
		if d, ok := in.DueDate.Get(); ok {
			if d == nil {
				t.DueDate = nil
			} else {
				due := *d
				t.DueDate = &due
			}
		}
		t.UpdatedAt = now

		tasks := make([]model.Task, len(s.tasks))
		copy(tasks, s.tasks)
		tasks[i] = t
		edited = t
		return s.withTasks(tasks), true
	})

	if !found {
		logger.Debug("Edit of unknown task ignored", logger.F("id", id))
		return model.Task{}, false
	}
	return edited.Clone(), true
}

// Delete removes the task with the given id and reports whether it existed
func (c *Collection) Delete(id string) bool {
	removed := c.update(func(s *snapshot) (*snapshot, bool) {
		i := s.index(id)
		if i < 0 {
			return s, false
		}
		tasks := make([]model.Task, 0, len(s.tasks)-1)
		tasks = append(tasks, s.tasks[:i]...)
		tasks = append(tasks, s.tasks[i+1:]...)
		return s.withTasks(tasks), true
	})
	if removed {
		logger.Debug("Task deleted", logger.F("id", id))
	}
	return removed
}

// DeleteAll removes every task
func (c *Collection) DeleteAll() {
	c.update(func(s *snapshot) (*snapshot, bool) {
		if len(s.tasks) == 0 {
			return s, false
		}
		return s.withTasks(nil), true
	})
	logger.Debug("All tasks deleted")
}

// ToggleStar flips the favorite flag of the task with the given id
func (c *Collection) ToggleStar(id string) (model.Task, bool) {
	var toggled model.Task
	found := c.update(func(s *snapshot) (*snapshot, bool) {
		i := s.index(id)
		if i < 0 {
			return s, false
		}
		tasks := make([]model.Task, len(s.tasks))
		copy(tasks, s.tasks)
		tasks[i].Starred = !tasks[i].Starred
		toggled = tasks[i]
		return s.withTasks(tasks), true
	})
	if !found {
		return model.Task{}, false
	}
	return toggled.Clone(), true
}

// SetSearchTerm replaces the term used by Filtered and Grouped
func (c *Collection) SetSearchTerm(term string) {
	c.update(func(s *snapshot) (*snapshot, bool) {
		if s.searchTerm == term {
			return s, false
		}
		return &snapshot{tasks: s.tasks, searchTerm: term}, true
	})
}

// SearchTerm returns the active search term
func (c *Collection) SearchTerm() string {
	return c.load().searchTerm
}

// Len returns the number of tasks
func (c *Collection) Len() int {
	return len(c.load().tasks)
}

// Tasks returns a copy of every task in insertion order
func (c *Collection) Tasks() []model.Task {
	return selectTasks(c.load().tasks, nil)
}

// Get returns the task with the given id
func (c *Collection) Get(id string) (model.Task, bool) {
	s := c.load()
	if i := s.index(id); i >= 0 {
		return s.tasks[i].Clone(), true
	}
	return model.Task{}, false
}

// Filtered returns the tasks matching the active search term
func (c *Collection) Filtered() []model.Task {
	s := c.load()
	return FilterTasks(s.tasks, s.searchTerm)
}

// Grouped partitions the filtered tasks into buckets
func (c *Collection) Grouped(by model.GroupBy) []model.Bucket {
	return GroupTasks(c.Filtered(), by)
}

// Subscribe returns a channel that receives a value after mutations.
// Notifications coalesce: a slow reader sees at most one pending signal.
// Call cancel to stop receiving; it closes the channel and is safe to call twice.
func (c *Collection) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	if c == nil {
		var once sync.Once
		return ch, func() { once.Do(func() { close(ch) }) }
	}

	c.subsMu.Lock()
	if c.subs == nil {
		c.subs = make(map[int]chan struct{})
	}
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	c.subsMu.Unlock()

	return ch, func() {
		c.subsMu.Lock()
		defer c.subsMu.Unlock()
		if _, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(ch)
		}
	}
}

func (c *Collection) notify() {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	for _, ch := range c.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func normalizePriority(p model.Priority) model.Priority {
	if parsed, ok := model.ParsePriority(string(p)); ok {
		return parsed
	}
	return model.DefaultPriority
}
