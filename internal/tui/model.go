package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/existflow/taskdeck/internal/logger"
	"github.com/existflow/taskdeck/internal/model"
	"github.com/existflow/taskdeck/internal/store"
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddTask
	ModeEditTask
	ModeViewTask
	ModeConfirmDelete
	ModeConfirmDeleteAll
	ModeSearch
	ModeGroupBy
	ModeHelp
)

// Options configures a Model
type Options struct {
	GroupBy       model.GroupBy
	ConfirmDelete bool
	ListenAddr    string // shown in the header when the API is served alongside
}

// row is one line of the task table: a bucket header or a task.
// A task appears once per bucket it belongs to.
type row struct {
	header string
	bucket string
	task   *model.Task
}

// Model is the main TUI model
type Model struct {
	tasks *store.Collection
	opts  Options

	// Change notifications from the collection
	changes   <-chan struct{}
	cancelSub func()

	// UI state
	width   int
	height  int
	mode    Mode
	groupBy model.GroupBy
	rows    []row
	cursor  int // index into rows, always a task row when any exist
	offset  int // first visible row

	// selectedID and selectedBucket survive rebuilds so the cursor follows
	// the task row, not the position
	selectedID     string
	selectedBucket string
	pendingID  string // task awaiting delete confirmation

	// Input
	form        formModel
	search      textinput.Model
	groupCursor int

	message    string
	messageSeq int

	now func() time.Time
}

// NewModel creates a new TUI model over tasks
func NewModel(tasks *store.Collection, opts Options) Model {
	logger.Info("Initializing TUI model")

	if tasks == nil {
		tasks = store.New()
	}
	groupBy, ok := model.ParseGroupBy(string(opts.GroupBy))
	if !ok {
		groupBy = model.GroupNone
	}

	si := textinput.New()
	si.Placeholder = "Search title or description..."
	si.CharLimit = 100
	si.Width = 40
	si.Prompt = "/"

	changes, cancel := tasks.Subscribe()

	m := Model{
		tasks:     tasks,
		opts:      opts,
		changes:   changes,
		cancelSub: cancel,
		mode:      ModeNormal,
		groupBy:   groupBy,
		form:      newFormModel(),
		search:    si,
		now:       time.Now,
	}

	m.rebuild()
	logger.Debug("TUI model initialized",
		logger.F("tasks", tasks.Len()),
		logger.F("group_by", string(groupBy)))
	return m
}

// rebuild recomputes the table rows from the collection
func (m *Model) rebuild() {
	buckets := m.tasks.Grouped(m.groupBy)

	m.rows = nil
	for _, b := range buckets {
		if b.Empty() {
			continue
		}
		if m.groupBy != model.GroupNone {
			m.rows = append(m.rows, row{header: bucketLabel(m.groupBy, b.Name)})
		}
		for i := range b.Tasks {
			m.rows = append(m.rows, row{bucket: b.Name, task: &b.Tasks[i]})
		}
	}

	m.cursor = m.indexOfIn(m.selectedID, m.selectedBucket)
	if m.cursor < 0 {
		m.cursor = m.indexOf(m.selectedID)
	}
	if m.cursor < 0 {
		m.cursor = m.nextTaskRow(-1, 1)
	}
	m.syncSelection()
}

// bucketLabel is the header text shown above a bucket
func bucketLabel(by model.GroupBy, name string) string {
	switch by {
	case model.GroupPriority:
		return "Priority: " + name
	case model.GroupTags:
		if name == model.BucketNoTags {
			return name
		}
		return "Tag: " + name
	default:
		return name
	}
}

// indexOf returns the first row showing the task with id, or -1
func (m *Model) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, r := range m.rows {
		if r.task != nil && r.task.ID == id {
			return i
		}
	}
	return -1
}

// indexOfIn returns the row showing the task with id inside bucket, or -1
func (m *Model) indexOfIn(id, bucket string) int {
	if id == "" {
		return -1
	}
	for i, r := range m.rows {
		if r.task != nil && r.task.ID == id && r.bucket == bucket {
			return i
		}
	}
	return -1
}

// nextTaskRow returns the first task row after from in direction dir, or -1
func (m *Model) nextTaskRow(from, dir int) int {
	for i := from + dir; i >= 0 && i < len(m.rows); i += dir {
		if m.rows[i].task != nil {
			return i
		}
	}
	return -1
}

func (m *Model) syncSelection() {
	if t := m.currentTask(); t != nil {
		m.selectedID = t.ID
		m.selectedBucket = m.rows[m.cursor].bucket
	} else {
		m.selectedID = ""
		m.selectedBucket = ""
	}
}

func (m *Model) currentTask() *model.Task {
	if m.cursor >= 0 && m.cursor < len(m.rows) {
		return m.rows[m.cursor].task
	}
	return nil
}

// taskCount returns the number of distinct tasks on screen
func (m *Model) taskCount() int {
	seen := make(map[string]bool)
	for _, r := range m.rows {
		if r.task != nil {
			seen[r.task.ID] = true
		}
	}
	return len(seen)
}
