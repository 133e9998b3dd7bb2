package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/taskdeck/internal/logger"
	"github.com/existflow/taskdeck/internal/model"
)

// messageTimeout is how long a status message stays visible
const messageTimeout = 3 * time.Second

// changeMsg is sent when the collection was modified, by us or by the API
type changeMsg struct{}

// clearMessageMsg hides the status message with the given sequence number
type clearMessageMsg struct{ seq int }

// Init starts listening for collection changes
func (m Model) Init() tea.Cmd {
	return m.waitForChange()
}

// waitForChange blocks until the collection signals a change
func (m Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return changeMsg{}
	}
}

// setMessage shows msg in the status bar and schedules its removal
func (m *Model) setMessage(msg string) tea.Cmd {
	m.message = msg
	m.messageSeq++
	seq := m.messageSeq
	return tea.Tick(messageTimeout, func(time.Time) tea.Msg {
		return clearMessageMsg{seq: seq}
	})
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case changeMsg:
		m.rebuild()
		return m, m.waitForChange()

	case clearMessageMsg:
		if msg.seq == m.messageSeq {
			m.message = ""
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scrollToCursor()
		return m, nil

	case tea.KeyMsg:
		// Handle mode-specific input
		switch m.mode {
		case ModeAddTask, ModeEditTask:
			return m.updateForm(msg)
		case ModeSearch:
			return m.updateSearch(msg)
		case ModeGroupBy:
			return m.updateGroupMenu(msg)
		case ModeViewTask:
			return m.updateView(msg)
		case ModeConfirmDelete, ModeConfirmDeleteAll:
			return m.updateConfirm(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		}

		// Normal mode key handling
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

// handleNormalKeys handles key presses in normal mode
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		if m.cancelSub != nil {
			m.cancelSub()
		}
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		m.moveCursor(-1)

	case key.Matches(msg, keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, keys.Top):
		m.cursor = m.nextTaskRow(-1, 1)
		m.syncSelection()
		m.scrollToCursor()

	case key.Matches(msg, keys.Bottom):
		m.cursor = m.nextTaskRow(len(m.rows), -1)
		m.syncSelection()
		m.scrollToCursor()

	case key.Matches(msg, keys.Add):
		m.mode = ModeAddTask
		cmd := m.form.openAdd()
		return m, tea.Batch(cmd, textinput.Blink)

	case key.Matches(msg, keys.Edit):
		return m.startEditTask()

	case key.Matches(msg, keys.Enter):
		if m.currentTask() != nil {
			m.mode = ModeViewTask
		}

	case key.Matches(msg, keys.Star):
		return m.handleToggleStar()

	case key.Matches(msg, keys.Delete):
		return m.startDelete()

	case key.Matches(msg, keys.DeleteAll):
		if !m.opts.ConfirmDelete && m.tasks.Len() > 0 {
			return m.deleteAll()
		}
		m.mode = ModeConfirmDeleteAll

	case key.Matches(msg, keys.Search):
		m.mode = ModeSearch
		m.search.SetValue(m.tasks.SearchTerm())
		m.search.CursorEnd()
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, keys.Group):
		m.mode = ModeGroupBy
		m.groupCursor = 0
		for i, g := range model.GroupOptions {
			if g == m.groupBy {
				m.groupCursor = i
			}
		}

	case key.Matches(msg, keys.NextGroup):
		m.setGroupBy(m.groupBy.Next())

	case key.Matches(msg, keys.Escape):
		if m.tasks.SearchTerm() != "" {
			m.tasks.SetSearchTerm("")
			m.rebuild()
			cmd := m.setMessage("Search cleared")
			return m, cmd
		}

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp
	}

	return m, nil
}

func (m *Model) moveCursor(dir int) {
	if next := m.nextTaskRow(m.cursor, dir); next >= 0 {
		m.cursor = next
		m.syncSelection()
	}
	m.scrollToCursor()
}

func (m *Model) setGroupBy(g model.GroupBy) {
	m.groupBy = g
	m.offset = 0
	m.rebuild()
	m.scrollToCursor()
	logger.Debug("Grouping changed", logger.F("group_by", string(g)))
}

func (m Model) startEditTask() (tea.Model, tea.Cmd) {
	task := m.currentTask()
	if task == nil {
		return m, nil
	}
	m.mode = ModeEditTask
	cmd := m.form.openEdit(*task)
	return m, tea.Batch(cmd, textinput.Blink)
}

func (m Model) handleToggleStar() (tea.Model, tea.Cmd) {
	task := m.currentTask()
	if task == nil {
		return m, nil
	}
	toggled, ok := m.tasks.ToggleStar(task.ID)
	if !ok {
		return m, nil
	}
	m.rebuild()
	if toggled.Starred {
		cmd := m.setMessage("Starred: " + toggled.Title)
		return m, cmd
	}
	cmd := m.setMessage("Unstarred: " + toggled.Title)
	return m, cmd
}

func (m Model) startDelete() (tea.Model, tea.Cmd) {
	task := m.currentTask()
	if task == nil {
		return m, nil
	}
	m.pendingID = task.ID
	if !m.opts.ConfirmDelete {
		return m.deletePending()
	}
	m.mode = ModeConfirmDelete
	return m, nil
}

func (m Model) deletePending() (tea.Model, tea.Cmd) {
	id := m.pendingID
	m.pendingID = ""
	m.mode = ModeNormal

	// keep the cursor near the deleted row
	next := m.nextTaskRow(m.cursor, 1)
	if next < 0 {
		next = m.nextTaskRow(m.cursor, -1)
	}
	if next >= 0 && m.rows[next].task.ID != id {
		m.selectedID = m.rows[next].task.ID
		m.selectedBucket = m.rows[next].bucket
	}

	if !m.tasks.Delete(id) {
		cmd := m.setMessage("Task no longer exists")
		return m, cmd
	}
	m.rebuild()
	m.scrollToCursor()
	cmd := m.setMessage("Task deleted!")
	return m, cmd
}

func (m Model) deleteAll() (tea.Model, tea.Cmd) {
	m.mode = ModeNormal
	m.tasks.DeleteAll()
	m.rebuild()
	m.offset = 0
	cmd := m.setMessage("All tasks deleted")
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		return m, nil

	case key.Matches(msg, keys.NextField):
		cmd := m.form.focusField(m.form.focus + 1)
		return m, cmd

	case key.Matches(msg, keys.PrevField):
		cmd := m.form.focusField(m.form.focus - 1)
		return m, cmd

	case key.Matches(msg, keys.Cycle):
		m.form.cyclePriority()
		return m, nil

	case msg.Type == tea.KeyEnter:
		return m.submitForm()
	}

	cmd := m.form.update(msg)
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	if !m.form.validate() {
		logger.Debug("Task form rejected", logger.F("fields", len(m.form.errors)))
		return m, nil
	}

	v := m.form.value()
	now := m.now()

	if m.form.editing == "" {
		task := m.tasks.Add(v.AddInput(now))
		m.selectedID = task.ID
		m.selectedBucket = ""
		m.mode = ModeNormal
		m.rebuild()
		m.scrollToCursor()
		cmd := m.setMessage("Task added successfully!")
		return m, cmd
	}

	clearDue := m.form.hadDue && v.DueDate == ""
	if _, ok := m.tasks.Edit(m.form.editing, v.EditInput(now, clearDue)); !ok {
		m.mode = ModeNormal
		cmd := m.setMessage("Task no longer exists")
		return m, cmd
	}
	m.mode = ModeNormal
	m.rebuild()
	cmd := m.setMessage("Task updated successfully!")
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		m.search.Blur()
		m.tasks.SetSearchTerm("")
		m.rebuild()
		return m, nil

	case msg.Type == tea.KeyEnter:
		m.mode = ModeNormal
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	// Live filter as user types
	m.tasks.SetSearchTerm(m.search.Value())
	m.offset = 0
	m.rebuild()
	m.scrollToCursor()
	return m, cmd
}

func (m Model) updateGroupMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape), msg.String() == "q":
		m.mode = ModeNormal

	case key.Matches(msg, keys.Up):
		if m.groupCursor > 0 {
			m.groupCursor--
		}

	case key.Matches(msg, keys.Down):
		if m.groupCursor < len(model.GroupOptions)-1 {
			m.groupCursor++
		}

	case msg.Type == tea.KeyEnter:
		m.mode = ModeNormal
		m.setGroupBy(model.GroupOptions[m.groupCursor])

	case len(msg.Runes) == 1 && msg.Runes[0] >= '1' && int(msg.Runes[0]-'1') < len(model.GroupOptions):
		m.mode = ModeNormal
		m.setGroupBy(model.GroupOptions[msg.Runes[0]-'1'])
	}
	return m, nil
}

func (m Model) updateView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Edit):
		return m.startEditTask()
	case key.Matches(msg, keys.Star):
		return m.handleToggleStar()
	case key.Matches(msg, keys.Delete):
		return m.startDelete()
	}
	m.mode = ModeNormal
	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == ModeConfirmDeleteAll && m.tasks.Len() == 0 {
		m.mode = ModeNormal
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Yes):
		if m.mode == ModeConfirmDeleteAll {
			return m.deleteAll()
		}
		return m.deletePending()

	case key.Matches(msg, keys.No):
		m.mode = ModeNormal
		m.pendingID = ""
	}
	return m, nil
}

// scrollToCursor adjusts offset so the cursor row is visible
func (m *Model) scrollToCursor() {
	visible := m.visibleRows()
	if visible <= 0 {
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
		// show the bucket header above the first task
		if m.offset > 0 && m.rows[m.offset-1].task == nil {
			m.offset--
		}
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// visibleRows is the number of table rows that fit on screen
func (m *Model) visibleRows() int {
	// header, column header, rule, table padding and status bar
	return m.height - 9
}
