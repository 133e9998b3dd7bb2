package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/taskdeck/internal/form"
	"github.com/existflow/taskdeck/internal/model"
)

// column identifies a table column
type column int

const (
	colStar column = iota
	colTitle
	colDescription
	colTags
	colPriority
	colDue
)

var columnTitles = map[column]string{
	colStar:        "★",
	colTitle:       "Title",
	colDescription: "Description",
	colTags:        "Tags",
	colPriority:    "Priority",
	colDue:         "Due",
}

// columnsFor returns the visible columns. The column matching the active
// grouping is hidden since the bucket header already shows it.
func columnsFor(by model.GroupBy) []column {
	cols := make([]column, 0, 6)
	if by != model.GroupFavorites {
		cols = append(cols, colStar)
	}
	cols = append(cols, colTitle, colDescription)
	if by != model.GroupTags {
		cols = append(cols, colTags)
	}
	if by != model.GroupPriority {
		cols = append(cols, colPriority)
	}
	return append(cols, colDue)
}

// columnWidths distributes width over cols, giving the rest to the description
func columnWidths(cols []column, width int) map[column]int {
	fixed := map[column]int{
		colStar:     2,
		colTitle:    22,
		colTags:     24,
		colPriority: 8,
		colDue:      11,
	}
	widths := make(map[column]int, len(cols))
	used := 0
	for _, c := range cols {
		if w, ok := fixed[c]; ok {
			widths[c] = w
			used += w + 1
		}
	}
	widths[colDescription] = max(12, width-used-1)
	return widths
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := m.renderHeader()
	mainContent := m.renderTable()
	statusBar := m.renderStatusBar()

	var modal string
	switch m.mode {
	case ModeAddTask:
		modal = m.form.view("Add Task")
	case ModeEditTask:
		modal = m.form.view("Edit Task")
	case ModeViewTask:
		modal = m.renderDetails()
	case ModeConfirmDelete:
		modal = m.renderConfirmDelete()
	case ModeConfirmDeleteAll:
		modal = m.renderConfirmDeleteAll()
	case ModeGroupBy:
		modal = m.renderGroupMenu()
	case ModeHelp:
		modal = m.renderHelp()
	}

	if modal != "" {
		mainContent = lipgloss.Place(
			m.width, max(lipgloss.Height(mainContent), m.height-lipgloss.Height(header)-2),
			lipgloss.Center, lipgloss.Center,
			modal,
			lipgloss.WithWhitespaceChars(" "),
		)
	}

	// Combine with status bar
	return lipgloss.JoinVertical(lipgloss.Left, header, mainContent, statusBar)
}

func (m Model) renderHeader() string {
	title := HeaderStyle.Render("TaskDeck")
	info := fmt.Sprintf("%d tasks  Group: %s", m.tasks.Len(), m.groupBy)
	if term := m.tasks.SearchTerm(); term != "" {
		info += fmt.Sprintf("  Search: %q (%d)", term, m.taskCount())
	}
	if m.opts.ListenAddr != "" {
		info += "  API: " + m.opts.ListenAddr
	}
	return title + HelpStyle.Render(info)
}

func (m Model) renderTable() string {
	width := m.width - 4
	cols := columnsFor(m.groupBy)
	widths := columnWidths(cols, width)

	var s strings.Builder

	// Column headers
	cells := make([]string, len(cols))
	for i, c := range cols {
		cells[i] = pad(columnTitles[c], widths[c])
	}
	s.WriteString(ColumnHeaderStyle.Render(strings.Join(cells, " ")) + "\n")
	s.WriteString(lipgloss.NewStyle().Foreground(Border).Render(strings.Repeat("─", max(0, width))) + "\n")

	if len(m.rows) == 0 {
		s.WriteString("\n" + HelpStyle.Render("  No tasks to display. Press 'a' to add one."))
		return TableStyle.Width(m.width).Render(s.String())
	}

	end := len(m.rows)
	if visible := m.visibleRows(); visible > 0 && m.offset+visible < end {
		end = m.offset + visible
	}

	for i := m.offset; i < end; i++ {
		r := m.rows[i]
		if r.task == nil {
			s.WriteString(BucketHeaderStyle.Render(r.header) + "\n")
			continue
		}

		style := TaskItemStyle
		if i == m.cursor {
			style = TaskItemSelectedStyle
		}
		for j, c := range cols {
			cells[j] = m.renderCell(*r.task, c, widths[c])
		}
		s.WriteString(style.Render(strings.Join(cells, " ")) + "\n")
	}

	if end < len(m.rows) {
		s.WriteString(HelpStyle.Render(fmt.Sprintf("  ... %d more", len(m.rows)-end)))
	}

	return TableStyle.Width(m.width).Render(s.String())
}

func (m Model) renderCell(t model.Task, c column, width int) string {
	switch c {
	case colStar:
		if t.Starred {
			return StarStyle.Render(pad("★", width))
		}
		return pad("☆", width)
	case colTitle:
		return pad(truncate(t.Title, width), width)
	case colDescription:
		return pad(truncate(t.Description, width), width)
	case colTags:
		return pad(FormatTags(fitTags(t.Tags, width), t.TagColors), width)
	case colPriority:
		return pad(FormatPriority(t.Priority), width)
	case colDue:
		if t.DueDate == nil {
			return pad("-", width)
		}
		due := t.DueDate.Format(form.DateLayout)
		if t.IsOverdue() {
			return OverdueStyle.Render(pad(due, width))
		}
		return pad(due, width)
	}
	return pad("", width)
}

// fitTags drops trailing tags that don't fit in width, marking the cut with "+N"
func fitTags(tags []string, width int) []string {
	used := 0
	for i, tag := range tags {
		w := lipgloss.Width(tag)
		if i > 0 {
			w++
		}
		rest := 0
		if i < len(tags)-1 {
			rest = 4 // room for " +N"
		}
		if used+w+rest > width {
			return append(tags[:i:i], fmt.Sprintf("+%d", len(tags)-i))
		}
		used += w
	}
	return tags
}

func (m Model) renderStatusBar() string {
	// When searching, show the inline input (like vim)
	if m.mode == ModeSearch {
		return StatusBarStyle.Width(m.width).Render(m.search.View() + HelpStyle.Render(fmt.Sprintf("  [%d matches]  Enter:keep  Esc:clear", m.taskCount())))
	}

	help := "a:add  e:edit  enter:view  s:star  d:del  D:del all  /:search  g:group  ?:help  q:quit"
	if m.message != "" {
		help = m.message
	} else if term := m.tasks.SearchTerm(); term != "" {
		help = fmt.Sprintf("/%s  [%d matches]  Esc:clear", term, m.taskCount())
	}

	return StatusBarStyle.Width(m.width).Render(help)
}

func (m Model) renderDetails() string {
	task := m.currentTask()
	if task == nil {
		return ""
	}
	t := *task

	label := func(s string) string {
		return LabelStyle.Render(pad(s, 13))
	}
	star := "No"
	if t.Starred {
		star = StarStyle.Render("★ Yes")
	}
	due := "None"
	if t.DueDate != nil {
		due = t.DueDate.Format("Mon, Jan 2 2006")
		if t.IsOverdue() {
			due = OverdueStyle.Render(due + " (overdue)")
		}
	}

	var s strings.Builder
	s.WriteString(lipgloss.NewStyle().Bold(true).Foreground(Primary).Render(t.Title) + "\n\n")
	s.WriteString(lipgloss.NewStyle().Width(50).Render(t.Description) + "\n\n")
	s.WriteString(label("Tags") + FormatTags(t.Tags, t.TagColors) + "\n")
	s.WriteString(label("Priority") + FormatPriority(t.Priority) + "\n")
	s.WriteString(label("Starred") + star + "\n")
	s.WriteString(label("Due") + due + "\n")
	s.WriteString(label("Created") + t.CreatedAt.Local().Format("2006-01-02 15:04") + "\n")
	s.WriteString(label("ID") + HelpStyle.Render(t.ID) + "\n\n")
	s.WriteString(HelpStyle.Render("e:edit  s:star  d:delete  any key:close"))

	return ModalStyle.Width(56).Render(s.String())
}

func (m Model) renderConfirmDelete() string {
	title := ""
	if t, ok := m.tasks.Get(m.pendingID); ok {
		title = t.Title
	}

	content := lipgloss.NewStyle().Bold(true).Foreground(Danger).Render("Delete Task") + "\n\n"
	content += fmt.Sprintf("Are you sure you want to delete %q?\n", title)
	content += "This action cannot be undone.\n\n"
	content += HelpStyle.Render("y:delete  n:cancel")
	return DangerModalStyle.Render(content)
}

func (m Model) renderConfirmDeleteAll() string {
	if m.tasks.Len() == 0 {
		content := lipgloss.NewStyle().Bold(true).Render("No Tasks Available") + "\n\n"
		content += "There are no tasks to delete.\n\n"
		content += HelpStyle.Render("any key:close")
		return ModalStyle.Render(content)
	}

	content := lipgloss.NewStyle().Bold(true).Foreground(Danger).Render("Delete All Tasks") + "\n\n"
	content += fmt.Sprintf("Are you sure you want to delete all %d tasks?\n", m.tasks.Len())
	content += "This action cannot be undone.\n\n"
	content += HelpStyle.Render("y:delete all  n:cancel")
	return DangerModalStyle.Render(content)
}

func (m Model) renderGroupMenu() string {
	content := lipgloss.NewStyle().Bold(true).Foreground(Primary).Render("Group By") + "\n\n"
	for i, g := range model.GroupOptions {
		marker := "  "
		style := lipgloss.NewStyle()
		if i == m.groupCursor {
			marker = "❯ "
			style = lipgloss.NewStyle().Bold(true).Foreground(Primary)
		}
		current := ""
		if g == m.groupBy {
			current = HelpStyle.Render(" (current)")
		}
		content += style.Render(fmt.Sprintf("%s%d %s", marker, i+1, g)) + current + "\n"
	}
	content += "\n" + HelpStyle.Render("↑↓:nav  Enter:select  Esc:close")
	return ModalStyle.Width(36).Render(content)
}

func (m Model) renderHelp() string {
	help := `Keyboard Shortcuts

Navigation
  j/↓      Move down
  k/↑      Move up
  home/G   Top / bottom

Actions
  a        Add task
  e        Edit task
  enter/v  View details
  s        Star / unstar
  d        Delete
  D        Delete all

View
  /        Search (live)
  esc      Clear search
  g        Group by menu
  tab      Next grouping

Other
  ?        Toggle help
  q        Quit

Press any key to close`
	return ModalStyle.Render(help)
}
