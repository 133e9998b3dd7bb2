package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/taskdeck/internal/form"
	"github.com/existflow/taskdeck/internal/model"
)

// form field indexes, in tab order
const (
	fieldTitle = iota
	fieldDescription
	fieldTags
	fieldPriority
	fieldDueDate
	fieldCount
)

var fieldNames = [fieldCount]string{
	fieldTitle:       form.FieldTitle,
	fieldDescription: form.FieldDescription,
	fieldTags:        form.FieldTags,
	fieldPriority:    form.FieldPriority,
	fieldDueDate:     form.FieldDueDate,
}

var fieldLabels = [fieldCount]string{
	fieldTitle:       "Title",
	fieldDescription: "Description",
	fieldTags:        "Tags",
	fieldPriority:    "Priority",
	fieldDueDate:     "Due date",
}

// formModel is the add/edit task dialog
type formModel struct {
	inputs [fieldCount]textinput.Model
	focus  int
	errors map[string]string

	// editing is the id of the task being edited, empty when adding
	editing string
	hadDue  bool
}

func newFormModel() formModel {
	var f formModel
	placeholders := [fieldCount]string{
		fieldTitle:       "3-10 characters",
		fieldDescription: "3-100 characters",
		fieldTags:        "comma separated, e.g. web, api",
		fieldPriority:    "Low, Medium or High (ctrl+p cycles)",
		fieldDueDate:     "YYYY-MM-DD, today, tomorrow, +3d",
	}
	limits := [fieldCount]int{
		fieldTitle:       form.TitleMax * 2,
		fieldDescription: form.DescriptionMax * 2,
		fieldTags:        200,
		fieldPriority:    10,
		fieldDueDate:     10,
	}

	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = limits[i]
		ti.Width = 44
		ti.Prompt = ""
		f.inputs[i] = ti
	}
	return f
}

// openAdd resets the dialog for a new task
func (f *formModel) openAdd() tea.Cmd {
	f.fill(form.TaskForm{Priority: string(model.DefaultPriority)})
	f.editing = ""
	f.hadDue = false
	return f.focusField(fieldTitle)
}

// openEdit prefills the dialog with t
func (f *formModel) openEdit(t model.Task) tea.Cmd {
	f.fill(form.FromTask(t))
	f.editing = t.ID
	f.hadDue = t.DueDate != nil
	cmd := f.focusField(fieldTitle)
	f.inputs[fieldTitle].CursorEnd()
	return cmd
}

func (f *formModel) fill(v form.TaskForm) {
	values := [fieldCount]string{
		fieldTitle:       v.Title,
		fieldDescription: v.Description,
		fieldTags:        v.Tags,
		fieldPriority:    v.Priority,
		fieldDueDate:     v.DueDate,
	}
	for i := range f.inputs {
		f.inputs[i].SetValue(values[i])
	}
	f.errors = nil
}

func (f *formModel) focusField(i int) tea.Cmd {
	f.focus = (i + fieldCount) % fieldCount
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	return f.inputs[f.focus].Focus()
}

// value returns the typed input
func (f *formModel) value() form.TaskForm {
	return form.TaskForm{
		Title:       f.inputs[fieldTitle].Value(),
		Description: f.inputs[fieldDescription].Value(),
		Tags:        f.inputs[fieldTags].Value(),
		Priority:    f.inputs[fieldPriority].Value(),
		DueDate:     f.inputs[fieldDueDate].Value(),
	}
}

// validate checks the input and stores per-field messages
func (f *formModel) validate() bool {
	v := f.value()
	var err error
	if f.editing == "" {
		err = v.Validate()
	} else {
		err = v.ValidatePartial()
	}
	f.errors = form.Messages(err)
	return err == nil
}

// cyclePriority replaces the priority field with the next priority
func (f *formModel) cyclePriority() {
	cur, ok := model.ParsePriority(f.inputs[fieldPriority].Value())
	next := model.DefaultPriority
	if ok {
		for i, p := range model.Priorities {
			if p == cur {
				next = model.Priorities[(i+1)%len(model.Priorities)]
			}
		}
	}
	f.inputs[fieldPriority].SetValue(string(next))
	f.inputs[fieldPriority].CursorEnd()
}

func (f *formModel) update(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f formModel) view(title string) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(Primary).Render(title) + "\n\n")

	for i := range f.inputs {
		label := fieldLabels[i]
		style := LabelStyle
		if i == f.focus {
			style = LabelFocusedStyle
		}
		b.WriteString(style.Render(label) + "\n")
		b.WriteString(InputStyle.Render(f.inputs[i].View()) + "\n")
		if msg, ok := f.errors[fieldNames[i]]; ok {
			b.WriteString(ErrorStyle.Render("  "+label+" "+msg) + "\n")
		}
	}

	b.WriteString("\n" + HelpStyle.Render("Tab/↓:next  Shift+Tab/↑:prev  Enter:save  Esc:cancel"))
	return ModalStyle.Width(56).Render(b.String())
}
