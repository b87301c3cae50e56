package ui

import (
	"strings"

	"keep-notes/src/domain"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	fieldTitle = iota
	fieldBody
	fieldTags
	fieldReminder
	fieldDueDate
	fieldCount
)

// noteForm is the create/edit form. It mirrors the note modal of a
// typical notes app: free fields plus cycled enum values and toggles.
type noteForm struct {
	editingID string

	title    textinput.Model
	body     textarea.Model
	tags     textinput.Model
	reminder textinput.Model
	dueDate  textinput.Model
	focus    int

	noteType   domain.NoteType
	priority   domain.Priority
	color      domain.Color
	isPinned   bool
	isFavorite bool
	// 画像データは外部コラボレータ由来なので編集では保持するだけ
	images []string
}

func newNoteForm(note *domain.Note, width int) *noteForm {
	f := &noteForm{
		title:    textinput.New(),
		body:     textarea.New(),
		tags:     textinput.New(),
		reminder: textinput.New(),
		dueDate:  textinput.New(),
		noteType: domain.TypeText,
		priority: domain.PriorityNone,
		color:    domain.ColorDefault,
		images:   []string{},
	}

	f.title.Placeholder = "Title"
	f.title.CharLimit = 200
	f.body.Placeholder = "Take a note..."
	f.tags.Placeholder = "tags, comma, separated"
	f.reminder.Placeholder = "2024-01-15T09:00:00Z"
	f.dueDate.Placeholder = "2024-01-15"

	if note != nil {
		f.editingID = note.ID
		f.title.SetValue(note.Title)
		f.noteType = note.Type
		if note.Type == domain.TypeChecklist {
			f.body.SetValue(renderChecklist(note.Items))
		} else {
			f.body.SetValue(note.Content)
		}
		f.tags.SetValue(strings.Join(note.Tags, ", "))
		if note.Reminder != nil {
			f.reminder.SetValue(*note.Reminder)
		}
		if note.DueDate != nil {
			f.dueDate.SetValue(*note.DueDate)
		}
		f.priority = note.Priority
		f.color = note.Color
		f.isPinned = note.IsPinned
		f.isFavorite = note.IsFavorite
		f.images = append([]string{}, note.Images...)
	}

	f.resize(width)
	f.title.Focus()
	return f
}

func (f *noteForm) resize(width int) {
	w := width - 4
	if w < 20 {
		w = 60
	}
	f.title.Width = w
	f.body.SetWidth(w)
	f.body.SetHeight(6)
	f.tags.Width = w
	f.reminder.Width = w
	f.dueDate.Width = w
}

// update routes keys to the focused field and handles the form-level
// shortcuts (focus cycling, toggles, enum cycling).
func (f *noteForm) update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab":
		f.setFocus((f.focus + 1) % fieldCount)
		return nil
	case "shift+tab":
		f.setFocus((f.focus + fieldCount - 1) % fieldCount)
		return nil
	case "ctrl+l":
		f.toggleType()
		return nil
	case "ctrl+r":
		f.priority = nextPriority(f.priority)
		return nil
	case "ctrl+o":
		f.color = nextColor(f.color)
		return nil
	case "ctrl+b":
		f.isPinned = !f.isPinned
		return nil
	case "ctrl+f":
		f.isFavorite = !f.isFavorite
		return nil
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case fieldBody:
		f.body, cmd = f.body.Update(msg)
	case fieldTags:
		f.tags, cmd = f.tags.Update(msg)
	case fieldReminder:
		f.reminder, cmd = f.reminder.Update(msg)
	case fieldDueDate:
		f.dueDate, cmd = f.dueDate.Update(msg)
	}
	return cmd
}

func (f *noteForm) setFocus(focus int) {
	f.title.Blur()
	f.body.Blur()
	f.tags.Blur()
	f.reminder.Blur()
	f.dueDate.Blur()

	f.focus = focus
	switch focus {
	case fieldTitle:
		f.title.Focus()
	case fieldBody:
		f.body.Focus()
	case fieldTags:
		f.tags.Focus()
	case fieldReminder:
		f.reminder.Focus()
	case fieldDueDate:
		f.dueDate.Focus()
	}
}

func (f *noteForm) toggleType() {
	if f.noteType == domain.TypeText {
		f.noteType = domain.TypeChecklist
	} else {
		f.noteType = domain.TypeText
	}
}

// draft assembles the submitted fields.
func (f *noteForm) draft() domain.NoteDraft {
	draft := domain.NoteDraft{
		Title:      f.title.Value(),
		Type:       f.noteType,
		Images:     f.images,
		IsPinned:   f.isPinned,
		IsFavorite: f.isFavorite,
		Color:      f.color,
		Priority:   f.priority,
	}

	if f.noteType == domain.TypeChecklist {
		draft.Items = parseChecklist(f.body.Value())
	} else {
		draft.Content = f.body.Value()
	}

	for _, tag := range strings.Split(f.tags.Value(), ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			draft.Tags = append(draft.Tags, tag)
		}
	}

	if v := strings.TrimSpace(f.reminder.Value()); v != "" {
		draft.Reminder = &v
	}
	if v := strings.TrimSpace(f.dueDate.Value()); v != "" {
		draft.DueDate = &v
	}
	return draft
}

// parseChecklist turns body lines into checklist items. "[x] " 接頭辞は
// 完了済みを表す。
func parseChecklist(body string) []domain.ChecklistItem {
	var items []domain.ChecklistItem
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		item := domain.ChecklistItem{Text: line}
		switch {
		case strings.HasPrefix(line, "[x] "), strings.HasPrefix(line, "[X] "):
			item.Done = true
			item.Text = strings.TrimSpace(line[4:])
		case strings.HasPrefix(line, "[ ] "):
			item.Text = strings.TrimSpace(line[4:])
		}
		if item.Text != "" {
			items = append(items, item)
		}
	}
	return items
}

func renderChecklist(items []domain.ChecklistItem) string {
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		if item.Done {
			b.WriteString("[x] ")
		} else {
			b.WriteString("[ ] ")
		}
		b.WriteString(item.Text)
	}
	return b.String()
}

func nextPriority(p domain.Priority) domain.Priority {
	switch p {
	case domain.PriorityNone:
		return domain.PriorityHigh
	case domain.PriorityHigh:
		return domain.PriorityMedium
	case domain.PriorityMedium:
		return domain.PriorityLow
	default:
		return domain.PriorityNone
	}
}

func nextColor(c domain.Color) domain.Color {
	for i, pc := range domain.Palette {
		if pc == c {
			return domain.Palette[(i+1)%len(domain.Palette)]
		}
	}
	return domain.ColorDefault
}
