package ui

import (
	"fmt"
	"strings"

	"keep-notes/src/domain"
	"keep-notes/src/query"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	sectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	bannerStyle   = lipgloss.NewStyle().Faint(true).Italic(true)
	statusStyle   = lipgloss.NewStyle().Faint(true)
	labelStyle    = lipgloss.NewStyle().Faint(true)

	// ノートカードの色はパレットに対応した ANSI カラーで表す
	cardColors = map[domain.Color]lipgloss.Style{
		domain.ColorRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		domain.ColorOrange: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		domain.ColorYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		domain.ColorGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		domain.ColorBlue:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		domain.ColorPurple: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		domain.ColorPink:   lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
	}
)

// View implements tea.Model.
func (m Model) View() string {
	if m.mode == modeEdit && m.form != nil {
		return m.viewForm()
	}
	return m.viewList()
}

func (m Model) viewList() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Keep Notes"))
	b.WriteString(labelStyle.Render(fmt.Sprintf("  [%s • %s]", m.view.Filter, sortLabel(m.view.Sort))))
	b.WriteString("\n\n")

	if m.mode == modeSearch {
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	} else if m.view.Search != "" {
		b.WriteString(labelStyle.Render("search: " + m.view.Search))
		b.WriteString("\n\n")
	}

	if m.view.Filter == query.FilterArchive {
		b.WriteString(bannerStyle.Render("Archive — notes here are hidden from the main list"))
		b.WriteString("\n\n")
	}

	if len(m.visible) == 0 {
		b.WriteString(labelStyle.Render("No notes. Press 'n' to create one."))
		b.WriteString("\n")
	} else {
		// ピン留めは表示上の先頭グループ。並び順自体は変えない
		pinned, others := query.Partition(m.visible)
		index := 0
		if len(pinned) > 0 {
			b.WriteString(sectionStyle.Render("Pinned"))
			b.WriteString("\n")
			index = m.renderNotes(&b, pinned, index)
			if len(others) > 0 {
				b.WriteString("\n")
				b.WriteString(sectionStyle.Render("Others"))
				b.WriteString("\n")
			}
		}
		m.renderNotes(&b, others, index)
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.helpLine()))
	return b.String()
}

// renderNotes writes one line per note and returns the next running
// index (the cursor runs over the partitioned display order).
func (m Model) renderNotes(b *strings.Builder, notes []domain.Note, index int) int {
	for _, note := range notes {
		line := m.renderNoteLine(&note)
		if index == m.cursorDisplayIndex() {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
		index++
	}
	return index
}

// cursorDisplayIndex maps the cursor (over the sorted list) onto the
// partitioned display order: pinned group first, then the rest.
func (m Model) cursorDisplayIndex() int {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return -1
	}
	target := m.visible[m.cursor].ID
	pinned, others := query.Partition(m.visible)
	for i, n := range pinned {
		if n.ID == target {
			return i
		}
	}
	for i, n := range others {
		if n.ID == target {
			return len(pinned) + i
		}
	}
	return -1
}

func (m Model) renderNoteLine(note *domain.Note) string {
	var marks []string
	if note.IsPinned {
		marks = append(marks, "*")
	}
	if note.IsFavorite {
		marks = append(marks, "fav")
	}
	if note.Priority != domain.PriorityNone && note.Priority != "" {
		marks = append(marks, note.Priority.String())
	}
	if note.DueDate != nil && *note.DueDate != "" {
		marks = append(marks, "due "+*note.DueDate)
	}
	if note.HasArmedReminder() {
		marks = append(marks, "rem")
	}
	if len(note.Images) > 0 {
		marks = append(marks, fmt.Sprintf("%d img", len(note.Images)))
	}
	if len(note.Tags) > 0 {
		marks = append(marks, "#"+strings.Join(note.Tags, " #"))
	}

	title := note.Title
	if note.Type == domain.TypeChecklist {
		done := 0
		for _, item := range note.Items {
			if item.Done {
				done++
			}
		}
		title = fmt.Sprintf("%s (%d/%d)", title, done, len(note.Items))
	}
	if style, ok := cardColors[note.Color]; ok {
		title = style.Render(title)
	}

	line := "  " + title
	if len(marks) > 0 {
		line += labelStyle.Render("  " + strings.Join(marks, " • "))
	}
	return line
}

func (m Model) viewForm() string {
	f := m.form
	var b strings.Builder

	if f.editingID == "" {
		b.WriteString(headerStyle.Render("New note"))
	} else {
		b.WriteString(headerStyle.Render("Edit note"))
	}
	b.WriteString("\n\n")

	b.WriteString(f.title.View())
	b.WriteString("\n")
	if f.noteType == domain.TypeChecklist {
		b.WriteString(labelStyle.Render("checklist — one item per line, \"[x] \" marks done"))
	} else {
		b.WriteString(labelStyle.Render("text"))
	}
	b.WriteString("\n")
	b.WriteString(f.body.View())
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("tags") + "\n" + f.tags.View())
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("reminder") + "\n" + f.reminder.View())
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("due date") + "\n" + f.dueDate.View())
	b.WriteString("\n\n")

	var flags []string
	flags = append(flags, "priority: "+string(f.priority))
	flags = append(flags, "color: "+string(f.color))
	if f.isPinned {
		flags = append(flags, "pinned")
	}
	if f.isFavorite {
		flags = append(flags, "favorite")
	}
	if len(f.images) > 0 {
		flags = append(flags, fmt.Sprintf("%d images", len(f.images)))
	}
	b.WriteString(labelStyle.Render(strings.Join(flags, " • ")))
	b.WriteString("\n\n")
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render("ctrl+s save • esc cancel • ctrl+l type • ctrl+r priority • ctrl+o color • ctrl+b pin • ctrl+f favorite"))
	return b.String()
}

func (m Model) helpLine() string {
	if m.view.Filter == query.FilterArchive {
		return "j/k move • a restore • c duplicate • d delete • f filter • s sort • / search • q quit"
	}
	return "j/k move • n new • enter edit • p pin • v favorite • a archive • c duplicate • d delete • f filter • s sort • / search • q quit"
}
