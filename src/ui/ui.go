// Package ui is the presentation layer: a single interactive terminal
// session over the note repository and the view query engine. It holds no
// note state of its own and re-derives the displayed list after every
// mutation.
package ui

import (
	"fmt"

	"keep-notes/src/domain"
	"keep-notes/src/query"
	"keep-notes/src/usecase"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type mode int

const (
	modeList mode = iota
	modeSearch
	modeEdit
	modeConfirmDelete
)

// NotesChangedMsg is sent into the program when the repository changes
// outside the UI loop (e.g. the reminder scheduler marking a note shown).
type NotesChangedMsg struct{}

// Model is the bubbletea model for the note list and the edit form.
type Model struct {
	notes    usecase.NoteUsecase
	repo     domain.NoteRepository
	view     query.View
	visible  []domain.Note
	cursor   int
	mode     mode
	search   textinput.Model
	form     *noteForm
	status   string
	pending  *domain.Note
	width    int
	height   int
}

// New creates the UI model.
func New(notes usecase.NoteUsecase, repo domain.NoteRepository) Model {
	search := textinput.New()
	search.Placeholder = "Search notes..."
	search.CharLimit = 128
	search.Width = 40

	m := Model{
		notes:  notes,
		repo:   repo,
		view:   query.View{Filter: query.FilterAll, Sort: query.SortDate},
		search: search,
		status: "n new • enter edit • / search • f filter • s sort • q quit",
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case NotesChangedMsg:
		m.refresh()
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.form != nil {
			m.form.resize(msg.Width)
		}
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeEdit:
			return m.updateEditMode(msg)
		case modeSearch:
			return m.updateSearchMode(msg)
		case modeConfirmDelete:
			return m.updateDeleteConfirm(msg.String())
		default:
			return m.updateListMode(msg.String())
		}
	}
	return m, nil
}

// refresh re-derives the displayed list from a fresh repository read.
func (m *Model) refresh() {
	var snapshot []domain.Note
	if m.view.Filter == query.FilterArchive {
		snapshot = m.repo.GetArchived()
	} else {
		snapshot = m.repo.GetActive()
	}
	m.visible = query.Apply(snapshot, m.view)
	m.cursor = clampCursor(m.cursor, len(m.visible))
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "n":
		m.form = newNoteForm(nil, m.width)
		m.mode = modeEdit
		m.status = "New note: tab next field • ctrl+s save • esc cancel"
	case "enter":
		if note := m.selected(); note != nil {
			m.form = newNoteForm(note, m.width)
			m.mode = modeEdit
			m.status = "Edit note: tab next field • ctrl+s save • esc cancel"
		}

	case "/":
		m.mode = modeSearch
		m.search.SetValue(m.view.Search)
		m.search.Focus()
	case "f":
		m.view.Filter = nextFilter(m.view.Filter)
		m.cursor = 0
		m.refresh()
		m.status = "Filter: " + string(m.view.Filter)
	case "s":
		m.view.Sort = nextSort(m.view.Sort)
		m.refresh()
		m.status = "Sort: " + sortLabel(m.view.Sort)

	case "p":
		if note := m.selected(); note != nil && !note.IsArchived {
			pinned := !note.IsPinned
			if _, err := m.repo.Update(note.ID, domain.NotePatch{IsPinned: &pinned}); err != nil {
				m.status = fmt.Sprintf("pin failed: %v", err)
				return m, nil
			}
			m.refresh()
			m.status = toastPinned(pinned)
		}
	case "v":
		if note := m.selected(); note != nil {
			favorite := !note.IsFavorite
			if _, err := m.repo.Update(note.ID, domain.NotePatch{IsFavorite: &favorite}); err != nil {
				m.status = fmt.Sprintf("favorite failed: %v", err)
				return m, nil
			}
			m.refresh()
			m.status = toastFavorite(favorite)
		}

	case "a":
		note := m.selected()
		if note == nil {
			return m, nil
		}
		if m.view.Filter == query.FilterArchive {
			if _, err := m.notes.RestoreNote(note.ID); err != nil {
				m.status = fmt.Sprintf("restore failed: %v", err)
				return m, nil
			}
			m.refresh()
			m.status = "Note restored"
		} else {
			if _, err := m.notes.ArchiveNote(note.ID); err != nil {
				m.status = fmt.Sprintf("archive failed: %v", err)
				return m, nil
			}
			m.refresh()
			m.status = "Note archived"
		}
	case "c":
		if note := m.selected(); note != nil {
			if _, err := m.notes.DuplicateNote(note.ID); err != nil {
				m.status = fmt.Sprintf("duplicate failed: %v", err)
				return m, nil
			}
			m.refresh()
			m.status = "Note duplicated"
		}
	case "d":
		if note := m.selected(); note != nil {
			m.pending = note
			m.mode = modeConfirmDelete
			if m.view.Filter == query.FilterArchive {
				m.status = fmt.Sprintf("Delete %q permanently? y/n", note.Title)
			} else {
				m.status = fmt.Sprintf("Delete %q? y/n", note.Title)
			}
		}
	}
	return m, nil
}

func (m Model) updateSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.view.Search = ""
		m.search.Blur()
		m.refresh()
		return m, nil
	case "enter":
		m.mode = modeList
		m.search.Blur()
		return m, nil
	default:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.view.Search = m.search.Value()
		m.cursor = 0
		m.refresh()
		return m, cmd
	}
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y":
		if m.pending != nil {
			if err := m.notes.DeleteNote(m.pending.ID); err != nil {
				m.status = fmt.Sprintf("delete failed: %v", err)
			} else {
				m.status = "Note deleted"
			}
		}
		m.pending = nil
		m.mode = modeList
		m.refresh()
		return m, nil
	case "n", "N", "esc":
		m.pending = nil
		m.mode = modeList
		m.status = "Delete cancelled"
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) updateEditMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.form = nil
		m.mode = modeList
		m.status = "Cancelled"
		return m, nil
	case "ctrl+s":
		draft := m.form.draft()
		var err error
		if m.form.editingID == "" {
			_, err = m.notes.SaveNote(draft)
		} else {
			_, err = m.notes.EditNote(m.form.editingID, draft)
		}
		if err != nil {
			m.status = fmt.Sprintf("save failed: %v", err)
			return m, nil
		}
		if m.form.editingID == "" {
			m.status = "Note created"
		} else {
			m.status = "Note updated"
		}
		m.form = nil
		m.mode = modeList
		m.refresh()
		return m, nil
	default:
		cmd := m.form.update(msg)
		return m, cmd
	}
}

func (m Model) selected() *domain.Note {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return nil
	}
	note := m.visible[m.cursor]
	return &note
}

func clampCursor(cursor, length int) int {
	if length == 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

func nextFilter(f query.Filter) query.Filter {
	switch f {
	case query.FilterAll:
		return query.FilterFavorites
	case query.FilterFavorites:
		return query.FilterArchive
	default:
		return query.FilterAll
	}
}

func nextSort(s query.Sort) query.Sort {
	switch s {
	case query.SortDate:
		return query.SortPriority
	case query.SortPriority:
		return query.SortAlpha
	case query.SortAlpha:
		return query.SortDueDate
	default:
		return query.SortDate
	}
}

func sortLabel(s query.Sort) string {
	switch s {
	case query.SortPriority:
		return "priority"
	case query.SortAlpha:
		return "title"
	case query.SortDueDate:
		return "due date"
	default:
		return "last updated"
	}
}

func toastPinned(pinned bool) string {
	if pinned {
		return "Note pinned"
	}
	return "Note unpinned"
}

func toastFavorite(favorite bool) string {
	if favorite {
		return "Added to favorites"
	}
	return "Removed from favorites"
}
