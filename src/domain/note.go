package domain

import (
	"time"
)

// Note represents a note domain entity.
// フィールド名は保存フォーマット（JSON）のキーと一致させる
type Note struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Content       string          `json:"content"`
	Items         []ChecklistItem `json:"items"`
	Type          NoteType        `json:"type"`
	Images        []string        `json:"images"`
	IsPinned      bool            `json:"isPinned"`
	IsFavorite    bool            `json:"isFavorite"`
	IsArchived    bool            `json:"isArchived"`
	Color         Color           `json:"color"`
	Tags          []string        `json:"tags"`
	Reminder      *string         `json:"reminder"`
	ReminderShown bool            `json:"reminderShown"`
	DueDate       *string         `json:"dueDate"`
	Priority      Priority        `json:"priority"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ChecklistItem represents a single entry of a checklist note
type ChecklistItem struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// NoteType represents the kind of note body
type NoteType string

const (
	TypeText      NoteType = "text"
	TypeChecklist NoteType = "checklist"
)

// Priority represents note priority levels
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
	PriorityNone   Priority = "none"
)

// Color represents a note card color from the fixed palette
type Color string

const (
	ColorDefault Color = "default"
	ColorRed     Color = "red"
	ColorOrange  Color = "orange"
	ColorYellow  Color = "yellow"
	ColorGreen   Color = "green"
	ColorBlue    Color = "blue"
	ColorPurple  Color = "purple"
	ColorPink    Color = "pink"
)

// Palette is the full set of selectable colors, in picker order.
var Palette = []Color{
	ColorDefault, ColorRed, ColorOrange, ColorYellow,
	ColorGreen, ColorBlue, ColorPurple, ColorPink,
}

// DueDateLayout 期限日は時刻を持たない日付文字列として保存される
const DueDateLayout = "2006-01-02"

// IsValid validates if the note type is valid
func (t NoteType) IsValid() bool {
	switch t {
	case TypeText, TypeChecklist:
		return true
	default:
		return false
	}
}

// IsValid validates if the priority is valid
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow, PriorityNone:
		return true
	default:
		return false
	}
}

// Rank returns the sort rank of the priority (high sorts first)
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// IsValid validates if the color belongs to the palette
func (c Color) IsValid() bool {
	for _, pc := range Palette {
		if c == pc {
			return true
		}
	}
	return false
}

// String returns string representation of Priority
func (p Priority) String() string {
	return string(p)
}

// String returns string representation of NoteType
func (t NoteType) String() string {
	return string(t)
}

// ReminderTime parses the reminder timestamp. The second return value is
// false when no reminder is set or the stored string is not a timestamp.
func (n *Note) ReminderTime() (time.Time, bool) {
	if n.Reminder == nil || *n.Reminder == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, *n.Reminder)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DueDateTime parses the due date. The second return value is false when no
// due date is set or the stored string is not a date.
func (n *Note) DueDateTime() (time.Time, bool) {
	if n.DueDate == nil || *n.DueDate == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DueDateLayout, *n.DueDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// HasArmedReminder reports whether the note has a reminder that has not
// been shown yet.
func (n *Note) HasArmedReminder() bool {
	return n.Reminder != nil && *n.Reminder != "" && !n.ReminderShown
}
