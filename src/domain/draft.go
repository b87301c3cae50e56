package domain

// NoteDraft is user-submitted input for a new note, prior to defaulting.
// Repository.Create fills in the ID, timestamps and missing defaults.
type NoteDraft struct {
	Title      string          `validate:"max=200"`
	Content    string          `validate:"-"`
	Type       NoteType        `validate:"omitempty,oneof=text checklist"`
	Items      []ChecklistItem `validate:"-"`
	Images     []string        `validate:"-"`
	IsPinned   bool            `validate:"-"`
	IsFavorite bool            `validate:"-"`
	Color      Color           `validate:"omitempty,oneof=default red orange yellow green blue purple pink"`
	Tags       []string        `validate:"omitempty,dive,required"`
	Reminder   *string         `validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	DueDate    *string         `validate:"omitempty,datetime=2006-01-02"`
	Priority   Priority        `validate:"omitempty,oneof=high medium low none"`
}

// NotePatch is a field-level partial update. nil フィールドは変更しない
// Reminder/DueDate は "設定されていない" と "消去する" を区別するため
// 明示的な Clear フラグを持つ。
type NotePatch struct {
	Title         *string
	Content       *string
	Type          *NoteType
	Items         *[]ChecklistItem
	Images        *[]string
	IsPinned      *bool
	IsFavorite    *bool
	Color         *Color
	Tags          *[]string
	Reminder      *string
	ClearReminder bool
	DueDate       *string
	ClearDueDate  bool
	Priority      *Priority
	ReminderShown *bool
}
