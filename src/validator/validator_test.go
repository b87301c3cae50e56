package validator_test

import (
	"testing"

	"keep-notes/src/domain"
	"keep-notes/src/validator"

	"github.com/stretchr/testify/assert"
)

func TestValidateDraft_EmptyDetection(t *testing.T) {
	dv := validator.NewDraftValidator()

	tests := []struct {
		name      string
		draft     domain.NoteDraft
		wantEmpty bool
	}{
		{
			name:      "zero value draft",
			draft:     domain.NoteDraft{},
			wantEmpty: true,
		},
		{
			name:      "whitespace title and content",
			draft:     domain.NoteDraft{Title: " ", Content: "\t\n"},
			wantEmpty: true,
		},
		{
			name:      "checklist type without items",
			draft:     domain.NoteDraft{Type: domain.TypeChecklist},
			wantEmpty: true,
		},
		{
			name:      "title alone is enough",
			draft:     domain.NoteDraft{Title: "a"},
			wantEmpty: false,
		},
		{
			name:      "content alone is enough",
			draft:     domain.NoteDraft{Content: "body"},
			wantEmpty: false,
		},
		{
			name: "single checklist item is enough",
			draft: domain.NoteDraft{
				Type:  domain.TypeChecklist,
				Items: []domain.ChecklistItem{{Text: "milk"}},
			},
			wantEmpty: false,
		},
		{
			name:      "image alone is enough",
			draft:     domain.NoteDraft{Images: []string{"data:image/png;base64,AAAA"}},
			wantEmpty: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := dv.ValidateDraft(tt.draft)
			if tt.wantEmpty {
				assert.ErrorIs(t, err, domain.ErrEmptyNote)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDraft_FieldRules(t *testing.T) {
	dv := validator.NewDraftValidator()
	reminder := "2026-03-01T09:00:00Z"
	badReminder := "tomorrow morning"
	dueDate := "2026-03-15"
	badDueDate := "15/03/2026"

	tests := []struct {
		name    string
		draft   domain.NoteDraft
		wantErr bool
	}{
		{
			name: "all fields valid",
			draft: domain.NoteDraft{
				Title:    "plan",
				Type:     domain.TypeText,
				Color:    domain.ColorBlue,
				Priority: domain.PriorityHigh,
				Tags:     []string{"work"},
				Reminder: &reminder,
				DueDate:  &dueDate,
			},
			wantErr: false,
		},
		{
			name:    "unknown note type",
			draft:   domain.NoteDraft{Title: "x", Type: domain.NoteType("drawing")},
			wantErr: true,
		},
		{
			name:    "unknown color",
			draft:   domain.NoteDraft{Title: "x", Color: domain.Color("magenta")},
			wantErr: true,
		},
		{
			name:    "unknown priority",
			draft:   domain.NoteDraft{Title: "x", Priority: domain.Priority("urgent")},
			wantErr: true,
		},
		{
			name:    "reminder not a timestamp",
			draft:   domain.NoteDraft{Title: "x", Reminder: &badReminder},
			wantErr: true,
		},
		{
			name:    "due date wrong layout",
			draft:   domain.NoteDraft{Title: "x", DueDate: &badDueDate},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := dv.ValidateDraft(tt.draft)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
