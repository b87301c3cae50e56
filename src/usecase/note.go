package usecase

import (
	"strings"

	"keep-notes/src/domain"
	"keep-notes/src/validator"

	"github.com/sirupsen/logrus"
)

// NoteUsecase defines the interface for note business logic. It is the
// boundary the presentation layer talks to: drafts are validated and
// normalized here before they reach the repository.
type NoteUsecase interface {
	SaveNote(draft domain.NoteDraft) (*domain.Note, error)
	EditNote(id string, draft domain.NoteDraft) (*domain.Note, error)
	DeleteNote(id string) error
	ArchiveNote(id string) (*domain.Note, error)
	RestoreNote(id string) (*domain.Note, error)
	DuplicateNote(id string) (*domain.Note, error)
}

type noteUsecase struct {
	repo      domain.NoteRepository
	validator *validator.DraftValidator
	logger    *logrus.Logger
}

// NewNoteUsecase creates a new note usecase.
func NewNoteUsecase(repo domain.NoteRepository, dv *validator.DraftValidator, logger *logrus.Logger) NoteUsecase {
	return &noteUsecase{
		repo:      repo,
		validator: dv,
		logger:    logger,
	}
}

// SaveNote validates a draft and creates a new note.
func (u *noteUsecase) SaveNote(draft domain.NoteDraft) (*domain.Note, error) {
	normalizeDraft(&draft)
	if err := u.validator.ValidateDraft(draft); err != nil {
		u.logger.WithError(err).Warn("ドラフトの検証に失敗")
		return nil, err
	}
	return u.repo.Create(draft)
}

// EditNote validates a draft and overwrites the note's user-editable
// fields with it. The modal submits every field, so absent reminder and
// due date values clear the stored ones.
func (u *noteUsecase) EditNote(id string, draft domain.NoteDraft) (*domain.Note, error) {
	normalizeDraft(&draft)
	if err := u.validator.ValidateDraft(draft); err != nil {
		u.logger.WithError(err).Warn("ドラフトの検証に失敗")
		return nil, err
	}

	patch := domain.NotePatch{
		Title:         &draft.Title,
		Content:       &draft.Content,
		Type:          &draft.Type,
		Items:         &draft.Items,
		Images:        &draft.Images,
		IsPinned:      &draft.IsPinned,
		IsFavorite:    &draft.IsFavorite,
		Color:         &draft.Color,
		Tags:          &draft.Tags,
		Priority:      &draft.Priority,
		Reminder:      draft.Reminder,
		ClearReminder: draft.Reminder == nil,
		DueDate:       draft.DueDate,
		ClearDueDate:  draft.DueDate == nil,
	}
	return u.repo.Update(id, patch)
}

// DeleteNote removes a note permanently.
func (u *noteUsecase) DeleteNote(id string) error {
	return u.repo.Delete(id)
}

// ArchiveNote archives a note.
func (u *noteUsecase) ArchiveNote(id string) (*domain.Note, error) {
	return u.repo.Archive(id)
}

// RestoreNote restores an archived note.
func (u *noteUsecase) RestoreNote(id string) (*domain.Note, error) {
	return u.repo.Unarchive(id)
}

// DuplicateNote duplicates a note.
func (u *noteUsecase) DuplicateNote(id string) (*domain.Note, error) {
	return u.repo.Duplicate(id)
}

// normalizeDraft trims text fields, deduplicates tags and clears the
// body that does not match the note type.
func normalizeDraft(draft *domain.NoteDraft) {
	draft.Title = strings.TrimSpace(draft.Title)
	draft.Content = strings.TrimSpace(draft.Content)

	if draft.Type == "" {
		draft.Type = domain.TypeText
	}
	if draft.Type == domain.TypeText {
		draft.Items = []domain.ChecklistItem{}
	} else {
		draft.Content = ""
	}

	items := make([]domain.ChecklistItem, 0, len(draft.Items))
	for _, item := range draft.Items {
		item.Text = strings.TrimSpace(item.Text)
		if item.Text != "" {
			items = append(items, item)
		}
	}
	draft.Items = items

	draft.Tags = normalizeTags(draft.Tags)

	if r := draft.Reminder; r != nil && strings.TrimSpace(*r) == "" {
		draft.Reminder = nil
	}
	if d := draft.DueDate; d != nil && strings.TrimSpace(*d) == "" {
		draft.DueDate = nil
	}
}

// normalizeTags drops empty entries and duplicates, keeping first
// occurrence order.
func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		result = append(result, tag)
	}
	return result
}
