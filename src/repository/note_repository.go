package repository

import (
	"strings"
	"sync"
	"time"

	"keep-notes/src/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// NoteRepository owns the canonical note collection. Every mutation is a
// full load-modify-save cycle against the persistence adapter, and
// subscribers are notified only after the save has completed.
type NoteRepository struct {
	mu          sync.Mutex
	store       *NoteStore
	logger      *logrus.Logger
	now         func() time.Time
	subscribers []func(domain.ChangeEvent)
}

var _ domain.NoteRepository = (*NoteRepository)(nil)

// NewNoteRepository creates a new note repository over a persistence adapter.
func NewNoteRepository(store *NoteStore, logger *logrus.Logger) *NoteRepository {
	return &NoteRepository{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the repository clock. テスト用
func (r *NoteRepository) WithClock(now func() time.Time) *NoteRepository {
	r.now = now
	return r
}

// Subscribe registers a callback invoked after each persisted mutation,
// in registration order.
func (r *NoteRepository) Subscribe(fn func(domain.ChangeEvent)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subscribers = append(r.subscribers, fn)
}

// GetActive returns all notes that are not archived.
func (r *NoteRepository) GetActive() []domain.Note {
	return r.filter(func(n *domain.Note) bool { return !n.IsArchived })
}

// GetArchived returns all archived notes.
func (r *NoteRepository) GetArchived() []domain.Note {
	return r.filter(func(n *domain.Note) bool { return n.IsArchived })
}

// GetAll returns the unfiltered collection.
func (r *NoteRepository) GetAll() []domain.Note {
	return r.filter(func(*domain.Note) bool { return true })
}

// GetByID returns a note by ID, or ErrNoteNotFound.
func (r *NoteRepository) GetByID(id string) (*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	notes := r.store.Load()
	for i := range notes {
		if notes[i].ID == id {
			note := notes[i]
			return &note, nil
		}
	}
	return nil, domain.ErrNoteNotFound
}

// Create assigns an ID and timestamps, applies field defaults, prepends
// the note to the collection and persists it.
func (r *NoteRepository) Create(draft domain.NoteDraft) (*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	note := domain.Note{
		ID:         uuid.New().String(),
		Title:      draft.Title,
		Content:    draft.Content,
		Items:      draft.Items,
		Type:       draft.Type,
		Images:     draft.Images,
		IsPinned:   draft.IsPinned,
		IsFavorite: draft.IsFavorite,
		IsArchived: false,
		Color:      draft.Color,
		Tags:       draft.Tags,
		Reminder:   draft.Reminder,
		DueDate:    draft.DueDate,
		Priority:   draft.Priority,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	applyDefaults(&note)

	// 先頭に追加する（未ソート表示は新しい順）
	notes := r.store.Load()
	notes = append([]domain.Note{note}, notes...)
	if err := r.store.Save(notes); err != nil {
		return nil, err
	}

	r.logger.WithField("note_id", note.ID).Info("ノートを作成しました")
	r.notify(domain.ChangeEvent{Type: domain.ChangeCreated, Note: &note})
	return &note, nil
}

// Update merges the provided fields over the existing note and stamps
// UpdatedAt. Unspecified fields are retained.
func (r *NoteRepository) Update(id string, patch domain.NotePatch) (*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	note, err := r.mutate(id, func(n *domain.Note) {
		applyPatch(n, patch)
	})
	if err != nil {
		return nil, err
	}

	r.notify(domain.ChangeEvent{Type: domain.ChangeUpdated, Note: note})
	return note, nil
}

// Delete removes the note permanently. 存在しない ID は no-op
func (r *NoteRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	notes := r.store.Load()
	kept := notes[:0]
	for _, n := range notes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	if err := r.store.Save(kept); err != nil {
		return err
	}

	r.logger.WithField("note_id", id).Info("ノートを削除しました")
	r.notify(domain.ChangeEvent{Type: domain.ChangeDeleted})
	return nil
}

// Archive sets IsArchived and unpins the note.
func (r *NoteRepository) Archive(id string) (*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	note, err := r.mutate(id, func(n *domain.Note) {
		n.IsArchived = true
		n.IsPinned = false
	})
	if err != nil {
		return nil, err
	}

	r.notify(domain.ChangeEvent{Type: domain.ChangeArchived, Note: note})
	return note, nil
}

// Unarchive clears IsArchived.
func (r *NoteRepository) Unarchive(id string) (*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	note, err := r.mutate(id, func(n *domain.Note) {
		n.IsArchived = false
	})
	if err != nil {
		return nil, err
	}

	r.notify(domain.ChangeEvent{Type: domain.ChangeRestored, Note: note})
	return note, nil
}

// Duplicate clones the note under a new ID with a "Copy of " title prefix.
// The copy is unpinned, not archived and loses the original's reminder so
// it cannot fire a second notification.
func (r *NoteRepository) Duplicate(id string) (*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	notes := r.store.Load()
	var original *domain.Note
	for i := range notes {
		if notes[i].ID == id {
			original = &notes[i]
			break
		}
	}
	if original == nil {
		return nil, domain.ErrNoteNotFound
	}

	now := r.now()
	dup := *original
	dup.ID = uuid.New().String()
	dup.Title = domain.DuplicateTitlePrefix + original.Title
	dup.IsPinned = false
	dup.IsArchived = false
	dup.Reminder = nil
	dup.ReminderShown = false
	dup.CreatedAt = now
	dup.UpdatedAt = now
	dup.Items = append([]domain.ChecklistItem(nil), original.Items...)
	dup.Images = append([]string(nil), original.Images...)
	dup.Tags = append([]string(nil), original.Tags...)

	notes = append([]domain.Note{dup}, notes...)
	if err := r.store.Save(notes); err != nil {
		return nil, err
	}

	r.logger.WithFields(logrus.Fields{
		"note_id":     dup.ID,
		"original_id": id,
	}).Info("ノートを複製しました")
	r.notify(domain.ChangeEvent{Type: domain.ChangeDuplicated, Note: &dup})
	return &dup, nil
}

// mutate applies fn to the note with the given ID, stamps UpdatedAt,
// persists the collection and returns a copy of the updated note.
// Caller must hold the lock.
func (r *NoteRepository) mutate(id string, fn func(*domain.Note)) (*domain.Note, error) {
	notes := r.store.Load()
	for i := range notes {
		if notes[i].ID != id {
			continue
		}
		fn(&notes[i])
		notes[i].UpdatedAt = r.now()
		if err := r.store.Save(notes); err != nil {
			return nil, err
		}
		note := notes[i]
		return &note, nil
	}
	return nil, domain.ErrNoteNotFound
}

func (r *NoteRepository) filter(keep func(*domain.Note) bool) []domain.Note {
	r.mu.Lock()
	defer r.mu.Unlock()

	notes := r.store.Load()
	result := make([]domain.Note, 0, len(notes))
	for i := range notes {
		if keep(&notes[i]) {
			result = append(result, notes[i])
		}
	}
	return result
}

// notify runs subscribers in registration order. Caller must hold the
// lock; persistence has already completed.
func (r *NoteRepository) notify(event domain.ChangeEvent) {
	for _, fn := range r.subscribers {
		fn(event)
	}
}

func applyDefaults(n *domain.Note) {
	if strings.TrimSpace(n.Title) == "" {
		n.Title = domain.DefaultTitle
	}
	if n.Type == "" {
		n.Type = domain.TypeText
	}
	if n.Color == "" {
		n.Color = domain.ColorDefault
	}
	if n.Priority == "" {
		n.Priority = domain.PriorityNone
	}
	if n.Items == nil {
		n.Items = []domain.ChecklistItem{}
	}
	if n.Images == nil {
		n.Images = []string{}
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}
}

func applyPatch(n *domain.Note, patch domain.NotePatch) {
	if patch.Title != nil {
		n.Title = *patch.Title
	}
	if patch.Content != nil {
		n.Content = *patch.Content
	}
	if patch.Type != nil {
		n.Type = *patch.Type
	}
	if patch.Items != nil {
		n.Items = *patch.Items
	}
	if patch.Images != nil {
		n.Images = *patch.Images
	}
	if patch.IsPinned != nil {
		n.IsPinned = *patch.IsPinned
	}
	if patch.IsFavorite != nil {
		n.IsFavorite = *patch.IsFavorite
	}
	if patch.Color != nil {
		n.Color = *patch.Color
	}
	if patch.Tags != nil {
		n.Tags = *patch.Tags
	}
	if patch.Reminder != nil {
		n.Reminder = patch.Reminder
	} else if patch.ClearReminder {
		n.Reminder = nil
	}
	if patch.DueDate != nil {
		n.DueDate = patch.DueDate
	} else if patch.ClearDueDate {
		n.DueDate = nil
	}
	if patch.Priority != nil {
		n.Priority = *patch.Priority
	}
	if patch.ReminderShown != nil {
		n.ReminderShown = *patch.ReminderShown
	}
}
