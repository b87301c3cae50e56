package domain

import "errors"

// Domain errors
var (
	// ErrNoteNotFound は指定された ID のノートが存在しない場合に返される
	ErrNoteNotFound = errors.New("note not found")
	// ErrEmptyNote はタイトルも本文も画像も持たないドラフトに対して返される
	ErrEmptyNote = errors.New("note cannot be empty")
)

// DefaultTitle is applied when a draft is saved without a title.
const DefaultTitle = "Untitled Note"

// DuplicateTitlePrefix is prepended to the title of a duplicated note.
const DuplicateTitlePrefix = "Copy of "

// ChangeType classifies a repository mutation for subscribers.
type ChangeType string

const (
	ChangeCreated    ChangeType = "created"
	ChangeUpdated    ChangeType = "updated"
	ChangeDeleted    ChangeType = "deleted"
	ChangeArchived   ChangeType = "archived"
	ChangeRestored   ChangeType = "restored"
	ChangeDuplicated ChangeType = "duplicated"
)

// ChangeEvent is delivered to subscribers after a mutation has been
// persisted. Note is nil for deletions.
type ChangeEvent struct {
	Type ChangeType
	Note *Note
}

// NoteRepository defines the interface for the canonical note collection.
// Lookups that miss return ErrNoteNotFound; Delete of an absent ID is a
// no-op. Every mutation persists the full collection before returning.
type NoteRepository interface {
	GetActive() []Note
	GetArchived() []Note
	GetAll() []Note
	GetByID(id string) (*Note, error)
	Create(draft NoteDraft) (*Note, error)
	Update(id string, patch NotePatch) (*Note, error)
	Delete(id string) error
	Archive(id string) (*Note, error)
	Unarchive(id string) (*Note, error)
	Duplicate(id string) (*Note, error)
	// Subscribe registers a callback invoked after persistence completes,
	// in registration order.
	Subscribe(fn func(ChangeEvent))
}
