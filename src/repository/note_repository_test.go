package repository_test

import (
	"testing"
	"time"

	"keep-notes/src/domain"
	"keep-notes/src/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *repository.NoteRepository {
	t.Helper()
	store, _ := newTestStore(t)
	return repository.NewNoteRepository(store, testLogger())
}

func TestNoteRepository_CreateAppliesDefaults(t *testing.T) {
	repo := newTestRepository(t)

	note, err := repo.Create(domain.NoteDraft{Content: "something"})
	require.NoError(t, err)

	assert.NotEmpty(t, note.ID)
	assert.Equal(t, domain.DefaultTitle, note.Title)
	assert.Equal(t, domain.TypeText, note.Type)
	assert.Equal(t, domain.ColorDefault, note.Color)
	assert.Equal(t, domain.PriorityNone, note.Priority)
	assert.False(t, note.IsArchived)
	assert.False(t, note.ReminderShown)
	assert.NotNil(t, note.Items)
	assert.NotNil(t, note.Images)
	assert.NotNil(t, note.Tags)
	assert.Equal(t, note.CreatedAt, note.UpdatedAt)
}

func TestNoteRepository_CreatePrepends(t *testing.T) {
	repo := newTestRepository(t)

	first, err := repo.Create(domain.NoteDraft{Title: "first"})
	require.NoError(t, err)
	second, err := repo.Create(domain.NoteDraft{Title: "second"})
	require.NoError(t, err)

	all := repo.GetAll()
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)
}

func TestNoteRepository_GetByID(t *testing.T) {
	repo := newTestRepository(t)
	created, err := repo.Create(domain.NoteDraft{Title: "find me"})
	require.NoError(t, err)

	note, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "find me", note.Title)

	_, err = repo.GetByID("nope")
	assert.ErrorIs(t, err, domain.ErrNoteNotFound)
}

func TestNoteRepository_UpdateMergesFields(t *testing.T) {
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	now := base
	store, _ := newTestStore(t)
	repo := repository.NewNoteRepository(store, testLogger()).
		WithClock(func() time.Time { return now })

	created, err := repo.Create(domain.NoteDraft{
		Title:    "original",
		Content:  "body",
		Tags:     []string{"keep"},
		Priority: domain.PriorityLow,
	})
	require.NoError(t, err)

	now = base.Add(time.Minute)
	title := "renamed"
	updated, err := repo.Update(created.ID, domain.NotePatch{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, "body", updated.Content)
	assert.Equal(t, []string{"keep"}, updated.Tags)
	assert.Equal(t, domain.PriorityLow, updated.Priority)
	assert.Equal(t, base, updated.CreatedAt)
	assert.Equal(t, base.Add(time.Minute), updated.UpdatedAt)
}

func TestNoteRepository_UpdateUnknownID(t *testing.T) {
	repo := newTestRepository(t)

	title := "x"
	_, err := repo.Update("missing", domain.NotePatch{Title: &title})
	assert.ErrorIs(t, err, domain.ErrNoteNotFound)
}

func TestNoteRepository_UpdateClearsReminder(t *testing.T) {
	repo := newTestRepository(t)
	reminder := "2024-01-15T09:00:00Z"
	created, err := repo.Create(domain.NoteDraft{Title: "with reminder", Reminder: &reminder})
	require.NoError(t, err)

	updated, err := repo.Update(created.ID, domain.NotePatch{ClearReminder: true})
	require.NoError(t, err)
	assert.Nil(t, updated.Reminder)
}

func TestNoteRepository_Delete(t *testing.T) {
	repo := newTestRepository(t)
	created, err := repo.Create(domain.NoteDraft{Title: "doomed"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(created.ID))
	assert.Empty(t, repo.GetAll())

	// 存在しない ID の削除は no-op
	assert.NoError(t, repo.Delete("already gone"))
}

func TestNoteRepository_ArchiveUnpins(t *testing.T) {
	repo := newTestRepository(t)
	created, err := repo.Create(domain.NoteDraft{Title: "pinned", IsPinned: true})
	require.NoError(t, err)

	archived, err := repo.Archive(created.ID)
	require.NoError(t, err)

	assert.True(t, archived.IsArchived)
	assert.False(t, archived.IsPinned)
	assert.True(t, archived.UpdatedAt.After(created.UpdatedAt) || archived.UpdatedAt.Equal(created.UpdatedAt))
}

func TestNoteRepository_Unarchive(t *testing.T) {
	repo := newTestRepository(t)
	created, err := repo.Create(domain.NoteDraft{Title: "note"})
	require.NoError(t, err)
	_, err = repo.Archive(created.ID)
	require.NoError(t, err)

	restored, err := repo.Unarchive(created.ID)
	require.NoError(t, err)
	assert.False(t, restored.IsArchived)

	active := repo.GetActive()
	require.Len(t, active, 1)
	assert.Equal(t, created.ID, active[0].ID)
}

func TestNoteRepository_DuplicateResetsTransientState(t *testing.T) {
	repo := newTestRepository(t)
	reminder := "2024-01-15T09:00:00Z"
	created, err := repo.Create(domain.NoteDraft{
		Title:      "Original",
		Content:    "body",
		IsPinned:   true,
		IsFavorite: true,
		Reminder:   &reminder,
		Tags:       []string{"a", "b"},
	})
	require.NoError(t, err)

	dup, err := repo.Duplicate(created.ID)
	require.NoError(t, err)

	assert.NotEqual(t, created.ID, dup.ID)
	assert.Equal(t, "Copy of Original", dup.Title)
	assert.False(t, dup.IsPinned)
	assert.False(t, dup.IsArchived)
	assert.Nil(t, dup.Reminder)
	assert.False(t, dup.ReminderShown)
	assert.True(t, dup.IsFavorite)
	assert.Equal(t, []string{"a", "b"}, dup.Tags)

	// 複製はコレクションの先頭に追加される
	all := repo.GetAll()
	require.Len(t, all, 2)
	assert.Equal(t, dup.ID, all[0].ID)

	_, err = repo.Duplicate("missing")
	assert.ErrorIs(t, err, domain.ErrNoteNotFound)
}

func TestNoteRepository_SubscriberRunsAfterPersist(t *testing.T) {
	store, _ := newTestStore(t)
	repo := repository.NewNoteRepository(store, testLogger())

	var events []domain.ChangeEvent
	var persistedDuringEvent int
	repo.Subscribe(func(event domain.ChangeEvent) {
		events = append(events, event)
		// 通知時点で永続化が完了していること
		persistedDuringEvent = len(store.Load())
	})

	note, err := repo.Create(domain.NoteDraft{Title: "observed"})
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, domain.ChangeCreated, events[0].Type)
	require.NotNil(t, events[0].Note)
	assert.Equal(t, note.ID, events[0].Note.ID)
	assert.Equal(t, 1, persistedDuringEvent)

	_, err = repo.Archive(note.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.ChangeArchived, events[1].Type)
}

func TestNoteRepository_EndToEndScenario(t *testing.T) {
	repo := newTestRepository(t)

	created, err := repo.Create(domain.NoteDraft{
		Title:   "Buy milk",
		Type:    domain.TypeText,
		Content: "2%",
	})
	require.NoError(t, err)

	active := repo.GetActive()
	require.Len(t, active, 1)
	assert.Equal(t, "Buy milk", active[0].Title)

	_, err = repo.Archive(created.ID)
	require.NoError(t, err)

	assert.Empty(t, repo.GetActive())
	archived := repo.GetArchived()
	require.Len(t, archived, 1)
	assert.True(t, archived[0].IsArchived)
}
