package repository

import (
	"encoding/json"
	"fmt"

	"keep-notes/src/domain"
	"keep-notes/src/storage"

	"github.com/sirupsen/logrus"
)

// StorageKey is the single store entry holding the whole note collection.
const StorageKey = "modern_notes_app_data"

// NoteStore is the persistence adapter: it serializes the full collection
// as one JSON blob under StorageKey. Missing or corrupt data degrades to
// an empty collection and is logged, never surfaced as an error.
type NoteStore struct {
	kv     storage.KVStore
	logger *logrus.Logger
}

// NewNoteStore creates a new persistence adapter over a key-value store.
func NewNoteStore(kv storage.KVStore, logger *logrus.Logger) *NoteStore {
	return &NoteStore{kv: kv, logger: logger}
}

// Load reads the stored collection. 破損データは空のコレクションとして扱う
func (s *NoteStore) Load() []domain.Note {
	raw, err := s.kv.Get(StorageKey)
	if err != nil {
		if err != storage.ErrKeyNotFound {
			s.logger.WithError(err).Error("ノートの読み込みに失敗")
		}
		return []domain.Note{}
	}

	var notes []domain.Note
	if err := json.Unmarshal([]byte(raw), &notes); err != nil {
		s.logger.WithError(err).Error("保存データの解析に失敗、空のコレクションを返します")
		return []domain.Note{}
	}
	if notes == nil {
		return []domain.Note{}
	}
	return notes
}

// Save serializes and writes the full collection in one store operation.
func (s *NoteStore) Save(notes []domain.Note) error {
	data, err := json.Marshal(notes)
	if err != nil {
		return fmt.Errorf("failed to serialize notes: %w", err)
	}
	if err := s.kv.Set(StorageKey, string(data)); err != nil {
		return fmt.Errorf("failed to persist notes: %w", err)
	}
	return nil
}
