package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrKeyNotFound はキーに対応するエントリが存在しない場合に返される
var ErrKeyNotFound = errors.New("key not found")

// KVStore は同期的な文字列キーバリューストア（localStorage 相当）。
// Get は存在しないキーに対して ErrKeyNotFound を返す。
type KVStore interface {
	Get(key string) (string, error)
	Set(key string, value string) error
}

// FileStore is a KVStore that keeps each key as a file inside a data
// directory. Writes go to a temporary file first and are renamed into
// place, so a Set is a single store operation from the caller's view.
type FileStore struct {
	fs  afero.Fs
	dir string
}

// NewFileStore creates a file-backed store rooted at dir, creating the
// directory if needed.
func NewFileStore(fs afero.Fs, dir string) (*FileStore, error) {
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{fs: fs, dir: dir}, nil
}

// Get はキーの値を読み出す
func (s *FileStore) Get(key string) (string, error) {
	data, err := afero.ReadFile(s.fs, s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(data), nil
}

// Set はキーの値を書き込む
func (s *FileStore) Set(key string, value string) error {
	tmp := s.path(key) + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, []byte(value), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := s.fs.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("failed to commit %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
