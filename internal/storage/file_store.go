package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const versionFileName = ".version"

// FileStore keeps each key in its own JSON file under a root directory.
// Writes replace the whole file for that key, so two keys are never updated
// atomically together.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{
		dir: dir,
	}
}

func (s *FileStore) Init() error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	marker := filepath.Join(s.dir, versionFileName)
	if _, err := os.Stat(marker); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.dir)
	}

	if err := os.WriteFile(marker, []byte("1\n"), 0600); err != nil {
		return fmt.Errorf("failed to write version marker: %w", err)
	}

	return nil
}

func (s *FileStore) Load() error {
	if _, err := os.Stat(filepath.Join(s.dir, versionFileName)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'ritual init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) Get(key string) (string, error) {
	data, err := os.ReadFile(s.keyPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return string(data), nil
}

func (s *FileStore) Set(key, value string) error {
	if err := os.WriteFile(s.keyPath(key), []byte(value), 0600); err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

func (s *FileStore) Remove(key string) error {
	if err := os.Remove(s.keyPath(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove key %q: %w", key, err)
	}
	return nil
}

func (s *FileStore) GetConfigPath() string {
	return s.dir
}

// keyPath maps a key to its backing file. Path separators are flattened so a
// key can never escape the storage directory.
func (s *FileStore) keyPath(key string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(s.dir, safe+".json")
}
