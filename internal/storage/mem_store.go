package storage

import "fmt"

// MemStore is an in-memory Provider used by tests. FailReads and FailWrites
// force Get/Set/Remove to error so callers' degradation paths can be
// exercised.
type MemStore struct {
	blobs      map[string]string
	FailReads  bool
	FailWrites bool
}

func NewMemStore() *MemStore {
	return &MemStore{
		blobs: make(map[string]string),
	}
}

func (s *MemStore) Init() error { return nil }
func (s *MemStore) Load() error { return nil }
func (s *MemStore) Close() error {
	return nil
}

func (s *MemStore) Get(key string) (string, error) {
	if s.FailReads {
		return "", fmt.Errorf("injected read failure for key %q", key)
	}
	value, ok := s.blobs[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

func (s *MemStore) Set(key, value string) error {
	if s.FailWrites {
		return fmt.Errorf("injected write failure for key %q", key)
	}
	s.blobs[key] = value
	return nil
}

func (s *MemStore) Remove(key string) error {
	if s.FailWrites {
		return fmt.Errorf("injected write failure for key %q", key)
	}
	delete(s.blobs, key)
	return nil
}

func (s *MemStore) GetConfigPath() string {
	return ":memory:"
}
