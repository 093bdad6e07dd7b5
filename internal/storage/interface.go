package storage

import "errors"

// ErrKeyNotFound is returned by Get for keys with no stored value.
var ErrKeyNotFound = errors.New("key not found")

// Provider is a string-keyed blob store. Each key addresses one independent
// value; there is no transactionality across keys.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Blobs
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error

	// Utils
	GetConfigPath() string
}
