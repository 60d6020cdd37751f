// Package kv is the persistence port: an opaque string key/value store
// holding small JSON-serializable blobs. The audit store reads and writes
// through this interface only, so backends can be swapped without touching
// callers.
package kv

// Store is the injected persistence collaborator.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent;
	// absence is not an error.
	Get(key string) (value string, ok bool, err error)
	// Set writes the value for key, replacing any previous value.
	Set(key, value string) error
}
