package kv

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File is a Store backed by a single JSON object file, written atomically
// (tmp + rename) to prevent partial reads. A missing or malformed file
// reads as empty; corruption never surfaces as an error.
type File struct {
	path string
	mu   sync.Mutex
}

// NewFile creates a file-backed store at path, creating the parent
// directory if needed.
func NewFile(path string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("kv: create directory: %w", err)
	}
	return &File{path: path}, nil
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

// Get reads the value for key.
func (f *File) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	m := f.read()
	v, ok := m[key]
	return v, ok, nil
}

// Set writes the value for key and persists the whole map atomically.
func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	m := f.read()
	m[key] = value

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("kv: marshal: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("kv: write temp file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("kv: rename to final: %w", err)
	}
	return nil
}

// read loads the backing file, degrading to an empty map when the file is
// missing or unparsable.
func (f *File) read() map[string]string {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return map[string]string{}
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil || m == nil {
		return map[string]string{}
	}
	return m
}
