package scores

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Blob is one named slot of persistent storage holding the encoded table.
// Load returns nil data and no error when the slot was never written.
type Blob interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// MemoryBlob keeps the slot in memory.
type MemoryBlob struct {
	mu   sync.Mutex
	data []byte
	// Err, when set, is returned by every Save.
	Err error
}

// Load implements Blob.
func (m *MemoryBlob) Load() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.data...), nil
}

// Save implements Blob.
func (m *MemoryBlob) Save(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.data = append(m.data[:0], data...)
	return nil
}

// FileBlob stores the slot in a single file, replacing it atomically.
type FileBlob struct {
	Path string
}

// NewFileBlob returns a blob at path. A leading ~ expands to the home
// directory.
func NewFileBlob(path string) (*FileBlob, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("scores: get home dir: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	return &FileBlob{Path: path}, nil
}

// Load implements Blob.
func (f *FileBlob) Load() ([]byte, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scores: read %s: %w", f.Path, err)
	}
	return data, nil
}

// Save implements Blob.
func (f *FileBlob) Save(data []byte) error {
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("scores: create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".scores-*.tmp")
	if err != nil {
		return fmt.Errorf("scores: create temp: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("scores: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("scores: close: %w", err)
	}
	if err := os.Rename(tmpPath, f.Path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("scores: replace %s: %w", f.Path, err)
	}
	return nil
}
