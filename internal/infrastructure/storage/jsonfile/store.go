// Package jsonfile provides a JSON-file implementation of the Storage
// interface. The document shape is the interchange format the CLI's export
// and import commands speak as well:
//
//	{"people": [...], "edges": [...], "spouses": [...]}
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ersonp/kin-core/internal/domain/entities"
)

// Store implements ports.Storage on a single JSON document. Writes go
// through a temp file and rename so a crash mid-save never corrupts the
// last good state.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a JSON-file store at the given path.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("json file path is required")
	}
	return &Store{path: path}, nil
}

// Path returns the document file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the document; a missing file yields an empty snapshot.
func (s *Store) Load(_ context.Context) (*entities.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return entities.EmptySnapshot(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	snap := entities.EmptySnapshot()
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	return snap, nil
}

// Save writes the document atomically.
func (s *Store) Save(_ context.Context, snap *entities.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".family-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}

// Close is a no-op; the store holds no open handles between calls.
func (s *Store) Close() error {
	return nil
}
