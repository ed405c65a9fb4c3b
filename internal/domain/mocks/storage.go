package mocks

import (
	"context"
	"sync"

	"github.com/ersonp/kin-core/internal/domain/entities"
)

// Storage is a mock implementation of ports.Storage backed by memory.
type Storage struct {
	mu        sync.Mutex
	snap      *entities.Snapshot
	SaveCalls int
	LoadErr   error
	SaveErr   error
}

// NewStorage creates a new mock Storage.
func NewStorage() *Storage {
	return &Storage{}
}

// Load returns the last saved snapshot, or an empty one.
func (m *Storage) Load(_ context.Context) (*entities.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.snap == nil {
		return entities.EmptySnapshot(), nil
	}
	return m.snap.Clone(), nil
}

// Save stores the snapshot in memory.
func (m *Storage) Save(_ context.Context, snap *entities.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.snap = snap.Clone()
	return nil
}

// Close is a no-op.
func (m *Storage) Close() error {
	return nil
}

// Saved returns the last saved snapshot, or nil.
func (m *Storage) Saved() *entities.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap
}
