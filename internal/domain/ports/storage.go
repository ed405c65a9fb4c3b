package ports

import (
	"context"

	"github.com/ersonp/kin-core/internal/domain/entities"
)

// Storage persists family graph snapshots. Implementations must treat Load
// on an empty backend as success returning an empty snapshot, not an error.
// The store saves best-effort after each mutation and never blocks on the
// result, so Save should be safe to call concurrently with itself.
type Storage interface {
	// Load returns the last-saved snapshot, or an empty snapshot when
	// nothing was saved yet.
	Load(ctx context.Context) (*entities.Snapshot, error)

	// Save replaces the persisted state with the given snapshot.
	Save(ctx context.Context, snap *entities.Snapshot) error

	// Close releases the backend.
	Close() error
}
