package storage

import (
	"context"

	"stylora-be/internal/domain"
)

// Gateway is the durable persistence contract: the whole snapshot is
// loaded once at startup and rewritten on every committed mutation.
//
// Load must degrade malformed or partial data to empty defaults; it only
// fails when the underlying medium is unreadable in an unrecoverable way.
// Save must be atomic from the perspective of a concurrent reader.
type Gateway interface {
	Load(ctx context.Context) (*domain.Snapshot, error)
	Save(ctx context.Context, snap *domain.Snapshot) error
}
