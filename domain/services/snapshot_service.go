package services

import (
	"context"

	"cardapio-digital/domain/dto"
)

// SnapshotService archives the whole catalog to storage
type SnapshotService interface {
	TakeSnapshot(ctx context.Context) (*dto.SnapshotResponse, error)
	// Prune keeps the newest keep snapshots and deletes the rest
	Prune(ctx context.Context, keep int) (int, error)
}
