package repository

import (
	"context"

	"github.com/alexanderramin/rota/internal/domain"
)

// ErrNotFound is returned when a lookup matches no row. It is the same
// sentinel as domain.ErrNotFound so callers can test either.
var ErrNotFound = domain.ErrNotFound

type SnapshotRepo interface {
	Create(ctx context.Context, s *domain.Snapshot) error
	GetByID(ctx context.Context, id string) (*domain.Snapshot, error)
	List(ctx context.Context) ([]*domain.Snapshot, error)
	Delete(ctx context.Context, id string) error
	// Prune deletes all but the keep newest snapshots and returns how many
	// rows were removed.
	Prune(ctx context.Context, keep int) (int, error)
}
