package mock

import (
	"context"

	"github.com/nasserq/raqeeb"
)

// Compile-time interface check
var _ raqeeb.SnapshotService = (*SnapshotService)(nil)

// SnapshotService is a mock implementation of raqeeb.SnapshotService.
type SnapshotService struct {
	BuildSnapshotFn func(ctx context.Context) (*raqeeb.Snapshot, error)
}

func (s *SnapshotService) BuildSnapshot(ctx context.Context) (*raqeeb.Snapshot, error) {
	if s.BuildSnapshotFn != nil {
		return s.BuildSnapshotFn(ctx)
	}
	return &raqeeb.Snapshot{}, nil
}
