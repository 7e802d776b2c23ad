package ports

import (
	"context"
	"errors"

	"seopilot/internal/domain"
)

// ErrNotFound is returned by repositories and services when a record does
// not exist.
var ErrNotFound = errors.New("not found")

// ConnectionRepository stores and fetches connection snapshots. List returns
// each connection with its aggregate counts and a recent sample of issues.
type ConnectionRepository interface {
	List(ctx context.Context) ([]domain.Connection, error)
	Get(ctx context.Context, id string) (domain.Connection, bool, error)
	Delete(ctx context.Context, ids []string) (int64, error)
	TouchLastSync(ctx context.Context, id string) error
}

// RequestRepository persists inbound connection requests.
type RequestRepository interface {
	CreateRequest(ctx context.Context, req domain.ConnectionRequest) (id string, err error)
}

// ScanRepository manages scan records and job tracking.
type ScanRepository interface {
	CreateScan(ctx context.Context, connectionID string) (scanID string, err error)
	ScanStatus(ctx context.Context, scanID string) (status string, progress float64, err error)
}

// SnapshotCache caches computed per-connection health so repeated dashboard
// polls between scans skip recomputation. Misses are not errors.
type SnapshotCache interface {
	GetHealth(ctx context.Context, connectionID string) (score int, ok bool, err error)
	SetHealth(ctx context.Context, connectionID string, score int) error
	Invalidate(ctx context.Context, connectionIDs ...string) error
}
