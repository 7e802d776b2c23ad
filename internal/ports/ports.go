package ports

import (
	"context"
	"time"

	"seopilot/internal/dashboard"
	"seopilot/internal/domain"
)

// Connections serves the dashboard view and bulk deletion.
type Connections interface {
	Dashboard(ctx context.Context, state dashboard.ViewState) (dashboard.View, error)
	Health(ctx context.Context, id string) (int, dashboard.HealthCategory, error)
	BulkDelete(ctx context.Context, ids []string) (int64, error)
}

// Scanner enqueues and tracks scans.
type Scanner interface {
	Enqueue(ctx context.Context, connectionID string) (scanID string, err error)
	EnqueueAll(ctx context.Context, connectionIDs []string) (scanIDs []string, err error)
	Status(ctx context.Context, scanID string) (status string, progress float64, err error)
}

// Requests accepts inbound connection requests.
type Requests interface {
	Submit(ctx context.Context, req domain.ConnectionRequest) (id string, err error)
}

// ScanEvent describes a finished scan for downstream consumers.
type ScanEvent struct {
	ScanID       string    `json:"scan_id"`
	ConnectionID string    `json:"connection_id"`
	Status       string    `json:"status"`
	Reason       string    `json:"reason,omitempty"`
	FinishedAt   time.Time `json:"finished_at"`
}

// EventPublisher pushes scan lifecycle events onto the bus. Implementations
// must tolerate being nil-checked out of the wiring entirely.
type EventPublisher interface {
	PublishScanCompleted(ev ScanEvent) error
	PublishScanFailed(ev ScanEvent) error
}
