package domain

import "time"

// Core domain models used internally. Records are produced by the backend
// (request approval, scan completion, fix application) and treated as
// read-only snapshots by everything downstream.

// Platform identifies the hosting platform a connection runs on. Values
// outside the known set are allowed and get a default visual treatment.
type Platform string

const (
	PlatformShopify   Platform = "SHOPIFY"
	PlatformWordPress Platform = "WORDPRESS"
	PlatformWix       Platform = "WIX"
	PlatformCustom    Platform = "CUSTOM"
)

// Known reports whether p is one of the recognized platforms.
func (p Platform) Known() bool {
	switch p {
	case PlatformShopify, PlatformWordPress, PlatformWix, PlatformCustom:
		return true
	}
	return false
}

// ConnectionStatus is the lifecycle state of a connection.
type ConnectionStatus string

const (
	StatusConnected    ConnectionStatus = "CONNECTED"
	StatusPending      ConnectionStatus = "PENDING"
	StatusError        ConnectionStatus = "ERROR"
	StatusDisconnected ConnectionStatus = "DISCONNECTED"
)

// Severity of a detected issue. The set is closed; scoring matches against
// these exact tags and treats anything else as a low-weight issue.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
)

// Issue is a single detected problem on a connection.
type Issue struct {
	ID         string
	Status     string // open|resolved style lifecycle tag
	Type       string
	Title      string
	Severity   Severity
	DetectedAt time.Time
}

// Connection is a linked site/store, the unit of management in the dashboard.
//
// IssueCount and FixCount are denormalized aggregates and are authoritative;
// Issues may be a partial sample of the full issue list.
type Connection struct {
	ID          string
	Platform    Platform
	Domain      string
	DisplayName *string
	Status      ConnectionStatus
	LastSync    *time.Time
	Issues      []Issue
	IssueCount  int
	FixCount    int
}

// Name returns the display name, falling back to the domain when no label
// has been set.
func (c Connection) Name() string {
	if c.DisplayName != nil && *c.DisplayName != "" {
		return *c.DisplayName
	}
	return c.Domain
}

// ConnectionRequest is an inbound ask to link a new store.
type ConnectionRequest struct {
	ID        string
	Platform  Platform
	StoreURL  string
	StoreName string
	Message   string
	CreatedAt time.Time
}

// Scan tracks one re-scan of a connection.
type Scan struct {
	ID           string
	ConnectionID string
	StartedAt    *time.Time
	FinishedAt   *time.Time
	Status       string // queued|running|completed|failed
	Progress     float64
}
