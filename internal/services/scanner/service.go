package scanner

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"

	"seopilot/internal/ports"
)

// Service enqueues scans for connections.
type Service struct {
	conns ports.ConnectionRepository
	scans ports.ScanRepository
}

func New(conns ports.ConnectionRepository, scans ports.ScanRepository) *Service {
	return &Service{conns: conns, scans: scans}
}

// Enqueue creates a queued scan for a known connection.
func (s *Service) Enqueue(ctx context.Context, connectionID string) (string, error) {
	_, found, err := s.conns.Get(ctx, connectionID)
	if err != nil {
		return "", err
	}
	if !found {
		return "", fmt.Errorf("connection %s: %w", connectionID, ErrUnknownConnection)
	}
	return s.scans.CreateScan(ctx, connectionID)
}

// EnqueueAll enqueues one scan per id. It stops on the first error so the
// caller can report how far it got.
func (s *Service) EnqueueAll(ctx context.Context, connectionIDs []string) ([]string, error) {
	scanIDs := make([]string, 0, len(connectionIDs))
	for _, id := range connectionIDs {
		scanID, err := s.Enqueue(ctx, id)
		if err != nil {
			return scanIDs, err
		}
		scanIDs = append(scanIDs, scanID)
	}
	return scanIDs, nil
}

// Status reports a scan's lifecycle state and progress.
func (s *Service) Status(ctx context.Context, scanID string) (string, float64, error) {
	return s.scans.ScanStatus(ctx, scanID)
}

// NormalizeStoreURL reduces a submitted store URL to its registrable domain
// (eTLD+1). Bare hostnames are accepted; hosts without a known public suffix
// fall back to the hostname itself.
func NormalizeStoreURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyURL
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", ErrEmptyURL
	}
	registrable, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		registrable = host
	}
	return registrable, nil
}

var (
	ErrUnknownConnection = errString("unknown connection")
	ErrEmptyURL          = errString("store url is empty")
)

type errString string

func (e errString) Error() string { return string(e) }
