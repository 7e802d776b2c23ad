package requests

import (
	"context"
	"fmt"
	"strings"
	"time"

	"seopilot/internal/domain"
	"seopilot/internal/ports"
	"seopilot/internal/services/scanner"
)

// Service validates and stores inbound connection requests.
type Service struct {
	repo ports.RequestRepository
}

func New(repo ports.RequestRepository) *Service {
	return &Service{repo: repo}
}

// Submit validates the request, normalizes the store URL to its registrable
// domain, and persists it for review. Unrecognized platforms are recorded as
// CUSTOM rather than rejected.
func (s *Service) Submit(ctx context.Context, req domain.ConnectionRequest) (string, error) {
	normalized, err := scanner.NormalizeStoreURL(req.StoreURL)
	if err != nil {
		return "", fmt.Errorf("invalid store url: %w", err)
	}
	req.StoreURL = normalized

	req.StoreName = strings.TrimSpace(req.StoreName)
	if req.StoreName == "" {
		req.StoreName = normalized
	}
	if !req.Platform.Known() {
		req.Platform = domain.PlatformCustom
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}
	return s.repo.CreateRequest(ctx, req)
}
