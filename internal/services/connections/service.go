package connections

import (
	"context"
	"log"

	"seopilot/internal/dashboard"
	"seopilot/internal/ports"
)

// Service serves the dashboard view over the stored connection snapshot and
// handles bulk deletion. The snapshot cache is optional; a nil cache means
// every health read recomputes.
type Service struct {
	repo  ports.ConnectionRepository
	cache ports.SnapshotCache
}

func New(repo ports.ConnectionRepository, cache ports.SnapshotCache) *Service {
	return &Service{repo: repo, cache: cache}
}

// Dashboard loads the snapshot and runs the derive pipeline for the given
// view state. Computed scores are written through to the cache so the
// single-connection health endpoint can serve hits between scans.
func (s *Service) Dashboard(ctx context.Context, state dashboard.ViewState) (dashboard.View, error) {
	conns, err := s.repo.List(ctx)
	if err != nil {
		return dashboard.View{}, err
	}
	view := dashboard.Derive(conns, state)
	if s.cache != nil {
		for _, item := range view.Items {
			if err := s.cache.SetHealth(ctx, item.ID, item.Score); err != nil {
				// Cache writes are best effort.
				log.Printf("health cache write for %s: %v", item.ID, err)
				break
			}
		}
	}
	return view, nil
}

// Health returns one connection's score and category, served from the cache
// when possible.
func (s *Service) Health(ctx context.Context, id string) (int, dashboard.HealthCategory, error) {
	if s.cache != nil {
		if score, ok, err := s.cache.GetHealth(ctx, id); err == nil && ok {
			return score, dashboard.CategoryFor(score), nil
		} else if err != nil {
			log.Printf("health cache read for %s: %v", id, err)
		}
	}
	c, found, err := s.repo.Get(ctx, id)
	if err != nil {
		return 0, "", err
	}
	if !found {
		return 0, "", ports.ErrNotFound
	}
	score := dashboard.HealthScore(c)
	if s.cache != nil {
		if err := s.cache.SetHealth(ctx, id, score); err != nil {
			log.Printf("health cache write for %s: %v", id, err)
		}
	}
	return score, dashboard.CategoryFor(score), nil
}

// BulkDelete removes the given connections and drops their cached health.
func (s *Service) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrEmptySelection
	}
	n, err := s.repo.Delete(ctx, ids)
	if err != nil {
		return 0, err
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, ids...); err != nil {
			log.Printf("health cache invalidate: %v", err)
		}
	}
	return n, nil
}

var ErrEmptySelection = errString("no connections selected")

type errString string

func (e errString) Error() string { return string(e) }
