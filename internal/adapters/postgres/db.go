package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DB struct {
	Pool *pgxpool.Pool
	// IssueSample caps how many recent issues are loaded per connection. The
	// aggregate counts on the row stay authoritative regardless.
	IssueSample int
}

func Connect(ctx context.Context, url string, issueSample int) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = 10
	cfg.HealthCheckPeriod = 30 * time.Second
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if issueSample < 1 {
		issueSample = 20
	}
	return &DB{Pool: pool, IssueSample: issueSample}, nil
}

func (db *DB) Close() { db.Pool.Close() }
