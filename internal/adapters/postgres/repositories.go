package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"seopilot/internal/domain"
	"seopilot/internal/ports"
)

// ConnectionRepository

func (db *DB) List(ctx context.Context) ([]domain.Connection, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, platform, domain, display_name, status, last_sync, issue_count, fix_count
		FROM connections
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conns []domain.Connection
	index := map[string]int{}
	for rows.Next() {
		var c domain.Connection
		var platform, status string
		if err := rows.Scan(&c.ID, &platform, &c.Domain, &c.DisplayName, &status, &c.LastSync, &c.IssueCount, &c.FixCount); err != nil {
			return nil, err
		}
		c.Platform = domain.Platform(platform)
		c.Status = domain.ConnectionStatus(status)
		index[c.ID] = len(conns)
		conns = append(conns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(conns) == 0 {
		return conns, nil
	}
	if err := db.attachIssueSamples(ctx, conns, index); err != nil {
		return nil, err
	}
	return conns, nil
}

// attachIssueSamples loads the most recent issues per connection, capped at
// db.IssueSample each, and hangs them off the matching connection.
func (db *DB) attachIssueSamples(ctx context.Context, conns []domain.Connection, index map[string]int) error {
	rows, err := db.Pool.Query(ctx, `
		SELECT connection_id, id, status, type, title, severity, detected_at
		FROM (
			SELECT i.*, row_number() OVER (PARTITION BY connection_id ORDER BY detected_at DESC) AS rn
			FROM issues i
		) sampled
		WHERE rn <= $1
		ORDER BY connection_id, detected_at DESC
	`, db.IssueSample)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var connID string
		var is domain.Issue
		var severity string
		if err := rows.Scan(&connID, &is.ID, &is.Status, &is.Type, &is.Title, &severity, &is.DetectedAt); err != nil {
			return err
		}
		is.Severity = domain.Severity(severity)
		if i, ok := index[connID]; ok {
			conns[i].Issues = append(conns[i].Issues, is)
		}
	}
	return rows.Err()
}

func (db *DB) Get(ctx context.Context, id string) (domain.Connection, bool, error) {
	var c domain.Connection
	var platform, status string
	err := db.Pool.QueryRow(ctx, `
		SELECT id, platform, domain, display_name, status, last_sync, issue_count, fix_count
		FROM connections WHERE id = $1
	`, id).Scan(&c.ID, &platform, &c.Domain, &c.DisplayName, &status, &c.LastSync, &c.IssueCount, &c.FixCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return c, false, nil
	}
	if err != nil {
		return c, false, err
	}
	c.Platform = domain.Platform(platform)
	c.Status = domain.ConnectionStatus(status)
	conns := []domain.Connection{c}
	if err := db.attachIssueSamples(ctx, conns, map[string]int{c.ID: 0}); err != nil {
		return c, false, err
	}
	return conns[0], true, nil
}

func (db *DB) Delete(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := db.Pool.Exec(ctx, `DELETE FROM connections WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (db *DB) TouchLastSync(ctx context.Context, id string) error {
	_, err := db.Pool.Exec(ctx, `UPDATE connections SET last_sync = now() WHERE id = $1`, id)
	return err
}

// RequestRepository

func (db *DB) CreateRequest(ctx context.Context, req domain.ConnectionRequest) (string, error) {
	var id string
	createdAt := req.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO connection_requests (platform, store_url, store_name, message, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, string(req.Platform), strings.TrimSpace(req.StoreURL), strings.TrimSpace(req.StoreName), req.Message, createdAt).Scan(&id)
	return id, err
}

// ScanRepository

func (db *DB) CreateScan(ctx context.Context, connectionID string) (string, error) {
	var scanID string
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO scans (connection_id, status, progress)
		VALUES ($1, 'queued', 0)
		RETURNING id
	`, connectionID).Scan(&scanID)
	if err != nil {
		return "", err
	}
	// create job row
	_, err = db.Pool.Exec(ctx, `INSERT INTO scan_jobs (scan_id) VALUES ($1)`, scanID)
	return scanID, err
}

func (db *DB) ScanStatus(ctx context.Context, scanID string) (string, float64, error) {
	var status string
	var progress float64
	err := db.Pool.QueryRow(ctx, `SELECT status, progress FROM scans WHERE id = $1`, scanID).Scan(&status, &progress)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", 0, ports.ErrNotFound
	}
	return status, progress, err
}
