// Package postgres provides Postgres-backed persistence implementations.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/lead"
)

const leadColumns = `id, owner_email, category, created_at, name, address, phone, website,
	email, rating, status, notes, instagram, facebook, linkedin, twitter`

type dbPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// LeadStoreConfig controls the Postgres connection pool.
type LeadStoreConfig struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

// LeadStore implements lead.Store on Postgres.
type LeadStore struct {
	pool  dbPool
	idGen lead.IDGenerator
	clock lead.Clock
}

// NewLeadStore connects a pool and returns the store.
func NewLeadStore(ctx context.Context, cfg LeadStoreConfig, idGen lead.IDGenerator, clock lead.Clock) (*LeadStore, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("db.dsn is required")
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &LeadStore{pool: pool, idGen: idGen, clock: clock}, nil
}

// NewLeadStoreWithPool constructs a store from an existing pool
// (primarily for testing).
func NewLeadStoreWithPool(pool dbPool, idGen lead.IDGenerator, clock lead.Clock) (*LeadStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	return &LeadStore{pool: pool, idGen: idGen, clock: clock}, nil
}

// Close releases the underlying pool resources.
func (s *LeadStore) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.pool.Close()
}

// FindLeads returns the owner's leads, newest first. lead.CategoryAll
// disables the category filter.
func (s *LeadStore) FindLeads(ctx context.Context, owner, category string) ([]lead.Lead, error) {
	query := `
		SELECT ` + leadColumns + `
		FROM leads
		WHERE owner_email = $1 AND ($2 = 'ALL' OR category = $2)
		ORDER BY created_at DESC;
	`
	rows, err := s.pool.Query(ctx, query, owner, category)
	if err != nil {
		return nil, fmt.Errorf("query leads: %w", err)
	}
	defer rows.Close()

	var leads []lead.Lead
	for rows.Next() {
		var l lead.Lead
		if err := rows.Scan(
			&l.ID, &l.Owner, &l.Category, &l.CreatedAt, &l.Name, &l.Address, &l.Phone, &l.Website,
			&l.Email, &l.Rating, &l.Status, &l.Notes, &l.Instagram, &l.Facebook, &l.LinkedIn, &l.Twitter,
		); err != nil {
			return nil, fmt.Errorf("scan lead row: %w", err)
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lead rows: %w", err)
	}
	return leads, nil
}

// InsertLeads writes the batch under owner/category. Duplicates are
// re-checked against a freshly built index, which also absorbs each
// accepted lead so one batch cannot self-duplicate.
func (s *LeadStore) InsertLeads(ctx context.Context, owner, category string, leads []lead.Lead) (int, int, error) {
	stored, err := s.FindLeads(ctx, owner, lead.CategoryAll)
	if err != nil {
		return 0, 0, fmt.Errorf("load existing leads: %w", err)
	}
	index := lead.BuildIndex(stored)

	query := `
		INSERT INTO leads (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	saved, duplicates := 0, 0
	for _, l := range leads {
		candidate := lead.Candidate{Name: l.Name, Phone: l.Phone, Website: l.Website}
		if _, dup := index.Duplicate(candidate); dup {
			duplicates++
			continue
		}
		index.Absorb(candidate)

		id, err := s.idGen.NewID()
		if err != nil {
			return saved, duplicates, fmt.Errorf("generate lead id: %w", err)
		}
		row := withInsertDefaults(l)
		if _, err := s.pool.Exec(ctx, query,
			id, owner, category, s.clock.Now(), row.Name, row.Address, row.Phone, row.Website,
			row.Email, row.Rating, row.Status, row.Notes, row.Instagram, row.Facebook, row.LinkedIn, row.Twitter,
		); err != nil {
			return saved, duplicates, fmt.Errorf("insert lead: %w", err)
		}
		saved++
	}
	return saved, duplicates, nil
}

// DeleteLead removes one lead or returns lead.ErrNotFound.
func (s *LeadStore) DeleteLead(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM leads WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return lead.ErrNotFound
	}
	return nil
}

// DeleteLeads removes every listed lead; unknown IDs are ignored.
func (s *LeadStore) DeleteLeads(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := s.pool.Exec(ctx, `DELETE FROM leads WHERE id = ANY($1);`, ids); err != nil {
		return fmt.Errorf("delete leads: %w", err)
	}
	return nil
}

// DeleteCategory removes the owner's leads in one category.
func (s *LeadStore) DeleteCategory(ctx context.Context, owner, category string) (int, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM leads WHERE owner_email = $1 AND category = $2;`, owner, category)
	if err != nil {
		return 0, fmt.Errorf("delete category: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// UpdateStatus sets the workflow status or returns lead.ErrNotFound.
func (s *LeadStore) UpdateStatus(ctx context.Context, id, status string) error {
	return s.updateField(ctx, `UPDATE leads SET status = $1 WHERE id = $2;`, status, id)
}

// UpdateNote replaces the free-text note or returns lead.ErrNotFound.
func (s *LeadStore) UpdateNote(ctx context.Context, id, note string) error {
	return s.updateField(ctx, `UPDATE leads SET notes = $1 WHERE id = $2;`, note, id)
}

func (s *LeadStore) updateField(ctx context.Context, query, value, id string) error {
	tag, err := s.pool.Exec(ctx, query, value, id)
	if err != nil {
		return fmt.Errorf("update lead: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return lead.ErrNotFound
	}
	return nil
}

// Stats aggregates the owner's categories and total lead count.
func (s *LeadStore) Stats(ctx context.Context, owner string) (lead.Stats, error) {
	query := `
		SELECT category, COUNT(*)
		FROM leads
		WHERE owner_email = $1
		GROUP BY category;
	`
	rows, err := s.pool.Query(ctx, query, owner)
	if err != nil {
		return lead.Stats{}, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	stats := lead.Stats{Categories: []string{}}
	for rows.Next() {
		var (
			category string
			count    int
		)
		if err := rows.Scan(&category, &count); err != nil {
			return lead.Stats{}, fmt.Errorf("scan stats row: %w", err)
		}
		if category != "" {
			stats.Categories = append(stats.Categories, category)
		}
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return lead.Stats{}, fmt.Errorf("iterate stats rows: %w", err)
	}
	return stats, nil
}

// withInsertDefaults mirrors the values assigned to fresh rows: a New
// status, empty notes, and N/A placeholders for missing identity
// fields.
func withInsertDefaults(l lead.Lead) lead.Lead {
	if l.Name == "" {
		l.Name = "N/A"
	}
	if l.Address == "" {
		l.Address = "N/A"
	}
	if l.Phone == "" {
		l.Phone = "N/A"
	}
	if l.Rating == "" {
		l.Rating = "N/A"
	}
	l.Status = lead.StatusNew
	l.Notes = ""
	return l
}

var _ lead.Store = (*LeadStore)(nil)
