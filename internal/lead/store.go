package lead

import (
	"context"
	"time"
)

// IDGenerator mints identifiers for new leads.
type IDGenerator interface {
	NewID() (string, error)
}

// Clock abstracts wall time so stores can be tested deterministically.
type Clock interface {
	Now() time.Time
}

// Store persists leads per owner. Implementations re-check duplicates
// on insert so a batch saved twice cannot double-write.
type Store interface {
	// FindLeads returns the owner's leads, optionally filtered by
	// category. CategoryAll matches everything.
	FindLeads(ctx context.Context, owner, category string) ([]Lead, error)
	// InsertLeads writes the batch under owner/category, skipping
	// entries whose identity matches a stored lead or an earlier
	// entry of the same batch. Returns saved and skipped counts.
	InsertLeads(ctx context.Context, owner, category string, leads []Lead) (saved, duplicates int, err error)
	// DeleteLead removes one lead or returns ErrNotFound.
	DeleteLead(ctx context.Context, id string) error
	// DeleteLeads removes every listed lead; unknown IDs are ignored.
	DeleteLeads(ctx context.Context, ids []string) error
	// DeleteCategory removes the owner's leads in a category and
	// returns how many were deleted.
	DeleteCategory(ctx context.Context, owner, category string) (int, error)
	// UpdateStatus sets the workflow status or returns ErrNotFound.
	UpdateStatus(ctx context.Context, id, status string) error
	// UpdateNote replaces the free-text note or returns ErrNotFound.
	UpdateNote(ctx context.Context, id, note string) error
	// Stats aggregates the owner's categories and total lead count.
	Stats(ctx context.Context, owner string) (Stats, error)
}
