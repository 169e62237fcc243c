// Package memory provides in-memory persistence for tests and local
// development.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/lead"
)

// LeadStore implements lead.Store with mutex-guarded maps.
type LeadStore struct {
	mu    sync.RWMutex
	leads map[string]lead.Lead
	idGen lead.IDGenerator
	clock lead.Clock
}

// NewLeadStore returns an empty store.
func NewLeadStore(idGen lead.IDGenerator, clock lead.Clock) *LeadStore {
	return &LeadStore{
		leads: make(map[string]lead.Lead),
		idGen: idGen,
		clock: clock,
	}
}

// FindLeads returns the owner's leads, newest first.
func (s *LeadStore) FindLeads(_ context.Context, owner, category string) ([]lead.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []lead.Lead
	for _, l := range s.leads {
		if l.Owner != owner {
			continue
		}
		if category != lead.CategoryAll && l.Category != category {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// InsertLeads writes the batch, re-checking duplicates against the
// owner's stored leads and the batch itself.
func (s *LeadStore) InsertLeads(ctx context.Context, owner, category string, leads []lead.Lead) (int, int, error) {
	stored, err := s.FindLeads(ctx, owner, lead.CategoryAll)
	if err != nil {
		return 0, 0, err
	}
	index := lead.BuildIndex(stored)

	s.mu.Lock()
	defer s.mu.Unlock()

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
			return saved, duplicates, err
		}
		l.ID = id
		l.Owner = owner
		l.Category = category
		l.CreatedAt = s.clock.Now()
		l.Status = lead.StatusNew
		l.Notes = ""
		s.leads[id] = l
		saved++
	}
	return saved, duplicates, nil
}

// DeleteLead removes one lead or returns lead.ErrNotFound.
func (s *LeadStore) DeleteLead(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.leads[id]; !ok {
		return lead.ErrNotFound
	}
	delete(s.leads, id)
	return nil
}

// DeleteLeads removes every listed lead; unknown IDs are ignored.
func (s *LeadStore) DeleteLeads(_ context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.leads, id)
	}
	return nil
}

// DeleteCategory removes the owner's leads in one category.
func (s *LeadStore) DeleteCategory(_ context.Context, owner, category string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for id, l := range s.leads {
		if l.Owner == owner && l.Category == category {
			delete(s.leads, id)
			count++
		}
	}
	return count, nil
}

// UpdateStatus sets the workflow status or returns lead.ErrNotFound.
func (s *LeadStore) UpdateStatus(_ context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.leads[id]
	if !ok {
		return lead.ErrNotFound
	}
	l.Status = status
	s.leads[id] = l
	return nil
}

// UpdateNote replaces the free-text note or returns lead.ErrNotFound.
func (s *LeadStore) UpdateNote(_ context.Context, id, note string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.leads[id]
	if !ok {
		return lead.ErrNotFound
	}
	l.Notes = note
	s.leads[id] = l
	return nil
}

// Stats aggregates the owner's categories and total lead count.
func (s *LeadStore) Stats(_ context.Context, owner string) (lead.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	stats := lead.Stats{Categories: []string{}}
	for _, l := range s.leads {
		if l.Owner != owner {
			continue
		}
		stats.Total++
		if l.Category == "" {
			continue
		}
		if _, ok := seen[l.Category]; !ok {
			seen[l.Category] = struct{}{}
			stats.Categories = append(stats.Categories, l.Category)
		}
	}
	sort.Strings(stats.Categories)
	return stats, nil
}

var _ lead.Store = (*LeadStore)(nil)
