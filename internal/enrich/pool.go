package enrich

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/lead"
)

const defaultConcurrency = 3

// ContactExtractor is the capability the pool fans out over.
type ContactExtractor interface {
	Extract(ctx context.Context, website string) Contact
}

// Pool enriches candidate batches with a bounded number of website
// extractions in flight. Results arrive in completion order.
type Pool struct {
	extractor   ContactExtractor
	concurrency int
	logger      *zap.Logger
}

// NewPool wraps the extractor with a concurrency gate.
func NewPool(extractor ContactExtractor, concurrency int, logger *zap.Logger) *Pool {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pool{extractor: extractor, concurrency: concurrency, logger: logger}
}

// EnrichAll converts every candidate into a Lead, visiting its
// website when one is present. The returned channel yields one lead
// per candidate in completion order and closes when the batch is
// done. Candidates without a website pass through with contact
// fields absent.
func (p *Pool) EnrichAll(ctx context.Context, candidates []lead.Candidate) <-chan lead.Lead {
	out := make(chan lead.Lead, len(candidates))

	g := new(errgroup.Group)
	g.SetLimit(p.concurrency)
	for _, candidate := range candidates {
		g.Go(func() error {
			l := candidate.Lead()
			if candidate.Website != "" {
				p.extractor.Extract(ctx, candidate.Website).ApplyTo(&l)
			}
			select {
			case out <- l:
			case <-ctx.Done():
			}
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(out)
	}()
	return out
}
