// Package pipeline drives one search-and-enrich run: paginate the
// provider, reject known leads, enrich survivors concurrently, and
// stream progress until the target count is met or results run out.
package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/lead"
	"github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/metrics"
	"github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/progress"
	"github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/search"
)

const (
	defaultPageSize = 20
	defaultMaxPages = 30

	maxNameLen     = 35
	truncNameLen   = 32
	maxErrorLen    = 50
	eventChanDepth = 16
)

// Enricher fans a candidate batch out to website extractions and
// yields leads in completion order.
type Enricher interface {
	EnrichAll(ctx context.Context, candidates []lead.Candidate) <-chan lead.Lead
}

// LeadSource supplies the owner's stored leads for index building.
type LeadSource interface {
	FindLeads(ctx context.Context, owner, category string) ([]lead.Lead, error)
}

// Config bounds a run.
type Config struct {
	// PageSize is the provider page size (default 20).
	PageSize int
	// MaxPages caps provider calls per run; reaching it ends the run
	// the same way provider exhaustion does (default 30).
	MaxPages int
	// EmitPacing inserts a small delay after stream emits so browser
	// clients render updates smoothly. Zero disables pacing.
	EmitPacing time.Duration
}

func (c Config) withDefaults() Config {
	if c.PageSize <= 0 {
		c.PageSize = defaultPageSize
	}
	if c.MaxPages <= 0 {
		c.MaxPages = defaultMaxPages
	}
	return c
}

// Runner executes runs against fixed collaborators.
type Runner struct {
	provider search.Provider
	source   LeadSource
	enricher Enricher
	hub      progress.Emitter
	cfg      Config
	logger   *zap.Logger
}

// NewRunner wires a Runner. hub may be nil when no telemetry fan-out
// is wanted.
func NewRunner(
	provider search.Provider,
	source LeadSource,
	enricher Enricher,
	hub progress.Emitter,
	cfg Config,
	logger *zap.Logger,
) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		provider: provider,
		source:   source,
		enricher: enricher,
		hub:      hub,
		cfg:      cfg.withDefaults(),
		logger:   logger,
	}
}

// Run starts one run and returns its ordered event stream. The
// channel closes after the final complete event. Canceling ctx tears
// the run down; a disconnected consumer cancels via the request
// context, the run never polls liveness itself.
func (r *Runner) Run(ctx context.Context, query, owner string, target int) <-chan progress.Event {
	out := make(chan progress.Event, eventChanDepth)
	go func() {
		defer close(out)
		r.run(ctx, query, owner, target, out)
	}()
	return out
}

// run owns the duplicate index and the accumulator; both are touched
// only from this goroutine, never from enrichment workers.
func (r *Runner) run(ctx context.Context, query, owner string, target int, out chan<- progress.Event) {
	logger := r.logger.With(zap.String("query", query), zap.String("owner", owner), zap.Int("target", target))

	if !r.emit(ctx, out, progress.Init(target, "Connecting to the maps provider...")) {
		return
	}
	r.pace(ctx)

	stored, err := r.source.FindLeads(ctx, owner, lead.CategoryAll)
	if err != nil {
		logger.Error("loading stored leads failed", zap.Error(err))
		r.emit(ctx, out, progress.Progressf(progress.KindError, 0, target, "Error: %s", truncateError(err.Error())))
		r.emit(ctx, out, progress.Complete(nil))
		return
	}
	index := lead.BuildIndex(stored)
	websites, phones, names := index.Sizes()
	logger.Info("duplicate index built",
		zap.Int("websites", websites),
		zap.Int("phones", phones),
		zap.Int("names", names),
	)

	if target <= 0 {
		r.emit(ctx, out, progress.Complete(nil))
		return
	}

	var (
		accepted     []lead.Lead
		offset       int
		totalSkipped int
	)

	for pages := 0; len(accepted) < target && pages < r.cfg.MaxPages; pages++ {
		pageNum := offset/r.cfg.PageSize + 1
		if !r.emit(ctx, out, progress.Progressf(progress.KindPage, len(accepted), target,
			"Searching maps listings (page %d)...", pageNum)) {
			return
		}
		r.pace(ctx)

		results, err := r.provider.Search(ctx, search.Query{Query: query, Offset: offset, PageSize: r.cfg.PageSize})
		if err != nil {
			logger.Warn("provider call failed", zap.Int("page", pageNum), zap.Error(err))
			r.emit(ctx, out, progress.Progressf(progress.KindError, len(accepted), target,
				"Error: %s", truncateError(err.Error())))
			break
		}
		if len(results) == 0 {
			logger.Info("provider exhausted", zap.Int("page", pageNum))
			r.emit(ctx, out, progress.Progressf(progress.KindPage, len(accepted), target, "No more results found"))
			break
		}

		survivors := r.partition(index, results, &totalSkipped, logger)
		if len(survivors) == 0 {
			if !r.emit(ctx, out, progress.Progressf(progress.KindPage, len(accepted), target,
				"Skipping duplicates (page %d)...", pageNum)) {
				return
			}
			offset += r.cfg.PageSize
			continue
		}
		logger.Info("page partitioned",
			zap.Int("page", pageNum),
			zap.Int("survivors", len(survivors)),
			zap.Int("skipped_total", totalSkipped),
		)

		for enriched := range r.enricher.EnrichAll(ctx, survivors) {
			accepted = append(accepted, enriched)
			display := min(len(accepted), target)
			if !r.emit(ctx, out, progress.Progressf(progress.KindLead, display, target,
				"%s", truncateName(enriched.Name))) {
				return
			}
			r.pace(ctx)
		}
		offset += r.cfg.PageSize

		if len(accepted) >= target {
			accepted = accepted[:target]
			if !r.emit(ctx, out, progress.Progressf(progress.KindPage, target, target,
				"Extraction complete! (%d duplicates skipped)", totalSkipped)) {
				return
			}
			break
		}
	}

	logger.Info("run finished", zap.Int("leads", len(accepted)), zap.Int("duplicates_skipped", totalSkipped))
	r.emit(ctx, out, progress.Complete(accepted))
}

// partition splits a page into survivors and rejected duplicates.
// Survivors are absorbed into the index immediately so repeats later
// in the same run, including on the same page, are rejected too.
func (r *Runner) partition(
	index *lead.Index,
	results []search.Result,
	totalSkipped *int,
	logger *zap.Logger,
) []lead.Candidate {
	var survivors []lead.Candidate
	for _, result := range results {
		candidate := result.Candidate()
		if field, dup := index.Duplicate(candidate); dup {
			*totalSkipped++
			metrics.ObserveDuplicateSkipped(field)
			logger.Debug("skipping duplicate", zap.String("name", candidate.Name), zap.String("matched", field))
			continue
		}
		index.Absorb(candidate)
		survivors = append(survivors, candidate)
	}
	return survivors
}

func (r *Runner) emit(ctx context.Context, out chan<- progress.Event, evt progress.Event) bool {
	if r.hub != nil {
		r.hub.Emit(evt)
	}
	select {
	case out <- evt:
		return true
	case <-ctx.Done():
		return false
	}
}

func (r *Runner) pace(ctx context.Context) {
	if r.cfg.EmitPacing <= 0 {
		return
	}
	select {
	case <-time.After(r.cfg.EmitPacing):
	case <-ctx.Done():
	}
}

// truncateName shortens long display names with an ellipsis marker.
func truncateName(s string) string {
	runes := []rune(s)
	if len(runes) <= maxNameLen {
		return s
	}
	return string(runes[:truncNameLen]) + "..."
}

// truncateError keeps error text short enough for a progress line.
func truncateError(s string) string {
	runes := []rune(s)
	if len(runes) <= maxErrorLen {
		return s
	}
	return string(runes[:maxErrorLen])
}
