package enrich

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/lead"
)

type countingExtractor struct {
	inFlight atomic.Int32
	peak     atomic.Int32
	delay    time.Duration
}

func (c *countingExtractor) Extract(_ context.Context, website string) Contact {
	current := c.inFlight.Add(1)
	for {
		peak := c.peak.Load()
		if current <= peak || c.peak.CompareAndSwap(peak, current) {
			break
		}
	}
	time.Sleep(c.delay)
	c.inFlight.Add(-1)
	return Contact{Email: "info@" + website}
}

func TestPoolRespectsConcurrencyCap(t *testing.T) {
	t.Parallel()

	extractor := &countingExtractor{delay: 20 * time.Millisecond}
	pool := NewPool(extractor, 3, nil)

	candidates := make([]lead.Candidate, 12)
	for i := range candidates {
		candidates[i] = lead.Candidate{
			Name:    fmt.Sprintf("Biz %d", i),
			Website: fmt.Sprintf("biz%d.example", i),
		}
	}

	var leads []lead.Lead
	for l := range pool.EnrichAll(context.Background(), candidates) {
		leads = append(leads, l)
	}
	require.Len(t, leads, 12)
	require.LessOrEqual(t, extractor.peak.Load(), int32(3))
}

func TestPoolPreservesIdentity(t *testing.T) {
	t.Parallel()

	pool := NewPool(&countingExtractor{}, 3, nil)
	candidates := []lead.Candidate{
		{Name: "With Site", Website: "withsite.example", Phone: "555-0100"},
		{Name: "No Site", Phone: "555-0101"},
	}

	byName := make(map[string]lead.Lead)
	for l := range pool.EnrichAll(context.Background(), candidates) {
		byName[l.Name] = l
	}
	require.Len(t, byName, 2)

	// Contact data lands on the lead whose website was visited, and
	// only on that lead.
	require.Equal(t, "info@withsite.example", byName["With Site"].Email)
	require.Equal(t, "555-0100", byName["With Site"].Phone)
	require.Empty(t, byName["No Site"].Email)
	require.Equal(t, "555-0101", byName["No Site"].Phone)
}

func TestPoolClosesOutputWhenDone(t *testing.T) {
	t.Parallel()

	pool := NewPool(&countingExtractor{}, 2, nil)
	out := pool.EnrichAll(context.Background(), nil)

	_, open := <-out
	require.False(t, open)
}
