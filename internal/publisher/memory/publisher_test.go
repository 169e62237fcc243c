package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/publisher"
)

func TestPublishRecordsMessages(t *testing.T) {
	t.Parallel()

	p := New()
	ctx := context.Background()

	id, err := p.Publish(ctx, publisher.TopicRunCompleted, publisher.RunCompleted{
		Owner:       "owner@x.com",
		Query:       "plumbers in Leeds",
		Leads:       7,
		CompletedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Equal(t, "memory-1", id)

	id, err = p.Publish(ctx, publisher.TopicRunCompleted, publisher.RunCompleted{Owner: "other@x.com"})
	require.NoError(t, err)
	require.Equal(t, "memory-2", id)

	messages := p.Messages()
	require.Len(t, messages, 2)
	require.Equal(t, publisher.TopicRunCompleted, messages[0].Topic)
	require.JSONEq(t, `{
		"owner": "owner@x.com",
		"query": "plumbers in Leeds",
		"leads": 7,
		"completed_at": "2025-06-01T12:00:00Z"
	}`, string(messages[0].Payload))
}

func TestPublishRejectsUnmarshalablePayload(t *testing.T) {
	t.Parallel()

	p := New()
	_, err := p.Publish(context.Background(), "topic", make(chan int))
	require.Error(t, err)
	require.Empty(t, p.Messages())
}
