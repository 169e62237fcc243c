// Package publisher defines the contract for announcing finished
// enrichment runs to downstream consumers.
package publisher

import (
	"context"
	"time"
)

// TopicRunCompleted carries notifications for finished runs.
const TopicRunCompleted = "lead-runs-completed"

// RunCompleted is the payload published after a run finishes.
type RunCompleted struct {
	Owner       string    `json:"owner"`
	Query       string    `json:"query"`
	Leads       int       `json:"leads"`
	CompletedAt time.Time `json:"completed_at"`
}

// Publisher delivers a payload to a named topic and returns the
// broker-assigned message ID.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) (string, error)
	Close() error
}
