package progress

import "context"

// Sink receives run events from the Hub. Implementations must
// tolerate being called from a single background goroutine and should
// return promptly; slow sinks are cut off by the hub's timeout.
type Sink interface {
	// Consume processes one event.
	Consume(ctx context.Context, evt Event) error
	// Close releases sink resources during hub shutdown.
	Close(ctx context.Context) error
}

// Emitter is the producer-side capability the pipeline depends on.
type Emitter interface {
	Emit(evt Event)
}
