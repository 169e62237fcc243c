package sinks

import (
	"context"

	"github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/metrics"
	"github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/progress"
)

// Prometheus translates run events into service metrics.
type Prometheus struct{}

// NewPrometheus builds the metrics sink.
func NewPrometheus() *Prometheus {
	metrics.Init()
	return &Prometheus{}
}

// Consume updates the run counters for one event.
func (p *Prometheus) Consume(_ context.Context, evt progress.Event) error {
	switch evt.Status {
	case progress.StatusInit:
		metrics.ObserveRun("started")
	case progress.StatusComplete:
		metrics.ObserveRun("complete")
	case progress.StatusProgress:
		switch evt.Kind {
		case progress.KindLead:
			metrics.ObserveLeadEnriched()
		case progress.KindError:
			metrics.ObserveRun("error")
		}
	}
	return nil
}

// Close implements progress.Sink.
func (p *Prometheus) Close(context.Context) error {
	return nil
}
