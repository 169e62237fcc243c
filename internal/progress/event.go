// Package progress defines the run lifecycle events streamed to the
// caller and fanned out to observability sinks.
package progress

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/lead"
)

// Status tags the event variant on the wire.
type Status string

// Supported event statuses.
const (
	StatusInit     Status = "init"
	StatusProgress Status = "progress"
	StatusComplete Status = "complete"
)

// Kind classifies progress events for internal sinks. It is never
// serialized to the caller.
type Kind string

// Progress event kinds.
const (
	KindPage  Kind = "page"
	KindLead  Kind = "lead"
	KindError Kind = "error"
)

// Event is one run lifecycle record. Init and progress events carry a
// current/total counter plus a display message; the final complete
// event carries the accepted leads instead.
type Event struct {
	Status  Status
	Current int
	Total   int
	Message string
	Data    []lead.Lead
	// Kind lets sinks tell per-lead progress apart from page scans
	// and errors; the stream to the caller does not include it.
	Kind Kind
}

// Validate performs coarse validation on Event payloads.
func (e Event) Validate() error {
	switch e.Status {
	case StatusInit, StatusProgress:
		if e.Message == "" {
			return errors.New("message is required")
		}
	case StatusComplete:
	default:
		return fmt.Errorf("unknown status %q", e.Status)
	}
	if e.Current < 0 || e.Total < 0 {
		return errors.New("counters must be >= 0")
	}
	return nil
}

type counterEvent struct {
	Status  Status `json:"status"`
	Current int    `json:"current"`
	Total   int    `json:"total"`
	Message string `json:"message"`
}

type completeEvent struct {
	Status Status      `json:"status"`
	Data   []lead.Lead `json:"data"`
}

// MarshalJSON writes the wire shape consumed by the frontend:
// counters and message for init/progress, the lead list for complete.
func (e Event) MarshalJSON() ([]byte, error) {
	if e.Status == StatusComplete {
		data := e.Data
		if data == nil {
			data = []lead.Lead{}
		}
		return json.Marshal(completeEvent{Status: e.Status, Data: data})
	}
	return json.Marshal(counterEvent{
		Status:  e.Status,
		Current: e.Current,
		Total:   e.Total,
		Message: e.Message,
	})
}

// NDJSON renders the event as one newline-terminated record.
func (e Event) NDJSON() ([]byte, error) {
	buf, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal progress event: %w", err)
	}
	return append(buf, '\n'), nil
}

// Init builds the startup event.
func Init(total int, message string) Event {
	return Event{Status: StatusInit, Total: total, Message: message}
}

// Progressf builds a progress event with a formatted message.
func Progressf(kind Kind, current, total int, format string, args ...any) Event {
	return Event{
		Status:  StatusProgress,
		Current: current,
		Total:   total,
		Message: fmt.Sprintf(format, args...),
		Kind:    kind,
	}
}

// Complete builds the terminal event carrying the accepted leads.
func Complete(data []lead.Lead) Event {
	return Event{Status: StatusComplete, Data: data}
}
