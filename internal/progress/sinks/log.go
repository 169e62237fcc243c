// Package sinks provides progress.Sink implementations backed by the
// service's observability stack.
package sinks

import (
	"context"

	"go.uber.org/zap"

	"github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/progress"
)

// Log mirrors run events into structured logs.
type Log struct {
	logger *zap.Logger
}

// NewLog builds a logging sink.
func NewLog(logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{logger: logger}
}

// Consume logs one event at a level matching its weight.
func (l *Log) Consume(_ context.Context, evt progress.Event) error {
	fields := []zap.Field{
		zap.String("status", string(evt.Status)),
		zap.Int("current", evt.Current),
		zap.Int("total", evt.Total),
	}
	switch {
	case evt.Status == progress.StatusComplete:
		l.logger.Info("run complete", zap.Int("leads", len(evt.Data)))
	case evt.Kind == progress.KindError:
		l.logger.Warn(evt.Message, fields...)
	default:
		l.logger.Debug(evt.Message, fields...)
	}
	return nil
}

// Close implements progress.Sink.
func (l *Log) Close(context.Context) error {
	return nil
}
