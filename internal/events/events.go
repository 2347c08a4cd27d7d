// Package events carries the observability events the engine emits. They are
// consumed by logging and metrics, never by the engine's own logic.
package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Type names an engine event.
type Type string

const (
	TypePoolCreated       Type = "pool_created"
	TypePoolStarted       Type = "pool_started"
	TypeStaked            Type = "staked"
	TypeUnstaked          Type = "unstaked"
	TypeRewardClaimed     Type = "reward_claimed"
	TypeRewardCompounded  Type = "reward_compounded"
	TypePlatformInitiated Type = "platform_initialized"
)

// Event is one engine occurrence worth reporting.
type Event struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Pool      string    `json:"pool,omitempty"`
	User      string    `json:"user,omitempty"`
	Amount    uint64    `json:"amount,omitempty"`
	Fee       uint64    `json:"fee,omitempty"`
	Slot      uint64    `json:"slot,omitempty"`
	StartSlot uint64    `json:"start_slot,omitempty"`
	EndSlot   uint64    `json:"end_slot,omitempty"`
	At        time.Time `json:"at"`
}

// Sink receives emitted events.
type Sink interface {
	Emit(ctx context.Context, ev *Event)
}

// Emitter fans events out to its sinks, stamping id and time.
type Emitter struct {
	sinks []Sink
}

// NewEmitter creates an emitter over the given sinks.
func NewEmitter(sinks ...Sink) *Emitter {
	return &Emitter{sinks: sinks}
}

// Emit stamps and delivers the event to every sink.
func (e *Emitter) Emit(ctx context.Context, ev *Event) {
	if e == nil || ev == nil {
		return
	}
	ev.ID = uuid.NewString()
	ev.At = time.Now().UTC()
	for _, s := range e.sinks {
		s.Emit(ctx, ev)
	}
}

// LogSink writes events as structured log lines.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a sink logging at info level.
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

// Emit implements Sink.
func (s *LogSink) Emit(ctx context.Context, ev *Event) {
	s.logger.InfoContext(ctx, "engine event",
		slog.String("event_id", ev.ID),
		slog.String("type", string(ev.Type)),
		slog.String("pool", ev.Pool),
		slog.String("user", ev.User),
		slog.Uint64("amount", ev.Amount),
		slog.Uint64("fee", ev.Fee),
		slog.Uint64("slot", ev.Slot),
	)
}
