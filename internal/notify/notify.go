// Package notify carries success and failure feedback for lifecycle
// operations to whoever presents it to the user.
package notify

import (
	"context"
	"time"

	"github.com/dmitrijs2005/seabook/internal/logging"
)

// Event describes the outcome of one inbound operation.
type Event struct {
	Op       string
	RecordID string
	Err      error
	At       time.Time
}

// OK reports whether the operation succeeded.
func (e Event) OK() bool { return e.Err == nil }

// Notifier receives operation outcomes. Implementations must not block.
type Notifier interface {
	Notify(ctx context.Context, e Event)
}

// Func adapts a plain function to Notifier.
type Func func(ctx context.Context, e Event)

func (f Func) Notify(ctx context.Context, e Event) { f(ctx, e) }

// Nop discards events.
type Nop struct{}

func (Nop) Notify(context.Context, Event) {}

// Log writes events to a logger: successes at Debug, failures at Warn.
type Log struct {
	Logger logging.Logger
}

func (l Log) Notify(ctx context.Context, e Event) {
	if e.OK() {
		l.Logger.Debug(ctx, "operation succeeded", "op", e.Op, "id", e.RecordID)
		return
	}
	l.Logger.Warn(ctx, "operation failed", "op", e.Op, "id", e.RecordID, "error", e.Err)
}

// Multi fans an event out to several notifiers in order.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, e Event) {
	for _, n := range m {
		n.Notify(ctx, e)
	}
}
