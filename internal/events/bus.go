// Package events provides the in-process domain event bus that decouples
// engagement recording from its side effects (notification creation).
package events

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"inkwell/internal/middleware"
)

// Kind identifies the domain event type.
type Kind string

// Domain event kinds emitted by the engagement and social layers.
const (
	Liked     Kind = "liked"
	Commented Kind = "commented"
	Replied   Kind = "replied"
	Followed  Kind = "followed"
)

// Event describes an engagement action that already took effect. RecipientID
// is the user the action is addressed to (the post or comment author);
// ActorID is the user who performed it.
type Event struct {
	Kind        Kind
	ActorID     uint
	RecipientID uint
	PostID      uint // zero for follow events
	CommentID   uint // set for reply events
	OccurredAt  time.Time
}

// Handler consumes a published event. Handlers run synchronously on the
// publishing goroutine; a handler must not block on long I/O.
type Handler func(ctx context.Context, e Event)

// Bus is a minimal synchronous publish/subscribe bus.
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for all subsequent events.
func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Publish delivers the event to every subscriber. A panicking subscriber is
// recovered and logged so one side effect cannot take down the request.
func (b *Bus) Publish(ctx context.Context, e Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	for _, h := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					middleware.Logger.ErrorContext(ctx, "panic in event handler",
						slog.Any("panic", r),
						slog.String("kind", string(e.Kind)),
						slog.String("stack", string(debug.Stack())),
					)
				}
			}()
			h(ctx, e)
		}()
	}
}
