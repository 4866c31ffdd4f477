// Package pubsub provides a generic publish/subscribe event system.
//
// It is the only channel between the background tokenization worker and the
// UI update loop: workers publish immutable payloads (changed line ranges,
// redraw requests, document edits) and the UI drains them as Bubble Tea
// messages. Shared styling state is never mutated off the UI goroutine.
package pubsub

import (
	"context"
	"time"
)

// Event wraps a published payload with the time it was emitted.
// Payloads must be immutable value types; subscribers may read them from
// any goroutine.
type Event[T any] struct {
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(payload T)
}
