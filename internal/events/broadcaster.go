// ABOUTME: Generic in-memory fan-out broadcaster for host-environment event streams
// ABOUTME: Each subscriber gets an independent buffered channel; publishes never block

package events

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

const (
	// DefaultSubscriberBuffer is the channel buffer for each subscriber.
	DefaultSubscriberBuffer = 64
)

// Broadcaster provides in-memory pub/sub for a single event stream.
// Every subscriber receives its own live copy of each published value;
// subscribers never compete for events and never see history from before
// their subscription. The stream itself carries no errors and never
// completes on its own; only Close ends it.
type Broadcaster[T any] struct {
	mu          sync.RWMutex
	subscribers map[string]chan T
	buffer      int
	closed      bool
	logger      *slog.Logger
}

// NewBroadcaster creates a broadcaster with the given per-subscriber
// channel buffer. Zero or negative buffer falls back to
// DefaultSubscriberBuffer. Pass nil logger for default.
func NewBroadcaster[T any](buffer int, logger *slog.Logger) *Broadcaster[T] {
	if buffer <= 0 {
		buffer = DefaultSubscriberBuffer
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Broadcaster[T]{
		subscribers: make(map[string]chan T),
		buffer:      buffer,
		logger:      logger.With("component", "broadcaster"),
	}
}

// Subscribe registers a subscriber and returns its channel along with a
// subscription ID for later unsubscription. The subscription is
// automatically cleaned up when ctx is cancelled.
func (b *Broadcaster[T]) Subscribe(ctx context.Context) (<-chan T, string) {
	subID := uuid.New().String()
	ch := make(chan T, b.buffer)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch, subID
	}
	b.subscribers[subID] = ch
	b.mu.Unlock()

	b.logger.Debug("subscriber added", "sub_id", subID)

	// Auto-cleanup on context cancellation
	go func() {
		<-ctx.Done()
		b.Unsubscribe(subID)
	}()

	return ch, subID
}

// Publish sends a value to every current subscriber.
// Non-blocking: the value is dropped for subscribers whose channels are
// full, so a stalled consumer cannot back up the host callback that is
// delivering the event.
//
// The read lock is held across the sends. Unsubscribe and Close take the
// write lock before closing a channel, so a channel can never be closed
// while a send to it is in flight. The sends never block, so the lock is
// held only briefly.
func (b *Broadcaster[T]) Publish(v T) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- v:
			// Sent
		default:
			b.logger.Debug("dropped event for slow subscriber")
		}
	}
}

// Unsubscribe removes a subscription and closes its channel. Removing one
// subscriber has no effect on any other subscriber or on publishers.
func (b *Broadcaster[T]) Unsubscribe(subID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch, ok := b.subscribers[subID]
	if !ok {
		return
	}

	delete(b.subscribers, subID)
	close(ch)

	b.logger.Debug("subscriber removed", "sub_id", subID)
}

// SubscriberCount returns the number of active subscriptions.
func (b *Broadcaster[T]) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Close shuts down the broadcaster and closes all subscriber channels.
func (b *Broadcaster[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for subID, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, subID)
	}

	b.logger.Debug("broadcaster closed")
}
