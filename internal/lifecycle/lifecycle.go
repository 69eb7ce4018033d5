// ABOUTME: Merges the four host lifecycle signals into one broadcast stream of States
// ABOUTME: The signal-to-state mapping is total and fixed; nothing is deduplicated

package lifecycle

import (
	"context"
	"log/slog"

	"github.com/msach22/stitch-sync/internal/events"
	"github.com/msach22/stitch-sync/internal/metrics"
)

// State is the application's coarse lifecycle state. Values are emitted as
// discrete events; there is no notion of "current state" in the stream
// itself.
type State int

const (
	StateActive State = iota
	StateInactive
	StateBackground
	StateTerminated
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateInactive:
		return "inactive"
	case StateBackground:
		return "background"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Stream merges four independent host lifecycle signals into one multicast
// stream of States. Each host signal maps to exactly one state:
//
//	became-active        -> StateActive
//	will-resign-active   -> StateInactive
//	did-enter-background -> StateBackground
//	will-terminate       -> StateTerminated
//
// N signal deliveries produce N emitted states, in delivery order, per
// subscriber. The stream never errors and never completes; process exit
// ends all subscriptions implicitly.
type Stream struct {
	bus     *events.Broadcaster[State]
	metrics *metrics.Pipeline
	logger  *slog.Logger
}

// Options configures a Stream. The zero value is usable.
type Options struct {
	// SubscriberBuffer is the per-subscriber channel buffer; zero means
	// events.DefaultSubscriberBuffer.
	SubscriberBuffer int
	Metrics          *metrics.Pipeline
	Logger           *slog.Logger
}

// NewStream creates a lifecycle stream.
func NewStream(opts Options) *Stream {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "lifecycle")
	return &Stream{
		bus:     events.NewBroadcaster[State](opts.SubscriberBuffer, logger),
		metrics: opts.Metrics,
		logger:  logger,
	}
}

// Subscribe attaches an independent consumer to the stream. The returned
// channel receives every state emitted after this call. The subscription
// ends when ctx is cancelled or Unsubscribe is called with the returned ID;
// detaching has no effect on the host or on other subscribers.
func (s *Stream) Subscribe(ctx context.Context) (<-chan State, string) {
	ch, id := s.bus.Subscribe(ctx)
	s.observeSubscribers()
	return ch, id
}

// Unsubscribe detaches one consumer.
func (s *Stream) Unsubscribe(subID string) {
	s.bus.Unsubscribe(subID)
	s.observeSubscribers()
}

// DidBecomeActive is the entry point for the host's became-active signal.
func (s *Stream) DidBecomeActive() { s.emit(StateActive) }

// WillResignActive is the entry point for the host's will-resign-active
// signal.
func (s *Stream) WillResignActive() { s.emit(StateInactive) }

// DidEnterBackground is the entry point for the host's
// did-enter-background signal.
func (s *Stream) DidEnterBackground() { s.emit(StateBackground) }

// WillTerminate is the entry point for the host's will-terminate signal.
func (s *Stream) WillTerminate() { s.emit(StateTerminated) }

// Close shuts the stream down, closing all subscriber channels.
func (s *Stream) Close() {
	s.bus.Close()
	s.observeSubscribers()
}

func (s *Stream) emit(state State) {
	s.logger.Debug("lifecycle state", "state", state.String())
	s.metrics.StreamEvent("lifecycle")
	s.bus.Publish(state)
}

func (s *Stream) observeSubscribers() {
	s.metrics.StreamSubscribers("lifecycle", s.bus.SubscriberCount())
}
