// ABOUTME: Normalizes the host's push-notification delegate callbacks into one tagged event stream
// ABOUTME: Two inbound call shapes plus two registration outcomes merge without deduplication

package push

import (
	"context"
	"log/slog"

	"github.com/msach22/stitch-sync/internal/events"
	"github.com/msach22/stitch-sync/internal/metrics"
)

// Kind discriminates the variants of Event.
type Kind int

const (
	// KindRemoteNotification is an inbound remote notification. Payload is
	// set; Completion is set only for the delegate shape that carries a
	// completion handle.
	KindRemoteNotification Kind = iota
	// KindDeviceTokenRegistered is a successful device registration; Token
	// is set.
	KindDeviceTokenRegistered
	// KindRegistrationFailed is a failed device registration; Err is set.
	KindRegistrationFailed
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindRemoteNotification:
		return "remote_notification"
	case KindDeviceTokenRegistered:
		return "device_token_registered"
	case KindRegistrationFailed:
		return "registration_failed"
	default:
		return "unknown"
	}
}

// FetchResult is the value a consumer reports back through a
// notification's completion handle once it has finished any background
// work the notification triggered.
type FetchResult int

const (
	FetchNewData FetchResult = iota
	FetchNoData
	FetchFailed
)

// Event is one occurrence on the merged push stream. Which fields are
// populated depends on Kind; see the Kind constants. Events are discrete,
// non-deduplicated occurrences with no equality defined across them.
type Event struct {
	Kind Kind

	// Payload is the opaque notification payload (KindRemoteNotification).
	Payload map[string]any
	// Completion, when non-nil, is the host's completion handle for this
	// notification (modern delegate shape only).
	Completion func(FetchResult)

	// Token is the registered device token (KindDeviceTokenRegistered).
	Token []byte

	// Err is the registration failure (KindRegistrationFailed).
	Err error
}

// Bridge is a purely structural normalization layer between the host's
// push-delegate callbacks and one merged Event stream. It holds no state
// beyond its subscriber table: no deduplication, no ordering guarantee
// across variant kinds beyond host delivery order.
//
// If the host invokes both the legacy and the modern inbound shape for
// what it considers one physical notification, two independent events are
// emitted. That is deliberate: collapsing them could hide legitimately
// distinct deliveries.
type Bridge struct {
	bus     *events.Broadcaster[Event]
	metrics *metrics.Pipeline
	logger  *slog.Logger
}

// Options configures a Bridge. The zero value is usable.
type Options struct {
	// SubscriberBuffer is the per-subscriber channel buffer; zero means
	// events.DefaultSubscriberBuffer.
	SubscriberBuffer int
	Metrics          *metrics.Pipeline
	Logger           *slog.Logger
}

// NewBridge creates a push delegate bridge.
func NewBridge(opts Options) *Bridge {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "push")
	return &Bridge{
		bus:     events.NewBroadcaster[Event](opts.SubscriberBuffer, logger),
		metrics: opts.Metrics,
		logger:  logger,
	}
}

// Subscribe attaches an independent consumer to the merged stream.
func (b *Bridge) Subscribe(ctx context.Context) (<-chan Event, string) {
	ch, id := b.bus.Subscribe(ctx)
	b.observeSubscribers()
	return ch, id
}

// Unsubscribe detaches one consumer.
func (b *Bridge) Unsubscribe(subID string) {
	b.bus.Unsubscribe(subID)
	b.observeSubscribers()
}

// ReceivedRemoteNotification is the entry point for the legacy inbound
// delegate shape, which carries no completion handle.
func (b *Bridge) ReceivedRemoteNotification(payload map[string]any) {
	b.emit(Event{Kind: KindRemoteNotification, Payload: payload})
}

// ReceivedRemoteNotificationWithCompletion is the entry point for the
// modern inbound delegate shape. The completion handle is passed through
// untouched for the consumer to invoke.
func (b *Bridge) ReceivedRemoteNotificationWithCompletion(payload map[string]any, completion func(FetchResult)) {
	b.emit(Event{Kind: KindRemoteNotification, Payload: payload, Completion: completion})
}

// RegisteredWithDeviceToken is the entry point for the single-shot
// registration success callback.
func (b *Bridge) RegisteredWithDeviceToken(token []byte) {
	b.emit(Event{Kind: KindDeviceTokenRegistered, Token: token})
}

// RegistrationFailed is the entry point for the single-shot registration
// failure callback. The error is surfaced as event data, not as a stream
// failure; the stream itself keeps going.
func (b *Bridge) RegistrationFailed(err error) {
	b.emit(Event{Kind: KindRegistrationFailed, Err: err})
}

// Close shuts the bridge down, closing all subscriber channels.
func (b *Bridge) Close() {
	b.bus.Close()
	b.observeSubscribers()
}

func (b *Bridge) emit(e Event) {
	b.logger.Debug("push event", "kind", e.Kind.String())
	b.metrics.StreamEvent("push")
	b.bus.Publish(e)
}

func (b *Bridge) observeSubscribers() {
	b.metrics.StreamSubscribers("push", b.bus.SubscriberCount())
}
