// Package stitchsync is the event-composition and conversation-sync engine
// for a real-time messaging client. It normalizes the host environment's
// lifecycle and push-notification callbacks into typed broadcast streams
// and orchestrates conversation create/join/fetch/list operations against
// an injected remote service and optional local cache.
//
// Most hosts interact with this package by:
//  1. Creating an Engine via New() with their RemoteService and Identity
//  2. Feeding host lifecycle and push-delegate callbacks into
//     Engine.Lifecycle and Engine.Push
//  3. Starting conversation operations on Engine.Conversations
//
// The package re-exports the core types so hosts never import internal
// packages directly. Network transport, persistent storage, and UI belong
// to the host; the engine only ever sees them through the injected
// collaborator interfaces.
package stitchsync

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/msach22/stitch-sync/internal/config"
	"github.com/msach22/stitch-sync/internal/conversation"
	"github.com/msach22/stitch-sync/internal/dispatch"
	"github.com/msach22/stitch-sync/internal/lifecycle"
	"github.com/msach22/stitch-sync/internal/metrics"
	"github.com/msach22/stitch-sync/internal/push"
)

// Lifecycle stream types.
type (
	ApplicationState = lifecycle.State
	LifecycleStream  = lifecycle.Stream
)

// Application states, one per host lifecycle signal.
const (
	StateActive     = lifecycle.StateActive
	StateInactive   = lifecycle.StateInactive
	StateBackground = lifecycle.StateBackground
	StateTerminated = lifecycle.StateTerminated
)

// Push bridge types.
type (
	PushEvent   = push.Event
	PushKind    = push.Kind
	FetchResult = push.FetchResult
	PushBridge  = push.Bridge
)

// Push event variants.
const (
	KindRemoteNotification    = push.KindRemoteNotification
	KindDeviceTokenRegistered = push.KindDeviceTokenRegistered
	KindRegistrationFailed    = push.KindRegistrationFailed
)

// Background-fetch completion values.
const (
	FetchNewData = push.FetchNewData
	FetchNoData  = push.FetchNoData
	FetchFailed  = push.FetchFailed
)

// Conversation pipeline types.
type (
	Conversation     = conversation.Conversation
	LiteConversation = conversation.LiteConversation
	Preview          = conversation.Preview
	JoinModel        = conversation.JoinModel
	MemberState      = conversation.MemberState
	RemoteService    = conversation.RemoteService
	Identity         = conversation.Identity
	IdentityFunc     = conversation.IdentityFunc
	Cache            = conversation.Cache
	MemoryCache      = conversation.MemoryCache
	Service          = conversation.Service
	Call             = conversation.Call
)

// Result and Callback are the single-shot delivery types shared by every
// pipeline operation.
type (
	Result[T any]   = conversation.Result[T]
	Callback[T any] = conversation.Callback[T]
)

// Membership states mapped from the remote join status.
const (
	MemberJoined           = conversation.MemberJoined
	MemberInvited          = conversation.MemberInvited
	MemberNotParticipating = conversation.MemberNotParticipating
)

// ErrNotAuthenticated is returned by identity-requiring operations started
// without a resolved identity.
var ErrNotAuthenticated = conversation.ErrNotAuthenticated

// Dispatcher abstractions for delivery affinity.
type (
	Dispatcher     = dispatch.Dispatcher
	DispatcherFunc = dispatch.Func
	SerialQueue    = dispatch.Serial
)

// NewSerialQueue creates a single-worker FIFO dispatcher, the shape
// expected of a main-queue adapter.
func NewSerialQueue(name string, logger *slog.Logger) *SerialQueue {
	return dispatch.NewSerial(name, logger)
}

// NewMemoryCache creates a map-backed Cache for hosts and tests that run
// without a real persistent store.
func NewMemoryCache() *MemoryCache {
	return conversation.NewMemoryCache()
}

// Config is the YAML-backed engine configuration.
type Config = config.Config

// LoadConfig reads and validates a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}

// Options configures an Engine beyond its two required collaborators.
type Options struct {
	// Config tunes the settle delay and stream buffers. Nil uses built-in
	// defaults.
	Config *Config
	// Cache is the local persistence integration point; may be nil.
	Cache Cache
	// Main delivers UI-affine results (join). Hosts with an interactive
	// run loop should inject an adapter to it; nil falls back to plain
	// goroutine delivery.
	Main Dispatcher
	// Background delivers background-affine results (create/fetch/list).
	Background Dispatcher
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// Registerer receives the engine's prometheus collectors. Nil (or
	// Config.Metrics.Enabled false) disables metrics collection.
	Registerer prometheus.Registerer
}

// Engine aggregates the lifecycle stream, the push bridge, and the
// conversation service over one shared configuration.
type Engine struct {
	Lifecycle     *LifecycleStream
	Push          *PushBridge
	Conversations *Service
}

// New creates an Engine. remote and identity are required; everything else
// defaults.
func New(remote RemoteService, identity Identity, optFns ...func(*Options)) *Engine {
	var opts Options
	for _, fn := range optFns {
		fn(&opts)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	var pm *metrics.Pipeline
	if opts.Registerer != nil && cfg.Metrics.Enabled {
		pm = metrics.New(opts.Registerer)
	}

	return &Engine{
		Lifecycle: lifecycle.NewStream(lifecycle.Options{
			SubscriberBuffer: cfg.Events.SubscriberBuffer,
			Metrics:          pm,
			Logger:           logger,
		}),
		Push: push.NewBridge(push.Options{
			SubscriberBuffer: cfg.Events.SubscriberBuffer,
			Metrics:          pm,
			Logger:           logger,
		}),
		Conversations: conversation.New(remote, identity, conversation.Options{
			Cache:       opts.Cache,
			Main:        opts.Main,
			Background:  opts.Background,
			SettleDelay: cfg.Pipeline.SettleDelay,
			Metrics:     pm,
			Logger:      logger,
		}),
	}
}

// Close shuts down the engine's event streams, closing every subscriber
// channel. In-flight conversation operations are unaffected; cancel those
// through their Call handles.
func (e *Engine) Close() {
	e.Lifecycle.Close()
	e.Push.Close()
}
