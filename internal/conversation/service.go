// ABOUTME: The conversation sync pipeline: create/join/fetch/list chained against remote and cache
// ABOUTME: Stages run sequentially per invocation; first error aborts; cache misses on write are absorbed

package conversation

import (
	"context"
	"log/slog"
	"time"

	"github.com/msach22/stitch-sync/internal/dispatch"
	"github.com/msach22/stitch-sync/internal/metrics"
)

// DefaultSettleDelay is the wait between a successful join and the
// follow-up fetch in NewConversation. It papers over the backend's
// read-after-write indexing lag; remove it once the backend guarantees
// immediate consistency.
const DefaultSettleDelay = time.Second

// Operation names used in logs and metrics.
const (
	opNewConversation = "new_conversation"
	opListForUser     = "list_for_user"
	opListCurrent     = "list_current"
	opFetch           = "fetch"
	opJoin            = "join"
)

// Service orchestrates multi-step conversation operations against the
// remote service and the optional local cache. It holds no mutable state
// of its own: concurrent invocations are independent, and correctness
// under concurrency is delegated to the remote service's own guarantees.
type Service struct {
	remote     RemoteService
	identity   Identity
	cache      Cache
	main       dispatch.Dispatcher
	background dispatch.Dispatcher
	settle     time.Duration
	metrics    *metrics.Pipeline
	logger     *slog.Logger
}

// Options configures a Service beyond its two required collaborators.
type Options struct {
	// Cache is the local persistence integration point. May be nil, in
	// which case every cache-dependent operation takes the absorbed path.
	Cache Cache
	// Main delivers UI-affine results (join). Nil defaults to
	// dispatch.Goroutine; hosts with an interactive run loop should inject
	// an adapter to it.
	Main dispatch.Dispatcher
	// Background delivers background-affine results (create/fetch/list).
	// Nil defaults to dispatch.Goroutine.
	Background dispatch.Dispatcher
	// SettleDelay overrides DefaultSettleDelay. Zero keeps the default.
	SettleDelay time.Duration
	Metrics     *metrics.Pipeline
	Logger      *slog.Logger
}

// New creates a conversation service. remote and identity are required.
func New(remote RemoteService, identity Identity, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	main := opts.Main
	if main == nil {
		main = dispatch.Goroutine{}
	}
	background := opts.Background
	if background == nil {
		background = dispatch.Goroutine{}
	}
	settle := opts.SettleDelay
	if settle <= 0 {
		settle = DefaultSettleDelay
	}
	return &Service{
		remote:     remote,
		identity:   identity,
		cache:      opts.Cache,
		main:       main,
		background: background,
		settle:     settle,
		metrics:    opts.Metrics,
		logger:     logger.With("component", "conversation"),
	}
}

// NewConversation creates a conversation named displayName. With shouldJoin
// false the pipeline ends in a bare completion and no join or fetch is
// attempted; callers that need the record fetch it separately. With
// shouldJoin true the caller's identity joins the new conversation, the
// settle delay elapses, and the fetched-and-cached record is delivered.
//
// Requires a resolved identity: without one the operation fails with
// ErrNotAuthenticated before any collaborator call. Delivery is
// background-affine.
func (s *Service) NewConversation(ctx context.Context, displayName string, shouldJoin bool, cb Callback[*Conversation]) *Call {
	call := newCall(ctx)

	userID, authed := s.identity.UserID()
	if !authed {
		s.logger.Debug("new conversation refused: no identity", "call_id", call.ID)
		finish(s, call, s.background, opNewConversation, cb,
			Result[*Conversation]{Err: ErrNotAuthenticated}, metrics.OutcomeError)
		return call
	}

	go func() {
		sid, err := s.remote.Create(call.ctx, displayName)
		if err != nil {
			finish(s, call, s.background, opNewConversation, cb,
				Result[*Conversation]{Err: err}, metrics.OutcomeError)
			return
		}
		s.logger.Debug("conversation created", "call_id", call.ID, "sid", sid)

		if !shouldJoin {
			// Completion only; callers that want the record fetch it separately.
			finish(s, call, s.background, opNewConversation, cb,
				Result[*Conversation]{}, metrics.OutcomeEmpty)
			return
		}

		if _, err := s.remote.Join(call.ctx, JoinModel{UserID: userID}, sid); err != nil {
			finish(s, call, s.background, opNewConversation, cb,
				Result[*Conversation]{Err: err}, metrics.OutcomeError)
			return
		}
		s.logger.Debug("conversation joined", "call_id", call.ID, "sid", sid)

		if !s.settleWait(call) {
			return
		}
		s.runFetch(call, opNewConversation, sid, cb)
	}()
	return call
}

// ListConversations returns the preview summaries visible to userID. Pure
// read: no cache write. Delivery is background-affine.
func (s *Service) ListConversations(ctx context.Context, userID string, cb Callback[[]Preview]) *Call {
	call := newCall(ctx)
	go func() {
		previews, err := s.remote.ListForUser(call.ctx, userID)
		if err != nil {
			finish(s, call, s.background, opListForUser, cb,
				Result[[]Preview]{Err: err}, metrics.OutcomeError)
			return
		}
		finish(s, call, s.background, opListForUser, cb,
			Result[[]Preview]{Value: previews, Ok: true}, metrics.OutcomeOK)
	}()
	return call
}

// ListCurrent returns the first page of the current session's
// conversations as (name, uuid) pairs, starting at offset 0. There is no
// automatic pagination loop; callers page explicitly through the remote
// service if they need more. Delivery is background-affine.
func (s *Service) ListCurrent(ctx context.Context, cb Callback[[]LiteConversation]) *Call {
	call := newCall(ctx)
	go func() {
		page, err := s.remote.ListFromOffset(call.ctx, 0)
		if err != nil {
			finish(s, call, s.background, opListCurrent, cb,
				Result[[]LiteConversation]{Err: err}, metrics.OutcomeError)
			return
		}
		finish(s, call, s.background, opListCurrent, cb,
			Result[[]LiteConversation]{Value: page, Ok: true}, metrics.OutcomeOK)
	}()
	return call
}

// FetchConversation fetches the detailed record for sid and hands it to
// the cache. The cached value, not the raw remote model, is the result.
// A cache that yields nothing (or is absent) turns the operation into a
// bare completion: nothing to show is not something gone wrong. Remote
// failures propagate unchanged. Delivery is background-affine.
func (s *Service) FetchConversation(ctx context.Context, sid string, cb Callback[*Conversation]) *Call {
	call := newCall(ctx)
	go func() {
		s.runFetch(call, opFetch, sid, cb)
	}()
	return call
}

// JoinConversation joins the identity in model to the conversation sid and
// delivers the resulting MemberState. Failures propagate unchanged.
//
// Unlike the fetch and list operations, delivery is UI-affine: membership
// changes feed interactive state directly.
func (s *Service) JoinConversation(ctx context.Context, model JoinModel, sid string, cb Callback[MemberState]) *Call {
	call := newCall(ctx)
	go func() {
		status, err := s.remote.Join(call.ctx, model, sid)
		if err != nil {
			finish(s, call, s.main, opJoin, cb,
				Result[MemberState]{Err: err}, metrics.OutcomeError)
			return
		}
		finish(s, call, s.main, opJoin, cb,
			Result[MemberState]{Value: memberStateFromStatus(status), Ok: true}, metrics.OutcomeOK)
	}()
	return call
}

// runFetch is the shared fetch-then-cache tail used by FetchConversation
// and the joined branch of NewConversation.
func (s *Service) runFetch(call *Call, op string, sid string, cb Callback[*Conversation]) {
	model, err := s.remote.Fetch(call.ctx, sid)
	if err != nil {
		finish(s, call, s.background, op, cb,
			Result[*Conversation]{Err: err}, metrics.OutcomeError)
		return
	}
	saved, ok := s.save(call.ctx, model)
	if !ok {
		s.logger.Debug("cache yielded nothing, absorbing", "call_id", call.ID, "sid", sid)
		finish(s, call, s.background, op, cb,
			Result[*Conversation]{}, metrics.OutcomeAbsorbed)
		return
	}
	finish(s, call, s.background, op, cb,
		Result[*Conversation]{Value: saved, Ok: true}, metrics.OutcomeOK)
}

// save routes a fetched model through the cache collaborator. An absent
// cache behaves as if every write yielded nothing.
func (s *Service) save(ctx context.Context, model *Conversation) (*Conversation, bool) {
	if s.cache == nil {
		return nil, false
	}
	saved, ok := s.cache.Save(ctx, model)
	if !ok || saved == nil {
		return nil, false
	}
	return saved, true
}

// settleWait blocks for the settle delay. It returns false when the call
// was cancelled during the wait; no result is delivered in that case.
func (s *Service) settleWait(call *Call) bool {
	s.metrics.SettleWait()
	timer := time.NewTimer(s.settle)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-call.ctx.Done():
		s.metrics.Operation(opNewConversation, metrics.OutcomeCancelled)
		return false
	}
}

// finish delivers a terminal result on d, unless the call was cancelled.
// The cancellation check repeats inside the dispatched function so a
// cancel racing the dispatch still suppresses delivery.
func finish[T any](s *Service, call *Call, d dispatch.Dispatcher, op string, cb Callback[T], res Result[T], outcome string) {
	if call.ctx.Err() != nil {
		s.metrics.Operation(op, metrics.OutcomeCancelled)
		return
	}
	d.Dispatch(func() {
		if call.ctx.Err() != nil {
			s.metrics.Operation(op, metrics.OutcomeCancelled)
			return
		}
		s.metrics.Operation(op, outcome)
		cb(res)
	})
}
