// Package conversation implements the conversation sync pipeline: the
// multi-step create/join/fetch/list operations a messaging client runs
// against its backend and local cache.
//
// # Operations
//
// Every operation is a single-shot asynchronous producer started with a
// caller-supplied callback:
//
//	svc := conversation.New(remote, identity, conversation.Options{Cache: cache, Main: mainQueue})
//	call := svc.FetchConversation(ctx, sid, func(r conversation.Result[*conversation.Conversation]) { ... })
//
// The callback fires exactly once with one of three terminal shapes:
// a success value, an error, or a bare completion with neither. Bare
// completions happen in exactly two documented cases: NewConversation with
// shouldJoin false, and a fetch whose cache write yielded nothing.
//
// # Chaining and errors
//
// Within one invocation, stages run strictly in sequence; the first error
// aborts the remaining stages and propagates to the callback unchanged.
// Nothing is retried: retries are the caller's responsibility. Independent
// invocations are not synchronized against each other.
//
// # Absorption
//
// Network failures are loud; cache misses on write are quiet. When the
// remote fetch succeeds but the cache yields no value (or no cache is
// configured), the operation completes bare rather than erroring. A
// Conversation only counts as synchronized once it has round-tripped
// through the cache, so the raw remote model is never delivered in its
// place.
//
// # Delivery affinity
//
// Create, fetch, and list results are delivered on the background
// dispatcher. JoinConversation results are delivered on the main (UI)
// dispatcher, because consumers mutate interactive membership state with
// them. The two policies are distinct on purpose; do not route both
// through one executor.
//
// # Cancellation
//
// Call.Cancel stops further stage issuance and suppresses delivery. It
// does not abort a collaborator request already in flight; the backend may
// still apply it.
package conversation
