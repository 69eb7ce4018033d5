// ABOUTME: Single-shot result plumbing for pipeline operations
// ABOUTME: Result distinguishes value, error, and the documented bare completion; Call carries cancellation

package conversation

import (
	"context"

	"github.com/google/uuid"
)

// Result is the single terminal outcome of a pipeline operation. Exactly
// one of three shapes is delivered:
//
//   - Ok true: Value holds the success value.
//   - Err non-nil: the operation failed; Value is the zero value.
//   - Ok false, Err nil: bare completion. The operation finished with
//     nothing to deliver. This is not an error; see the absorption policy
//     in the package documentation.
type Result[T any] struct {
	Value T
	Ok    bool
	Err   error
}

// Callback receives an operation's terminal Result. It is invoked at most
// once, on the dispatcher the operation's delivery policy names, and never
// after the operation's Call has been cancelled.
type Callback[T any] func(Result[T])

// Call identifies one in-flight pipeline operation and carries its
// cancellation handle.
type Call struct {
	// ID uniquely identifies this invocation, for log correlation.
	ID string

	ctx    context.Context
	cancel context.CancelFunc
}

func newCall(ctx context.Context) *Call {
	if ctx == nil {
		ctx = context.Background()
	}
	cctx, cancel := context.WithCancel(ctx)
	return &Call{
		ID:     uuid.New().String(),
		ctx:    cctx,
		cancel: cancel,
	}
}

// Cancel detaches the caller from the operation: no further stages are
// issued and no result is delivered. It does not recall a collaborator
// request that is already in flight; the request may still complete and
// mutate remote or local state.
func (c *Call) Cancel() {
	c.cancel()
}
