// ABOUTME: Collaborator interfaces the sync pipeline is built against
// ABOUTME: Remote service, identity provider, and optional cache are all injected, never owned

package conversation

import (
	"context"
	"errors"
)

// ErrNotAuthenticated is returned when an operation requiring a resolved
// identity is started without one. It is raised before any collaborator
// call is made.
var ErrNotAuthenticated = errors.New("conversation: not authenticated")

// RemoteService is the backend conversation service. Implementations own
// the wire protocol; this package never sees it. Each call returns exactly
// one of value or error.
//
// Cancelling the ctx passed to a call stops the pipeline from issuing
// further stages, but an already-dispatched request may still complete and
// mutate remote state.
type RemoteService interface {
	// Create creates a conversation with the given display name and
	// returns its new identifier.
	Create(ctx context.Context, displayName string) (string, error)
	// ListForUser returns the preview summaries visible to userID.
	ListForUser(ctx context.Context, userID string) ([]Preview, error)
	// ListFromOffset returns one page of the current session's
	// conversations starting at offset.
	ListFromOffset(ctx context.Context, offset int) ([]LiteConversation, error)
	// Fetch returns the detailed conversation record for sid.
	Fetch(ctx context.Context, sid string) (*Conversation, error)
	// Join adds the identity in model to the conversation sid and returns
	// the resulting membership status.
	Join(ctx context.Context, model JoinModel, sid string) (string, error)
}

// Identity exposes the current session's user identifier. The read is
// synchronous; ok is false when no identity is resolved.
type Identity interface {
	UserID() (userID string, ok bool)
}

// Cache is the local persistence integration point. Save hands the fetched
// record to the store and returns the store's transformation of it; ok is
// false when the store yielded nothing. A nil return is not an error;
// the pipeline absorbs it into a bare completion.
//
// The Cache reference itself may be absent (nil), in which case every save
// behaves as if the store yielded nothing.
type Cache interface {
	Save(ctx context.Context, model *Conversation) (*Conversation, bool)
}

// IdentityFunc adapts a function to the Identity interface.
type IdentityFunc func() (string, bool)

// UserID calls f.
func (f IdentityFunc) UserID() (string, bool) { return f() }
