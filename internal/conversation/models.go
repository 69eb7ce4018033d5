// ABOUTME: Domain records threaded through the sync pipeline
// ABOUTME: Contents are owned by the remote/cache collaborators; the pipeline never mutates them

package conversation

import "time"

// LiteConversation is the lightweight (name, uuid) pair returned by the
// session-scoped listing. Immutable.
type LiteConversation struct {
	Name string
	UUID string
}

// Preview is the summary record returned by the user-scoped listing.
type Preview struct {
	SID           string
	FriendlyName  string
	CreatedBy     string
	MembersCount  int
	MessagesCount int
	LastMessageAt time.Time
}

// Conversation is the detailed conversation record. The remote service
// produces it and the cache collaborator may transform it on save; this
// package only passes it along.
type Conversation struct {
	SID          string
	FriendlyName string
	Attributes   map[string]any
	CreatedBy    string
	DateCreated  time.Time
	DateUpdated  time.Time
	// Synchronized is set by the cache collaborator once the record has
	// been round-tripped through it. A fetch that never reached the cache
	// write must not yield a synchronized conversation.
	Synchronized bool
}

// JoinModel carries the caller's identity into a join request.
type JoinModel struct {
	UserID string
}

// MemberState is the caller-facing membership state mapped from the remote
// service's join status.
type MemberState int

const (
	MemberJoined MemberState = iota
	MemberInvited
	MemberNotParticipating
)

// String returns the lowercase name of the member state.
func (m MemberState) String() string {
	switch m {
	case MemberJoined:
		return "joined"
	case MemberInvited:
		return "invited"
	case MemberNotParticipating:
		return "not_participating"
	default:
		return "unknown"
	}
}

// memberStateFromStatus maps the remote service's status vocabulary onto
// MemberState. Unknown statuses read as not participating rather than
// failing: the join itself already succeeded.
func memberStateFromStatus(status string) MemberState {
	switch status {
	case "joined":
		return MemberJoined
	case "invited":
		return MemberInvited
	default:
		return MemberNotParticipating
	}
}
