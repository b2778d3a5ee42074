// Package event defines the outbound events pushed to client connections.
// Events are immutable values; fan-out happens in the runtime package.
package event

import (
	"github.com/google/uuid"

	"mood-chat/domain"
)

// Event is anything the engine can push to a client connection.
// Name is the stable wire tag of the event type.
type Event interface {
	Name() string
}

// MessageDelivered is fanned out to every live connection of both
// conversation participants, strictly after the append committed and in
// append order.
type MessageDelivered struct {
	Message domain.Message
}

func (MessageDelivered) Name() string { return "message" }

// DeliveryFailed is the explicit failure acknowledgment for one send
// attempt, addressed to the sender only.
type DeliveryFailed struct {
	Conversation domain.ConversationKey
	Token        uuid.UUID
	Reason       string
}

func (DeliveryFailed) Name() string { return "delivery_failed" }

// HistoryPage answers a join or an explicit history fetch. NextSeq is the
// sequence number of the last message in the page; feeding it back as
// SinceSeq continues the pagination without duplicates or omissions.
type HistoryPage struct {
	Conversation domain.ConversationKey
	Messages     []domain.Message
	NextSeq      uint64
}

func (HistoryPage) Name() string { return "history" }

// PresenceChanged announces an online/offline transition of a user.
type PresenceChanged struct {
	User   domain.UserID
	Online bool
}

func (PresenceChanged) Name() string { return "presence" }

// TypingChanged announces that User started or stopped typing towards Peer.
type TypingChanged struct {
	User   domain.UserID
	Peer   domain.UserID
	Typing bool
}

func (TypingChanged) Name() string { return "typing" }

// Roster is pushed once to a freshly attached connection and lists the
// identities currently online.
type Roster struct {
	Users []domain.UserID
}

func (Roster) Name() string { return "roster" }

// SearchResults answers a full-text query over one conversation.
type SearchResults struct {
	Conversation domain.ConversationKey
	Query        string
	Matches      []domain.Message
}

func (SearchResults) Name() string { return "search_results" }

// Problem reports a rejected command to the originating connection only.
type Problem struct {
	Reason string
}

func (Problem) Name() string { return "error" }
