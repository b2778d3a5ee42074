package domain

import (
	"time"

	"github.com/google/uuid"
)

// Command is an inbound client intent. The sender identity is always the
// authenticated identity of the connection, never a client-supplied field.
type Command interface {
	Sender() UserID
}

// JoinCommand opens a conversation with a peer and requests the initial
// history page. SinceSeq is a client-supplied hint (last locally cached
// sequence number); the server stays authoritative.
type JoinCommand struct {
	From     UserID
	Peer     UserID
	SinceSeq uint64
}

func (c JoinCommand) Sender() UserID { return c.From }

// SendMessageCommand carries one message towards a peer. Token is generated
// by the client so a failure acknowledgment can be tied back to the exact
// attempt, allowing UI retry without duplicate sends.
type SendMessageCommand struct {
	Token     uuid.UUID
	From      UserID
	Peer      UserID
	Payload   Payload
	CreatedAt time.Time
}

func (c SendMessageCommand) Sender() UserID { return c.From }

// Key returns the canonical conversation key of the exchange.
func (c SendMessageCommand) Key() ConversationKey {
	return NewConversationKey(c.From, c.Peer)
}

// TypingCommand starts or stops the typing indicator towards a peer.
type TypingCommand struct {
	From   UserID
	Peer   UserID
	Typing bool
}

func (c TypingCommand) Sender() UserID { return c.From }

// FetchHistoryCommand pages through a conversation log, ascending,
// starting strictly after SinceSeq.
type FetchHistoryCommand struct {
	From     UserID
	Peer     UserID
	SinceSeq uint64
	Limit    int
}

func (c FetchHistoryCommand) Sender() UserID { return c.From }

// SearchCommand runs a full-text query over the text messages of one
// conversation the sender takes part in.
type SearchCommand struct {
	From  UserID
	Peer  UserID
	Query string
	Limit int
}

func (c SearchCommand) Sender() UserID { return c.From }
