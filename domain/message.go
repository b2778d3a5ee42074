package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is an immutable chat record. Seq is scoped to the conversation:
// strictly increasing and gap-free relative to persisted messages, assigned
// by the conversation store at append time.
type Message struct {
	ID           uuid.UUID
	Conversation ConversationKey
	Seq          uint64
	Sender       UserID
	Payload      Payload
	Lang         string
	CreatedAt    time.Time
}
