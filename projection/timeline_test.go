package projection

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"mood-chat/domain"
	"mood-chat/domain/event"
)

func delivered(key domain.ConversationKey, seq uint64, sender domain.UserID, body string) event.MessageDelivered {
	return event.MessageDelivered{Message: domain.Message{
		ID:           uuid.New(),
		Conversation: key,
		Seq:          seq,
		Sender:       sender,
		Payload:      domain.TextPayload{Body: body},
		CreatedAt:    time.Now().UTC(),
	}}
}

func TestTimeline_Orders_By_Sequence(t *testing.T) {
	req := require.New(t)
	key := domain.NewConversationKey("alice", "bob")
	timeline := NewTimeline(key)

	timeline.Consume(delivered(key, 2, "bob", "second"))
	timeline.Consume(delivered(key, 1, "alice", "first"))

	messages := timeline.Messages()
	req.Len(messages, 2)
	req.Equal(domain.UserID("alice"), messages[0].Sender)
	req.Equal(domain.UserID("bob"), messages[1].Sender)
}

func TestTimeline_History_Over_Live_Deduplicates(t *testing.T) {
	req := require.New(t)
	key := domain.NewConversationKey("alice", "bob")
	timeline := NewTimeline(key)

	live := delivered(key, 1, "alice", "hello")
	timeline.Consume(live)

	// Replaying the same message through a history page changes nothing
	timeline.Consume(event.HistoryPage{
		Conversation: key,
		Messages:     []domain.Message{live.Message},
		NextSeq:      1,
	})

	req.Len(timeline.Messages(), 1)
}

func TestTimeline_Ignores_Other_Conversations(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline(domain.NewConversationKey("alice", "bob"))

	timeline.Consume(delivered(domain.NewConversationKey("alice", "clara"), 1, "clara", "elsewhere"))

	req.Empty(timeline.Messages())
}

func TestTimeline_NextSeq_Stops_At_Gap(t *testing.T) {
	req := require.New(t)
	key := domain.NewConversationKey("alice", "bob")
	timeline := NewTimeline(key)

	timeline.Consume(delivered(key, 1, "alice", "one"))
	timeline.Consume(delivered(key, 2, "bob", "two"))
	timeline.Consume(delivered(key, 4, "bob", "four, after a gap"))

	// Resuming from 2 refetches the missing message
	req.Equal(uint64(2), timeline.NextSeq())

	timeline.Consume(delivered(key, 3, "alice", "three"))
	req.Equal(uint64(4), timeline.NextSeq())
}
