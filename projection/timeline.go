// Package projection builds local conversation timelines from observed
// events, the way a connected client keeps its view current. Handles
// ordering and deduplication; it never talks to the server itself.
package projection

import (
	"sort"
	"sync"

	"mood-chat/domain"
	"mood-chat/domain/event"
)

// Timeline merges live deliveries and history pages of one conversation
// into a duplicate-free message list ordered by sequence number. Replaying
// a history page over already delivered messages is a no-op.
type Timeline struct {
	mu       sync.Mutex
	key      domain.ConversationKey
	messages []domain.Message
	seen     map[uint64]struct{}
}

func NewTimeline(key domain.ConversationKey) *Timeline {
	return &Timeline{key: key, seen: make(map[uint64]struct{})}
}

// Consume folds one event into the timeline. Events of other conversations
// and non-message events are ignored.
func (t *Timeline) Consume(e event.Event) {
	switch evt := e.(type) {
	case event.MessageDelivered:
		t.insert(evt.Message)
	case event.HistoryPage:
		if evt.Conversation != t.key {
			return
		}
		for _, msg := range evt.Messages {
			t.insert(msg)
		}
	}
}

func (t *Timeline) insert(msg domain.Message) {
	if msg.Conversation != t.key {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, dup := t.seen[msg.Seq]; dup {
		return
	}
	t.seen[msg.Seq] = struct{}{}

	at := sort.Search(len(t.messages), func(i int) bool {
		return t.messages[i].Seq > msg.Seq
	})
	t.messages = append(t.messages, domain.Message{})
	copy(t.messages[at+1:], t.messages[at:])
	t.messages[at] = msg
}

// Messages returns the current timeline, ascending by sequence number.
func (t *Timeline) Messages() []domain.Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]domain.Message(nil), t.messages...)
}

// NextSeq is the sequence number to hand back as since_seq when resuming:
// the end of the contiguous prefix starting at 1. Messages received beyond
// a gap are kept but not counted, so the gap gets refetched.
func (t *Timeline) NextSeq() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	var next uint64
	for _, msg := range t.messages {
		if msg.Seq != next+1 {
			break
		}
		next = msg.Seq
	}
	return next
}
