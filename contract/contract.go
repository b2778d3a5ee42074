//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"
	"time"

	"mood-chat/domain"
	"mood-chat/domain/event"
)

// EventSink is the engine-side handle of one live client connection.
// Consume pushes a single event and honors ctx for the per-push bound.
// Fail asks the owning session to tear the connection down; it must be
// safe to call from any goroutine and more than once.
type EventSink interface {
	Consume(ctx context.Context, e event.Event) error
	Fail(err error)
}

// Worker doesn't protect itself.
// Can be silly, focused.
type Worker interface {
	Run(ctx context.Context) error
}

// ISupervisor runs workers in goroutines, recovers panics and restarts
// crashed workers until its context is canceled.
type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// IConversationStore is the durable append-only log of messages keyed by
// conversation. Appends to the same key are serialized internally; a
// failure wraps errors.ErrStoreUnavailable and is retryable.
type IConversationStore interface {
	Append(ctx context.Context, key domain.ConversationKey, sender domain.UserID, p domain.Payload, lang string) (domain.Message, error)
	History(ctx context.Context, key domain.ConversationKey, sinceSeq uint64, limit int) ([]domain.Message, error)
}

// IPresenceRegistry tracks live connections and typing state per user.
// A user appears in the registry iff it has at least one attached sink.
type IPresenceRegistry interface {
	Attach(user domain.UserID, sink EventSink) (wentOnline bool)
	Detach(user domain.UserID, sink EventSink) (wentOffline bool)
	SinksFor(user domain.UserID) []EventSink
	IsOnline(user domain.UserID) bool
	Online() []domain.UserID
	MarkTyping(user, peer domain.UserID, ttl time.Duration)
	ClearTyping(user, peer domain.UserID)
	IsTyping(user, peer domain.UserID) bool
	ExpireTyping(now time.Time) []TypingState
}

// TypingState names one (user, peer) typing edge, used by the reaper to
// broadcast expirations.
type TypingState struct {
	User domain.UserID
	Peer domain.UserID
}

// IPeerDirectory answers whether an identity is known to the external
// authentication subsystem. The engine treats authentication itself as a
// precondition and only consults the directory for peer validation.
type IPeerDirectory interface {
	Known(ctx context.Context, user domain.UserID) bool
}

// ISearcher answers full-text queries over the text messages of one
// conversation.
type ISearcher interface {
	Search(ctx context.Context, key domain.ConversationKey, query string, limit int) ([]domain.Message, error)
}

// MessageTap observes committed messages after fan-out, best-effort.
// Used for side indexes (full-text search), never for core delivery.
type MessageTap interface {
	OnMessage(ctx context.Context, msg domain.Message) error
}

// Notice is a best-effort fan-out envelope for presence and typing events.
// An empty Users slice targets every user currently online.
type Notice struct {
	Users []domain.UserID
	Event event.Event
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker
// lifecycle events, avoiding manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
