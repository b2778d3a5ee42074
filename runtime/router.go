package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"mood-chat/contract"
	"mood-chat/domain"
	"mood-chat/domain/event"
	"mood-chat/errors"
	"mood-chat/moderation"
	"mood-chat/runtime/workers"
)

// RouterConfig bounds every queue, retry and timeout of the routing layer.
type RouterConfig struct {
	QueueSize       int
	DeliveryTimeout time.Duration
	RetryAttempts   int
	RetryBackoff    time.Duration
	HistoryPageSize int
	MaxPayloadBytes int
	TypingTTL       time.Duration
	ReapInterval    time.Duration
}

// Router validates inbound client commands, updates the presence registry,
// dispatches sends to per-conversation workers and fans resulting events
// out to the relevant connections.
//
// Message delivery order is preserved per conversation because each
// conversation owns exactly one worker; presence and typing notices travel
// through a separate best-effort broadcast channel with no cross-user
// ordering guarantee.
type Router struct {
	mu            sync.Mutex
	log           *slog.Logger
	registry      contract.IPresenceRegistry
	store         contract.IConversationStore
	directory     contract.IPeerDirectory
	supervisor    contract.ISupervisor
	moderator     *moderation.Moderator
	searcher      contract.ISearcher
	taps          []contract.MessageTap
	conversations map[domain.ConversationKey]chan domain.SendMessageCommand
	notices       chan contract.Notice
	cfg           RouterConfig

	ctx context.Context
}

func NewRouter(log *slog.Logger, registry contract.IPresenceRegistry,
	store contract.IConversationStore, directory contract.IPeerDirectory,
	supervisor contract.ISupervisor, cfg RouterConfig) *Router {
	return &Router{
		log:           log,
		registry:      registry,
		store:         store,
		directory:     directory,
		supervisor:    supervisor,
		conversations: make(map[domain.ConversationKey]chan domain.SendMessageCommand),
		notices:       make(chan contract.Notice, cfg.QueueSize),
		cfg:           cfg,
	}
}

// WithModerator censors text bodies before they are persisted.
func (r *Router) WithModerator(m *moderation.Moderator) *Router {
	r.moderator = m
	return r
}

// WithSearcher enables the search command and feeds the index with every
// committed message.
func (r *Router) WithSearcher(s contract.ISearcher) *Router {
	r.searcher = s
	if tap, ok := s.(contract.MessageTap); ok {
		r.taps = append(r.taps, tap)
	}
	return r
}

// WithTaps registers additional observers of committed messages.
func (r *Router) WithTaps(taps ...contract.MessageTap) *Router {
	r.taps = append(r.taps, taps...)
	return r
}

// Start registers the long-lived broadcast and typing-reaper workers with
// the supervisor and keeps ctx for spawning per-conversation workers.
// The supervisor itself is run by the caller.
func (r *Router) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctx = ctx
	r.supervisor.Add(
		workers.NewBroadcastWorker(r.registry, r.notices, r.log, r.cfg.DeliveryTimeout),
		workers.NewTypingReaperWorker(r.registry, r.notices, r.log, r.cfg.ReapInterval),
	)
}

// Attach registers a live connection. If the user transitioned online the
// presence change is broadcast; the new connection always receives the
// current roster first.
func (r *Router) Attach(ctx context.Context, user domain.UserID, sink contract.EventSink) error {
	if err := user.Validate(); err != nil {
		return err
	}
	wentOnline := r.registry.Attach(user, sink)
	deliver(ctx, r.log, r.cfg.DeliveryTimeout, event.Roster{Users: r.registry.Online()}, sink)
	if wentOnline {
		r.notify(contract.Notice{Event: event.PresenceChanged{User: user, Online: true}})
	}
	return nil
}

// Detach deregisters a connection. It never fails: presence side effects of
// a closing session are best-effort by design.
func (r *Router) Detach(user domain.UserID, sink contract.EventSink) {
	wentOffline := r.registry.Detach(user, sink)
	if wentOffline {
		r.notify(contract.Notice{Event: event.PresenceChanged{User: user, Online: false}})
	}
}

// Join opens a conversation and replies with the initial history page on
// the requesting connection only.
func (r *Router) Join(ctx context.Context, cmd domain.JoinCommand, reply contract.EventSink) error {
	if err := r.checkPeer(ctx, cmd.Peer); err != nil {
		return err
	}
	return r.sendHistory(ctx, domain.NewConversationKey(cmd.From, cmd.Peer),
		cmd.SinceSeq, r.cfg.HistoryPageSize, reply)
}

// History pages through a conversation log on behalf of one connection.
func (r *Router) History(ctx context.Context, cmd domain.FetchHistoryCommand, reply contract.EventSink) error {
	if err := r.checkPeer(ctx, cmd.Peer); err != nil {
		return err
	}
	limit := cmd.Limit
	if limit <= 0 || limit > r.cfg.HistoryPageSize {
		limit = r.cfg.HistoryPageSize
	}
	return r.sendHistory(ctx, domain.NewConversationKey(cmd.From, cmd.Peer),
		cmd.SinceSeq, limit, reply)
}

// Send validates the command and hands it to the conversation's worker.
// A validation failure is terminal and returned immediately; everything
// after enqueueing (retry, failure ack, fan-out) is the worker's job.
func (r *Router) Send(ctx context.Context, cmd domain.SendMessageCommand) error {
	if err := r.checkPeer(ctx, cmd.Peer); err != nil {
		return err
	}
	if err := domain.ValidatePayload(cmd.Payload, r.cfg.MaxPayloadBytes); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case r.queueFor(cmd.Key()) <- cmd:
		return nil
	}
}

// Typing records or clears the typing state and notifies the peer's live
// connections only. The mark decays after TypingTTL without a refresh.
func (r *Router) Typing(ctx context.Context, cmd domain.TypingCommand) error {
	if err := r.checkPeer(ctx, cmd.Peer); err != nil {
		return err
	}
	if cmd.Typing {
		r.registry.MarkTyping(cmd.From, cmd.Peer, r.cfg.TypingTTL)
	} else {
		r.registry.ClearTyping(cmd.From, cmd.Peer)
	}
	r.notify(contract.Notice{
		Users: []domain.UserID{cmd.Peer},
		Event: event.TypingChanged{User: cmd.From, Peer: cmd.Peer, Typing: cmd.Typing},
	})
	return nil
}

// Search runs a full-text query over one conversation of the sender.
func (r *Router) Search(ctx context.Context, cmd domain.SearchCommand, reply contract.EventSink) error {
	if r.searcher == nil {
		return fmt.Errorf("search is not enabled")
	}
	if err := r.checkPeer(ctx, cmd.Peer); err != nil {
		return err
	}
	if cmd.Query == "" {
		return errors.ErrEmptyPayload
	}
	limit := cmd.Limit
	if limit <= 0 || limit > r.cfg.HistoryPageSize {
		limit = r.cfg.HistoryPageSize
	}

	key := domain.NewConversationKey(cmd.From, cmd.Peer)
	matches, err := r.searcher.Search(ctx, key, cmd.Query, limit)
	if err != nil {
		return err
	}
	deliver(ctx, r.log, r.cfg.DeliveryTimeout,
		event.SearchResults{Conversation: key, Query: cmd.Query, Matches: matches}, reply)
	return nil
}

func (r *Router) sendHistory(ctx context.Context, key domain.ConversationKey,
	sinceSeq uint64, limit int, reply contract.EventSink) error {
	messages, err := r.store.History(ctx, key, sinceSeq, limit)
	if err != nil {
		return err
	}
	page := event.HistoryPage{Conversation: key, Messages: messages, NextSeq: sinceSeq}
	if len(messages) > 0 {
		page.NextSeq = messages[len(messages)-1].Seq
	}
	deliver(ctx, r.log, r.cfg.DeliveryTimeout, page, reply)
	return nil
}

// queueFor lazily creates the single-writer queue of a conversation and
// puts its worker under supervision.
func (r *Router) queueFor(key domain.ConversationKey) chan domain.SendMessageCommand {
	r.mu.Lock()
	defer r.mu.Unlock()

	inbox, ok := r.conversations[key]
	if ok {
		return inbox
	}
	inbox = make(chan domain.SendMessageCommand, r.cfg.QueueSize)
	r.conversations[key] = inbox

	worker := workers.NewConversationWorker(key, inbox, r.store, r.registry,
		r.moderator, r.taps, r.log, r.cfg.DeliveryTimeout, r.cfg.RetryAttempts, r.cfg.RetryBackoff)
	ctx := r.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	r.supervisor.Start(ctx, worker)
	return inbox
}

func (r *Router) checkPeer(ctx context.Context, peer domain.UserID) error {
	if err := peer.Validate(); err != nil {
		return err
	}
	if !r.directory.Known(ctx, peer) {
		return fmt.Errorf("%w: %s", errors.ErrUnknownPeer, peer)
	}
	return nil
}

// notify hands a notice to the broadcast worker. Presence and typing are
// best-effort: when the channel is saturated the notice is dropped rather
// than blocking a session.
func (r *Router) notify(notice contract.Notice) {
	select {
	case r.notices <- notice:
	default:
		r.log.Warn("Notice channel full, dropping", "event", notice.Event.Name())
	}
}
