package workers

import (
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/abadojack/whatlanggo"

	"mood-chat/contract"
	"mood-chat/domain"
	"mood-chat/domain/event"
	"mood-chat/errors"
	"mood-chat/moderation"
)

var _ contract.Worker = (*ConversationWorker)(nil)

// ConversationWorker is the single serialization point of one conversation:
// it consumes send commands from its inbox, appends to the store and fans
// the committed message out, in that order. Because one goroutine owns the
// whole append+fan-out path, every online participant observes deliveries
// in append order, and unrelated conversations never block each other.
type ConversationWorker struct {
	key       domain.ConversationKey
	inbox     chan domain.SendMessageCommand
	store     contract.IConversationStore
	registry  contract.IPresenceRegistry
	moderator *moderation.Moderator
	taps      []contract.MessageTap
	log       *slog.Logger

	deliveryTimeout time.Duration
	retryAttempts   int
	retryBackoff    time.Duration
}

func NewConversationWorker(
	key domain.ConversationKey,
	inbox chan domain.SendMessageCommand,
	store contract.IConversationStore,
	registry contract.IPresenceRegistry,
	moderator *moderation.Moderator,
	taps []contract.MessageTap,
	log *slog.Logger,
	deliveryTimeout time.Duration,
	retryAttempts int,
	retryBackoff time.Duration,
) *ConversationWorker {
	return &ConversationWorker{
		key:             key,
		inbox:           inbox,
		store:           store,
		registry:        registry,
		moderator:       moderator,
		taps:            taps,
		log:             log,
		deliveryTimeout: deliveryTimeout,
		retryAttempts:   retryAttempts,
		retryBackoff:    retryBackoff,
	}
}

func (w *ConversationWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping worker", "conversation", w.key)
			return ctx.Err()
		case cmd, ok := <-w.inbox:
			if !ok {
				return nil
			}
			w.handle(ctx, cmd)
		}
	}
}

func (w *ConversationWorker) handle(ctx context.Context, cmd domain.SendMessageCommand) {
	payload, lang := w.prepare(cmd.Payload)

	msg, err := w.appendWithRetry(ctx, cmd.From, payload, lang)
	if err != nil {
		// No fan-out on a failed append: only the sender learns about it,
		// tied to its request token so the UI can retry safely.
		w.log.Error("Append failed after retries",
			"conversation", w.key, "sender", cmd.From, "error", err)
		w.push(ctx, event.DeliveryFailed{
			Conversation: w.key,
			Token:        cmd.Token,
			Reason:       reasonOf(err),
		}, cmd.From)
		return
	}

	delivered := event.MessageDelivered{Message: msg}
	w.push(ctx, delivered, cmd.From)
	if peer := w.key.PeerOf(cmd.From); peer != cmd.From {
		w.push(ctx, delivered, peer)
	}

	for _, tap := range w.taps {
		if err := tap.OnMessage(ctx, msg); err != nil {
			w.log.Warn("Message tap failed", "conversation", w.key, "error", err)
		}
	}
}

// prepare censors text bodies and tags their language before persistence,
// so every reader (live fan-out, history, search) sees the same content.
func (w *ConversationWorker) prepare(p domain.Payload) (domain.Payload, string) {
	text, ok := p.(domain.TextPayload)
	if !ok {
		return p, ""
	}
	lang := whatlanggo.Detect(text.Body).Lang.Iso6391()
	if w.moderator != nil {
		text.Body = w.moderator.Censor(text.Body)
	}
	return text, lang
}

func (w *ConversationWorker) appendWithRetry(ctx context.Context,
	sender domain.UserID, p domain.Payload, lang string) (domain.Message, error) {
	var lastErr error
	backoff := w.retryBackoff
	for attempt := 0; attempt < w.retryAttempts; attempt++ {
		msg, err := w.store.Append(ctx, w.key, sender, p, lang)
		if err == nil {
			return msg, nil
		}
		lastErr = err
		if !stderrors.Is(err, errors.ErrStoreUnavailable) {
			return domain.Message{}, err
		}
		select {
		case <-ctx.Done():
			return domain.Message{}, ctx.Err()
		case <-time.After(backoff):
			backoff *= 2
		}
	}
	return domain.Message{}, lastErr
}

func (w *ConversationWorker) push(ctx context.Context, e event.Event, user domain.UserID) {
	for _, sink := range w.registry.SinksFor(user) {
		pushCtx, cancel := context.WithTimeout(ctx, w.deliveryTimeout)
		err := sink.Consume(pushCtx, e)
		cancel()
		if err != nil {
			w.log.Warn("Push failed, tearing connection down",
				"user", user, "event", e.Name(), "error", err)
			sink.Fail(err)
		}
	}
}

func reasonOf(err error) string {
	if stderrors.Is(err, errors.ErrStoreUnavailable) {
		return errors.ErrStoreUnavailable.Error()
	}
	return err.Error()
}
