package workers

import (
	"context"
	"log/slog"
	"time"

	"mood-chat/contract"
	"mood-chat/domain"
	"mood-chat/domain/event"
)

var _ contract.Worker = (*TypingReaperWorker)(nil)

// TypingReaperWorker expires stale typing marks so a crashed client cannot
// leave an "is typing" indicator hanging forever. Each expired (user, peer)
// pair is announced to the peer as a cleared typing state.
type TypingReaperWorker struct {
	registry contract.IPresenceRegistry
	notices  chan contract.Notice
	log      *slog.Logger
	interval time.Duration
}

func NewTypingReaperWorker(registry contract.IPresenceRegistry,
	notices chan contract.Notice, log *slog.Logger, interval time.Duration) *TypingReaperWorker {
	return &TypingReaperWorker{registry: registry, notices: notices, log: log, interval: interval}
}

func (w *TypingReaperWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping worker")
			return ctx.Err()
		case now := <-ticker.C:
			w.reap(ctx, now)
		}
	}
}

func (w *TypingReaperWorker) reap(ctx context.Context, now time.Time) {
	for _, state := range w.registry.ExpireTyping(now) {
		notice := contract.Notice{
			Users: []domain.UserID{state.Peer},
			Event: event.TypingChanged{User: state.User, Peer: state.Peer, Typing: false},
		}
		select {
		case <-ctx.Done():
			return
		case w.notices <- notice:
		}
	}
}
