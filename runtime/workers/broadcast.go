package workers

import (
	"context"
	"log/slog"
	"time"

	"mood-chat/contract"
	"mood-chat/domain"
)

var _ contract.Worker = (*BroadcastWorker)(nil)

// BroadcastWorker fans presence and typing notices out to live connections.
//
// It provides best-effort delivery with no ordering guarantee across users;
// it is not used for message delivery, which stays inside the per
// conversation workers to preserve append order.
type BroadcastWorker struct {
	registry contract.IPresenceRegistry
	notices  chan contract.Notice
	log      *slog.Logger
	timeout  time.Duration
}

func NewBroadcastWorker(registry contract.IPresenceRegistry,
	notices chan contract.Notice, log *slog.Logger, timeout time.Duration) *BroadcastWorker {
	return &BroadcastWorker{registry: registry, notices: notices, log: log, timeout: timeout}
}

func (w *BroadcastWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping worker")
			return ctx.Err()
		case notice, ok := <-w.notices:
			if !ok {
				return nil
			}
			w.fanout(ctx, notice)
		}
	}
}

func (w *BroadcastWorker) fanout(ctx context.Context, notice contract.Notice) {
	targets := notice.Users
	if len(targets) == 0 {
		targets = w.registry.Online()
	}
	for _, user := range targets {
		w.push(ctx, notice, user)
	}
}

func (w *BroadcastWorker) push(ctx context.Context, notice contract.Notice, user domain.UserID) {
	for _, sink := range w.registry.SinksFor(user) {
		pushCtx, cancel := context.WithTimeout(ctx, w.timeout)
		err := sink.Consume(pushCtx, notice.Event)
		cancel()
		if err != nil {
			// A failure to notify one peer never blocks or fails the
			// transition that produced the notice.
			w.log.Warn("Notice push failed, tearing connection down",
				"user", user, "event", notice.Event.Name(), "error", err)
			sink.Fail(err)
		}
	}
}
