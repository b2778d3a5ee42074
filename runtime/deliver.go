package runtime

import (
	"context"
	"log/slog"
	"time"

	"mood-chat/contract"
	"mood-chat/domain/event"
)

// deliver pushes one event to each sink, every push independently bounded
// by timeout. A slow or broken connection is failed so the owning session
// tears it down through the normal detach path; remaining recipients still
// receive their copy. Returns the number of successful pushes.
func deliver(ctx context.Context, log *slog.Logger, timeout time.Duration,
	e event.Event, sinks ...contract.EventSink) int {
	delivered := 0
	for _, sink := range sinks {
		pushCtx, cancel := context.WithTimeout(ctx, timeout)
		err := sink.Consume(pushCtx, e)
		cancel()
		if err != nil {
			log.Warn("Push failed, tearing connection down",
				"event", e.Name(), "error", err)
			sink.Fail(err)
			continue
		}
		delivered++
	}
	return delivered
}
