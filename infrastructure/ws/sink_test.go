package ws

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mood-chat/domain/event"
	"mood-chat/errors"
)

func TestSink_Buffers_Until_Drained(t *testing.T) {
	req := require.New(t)
	sink := NewSink(2)
	ctx := context.Background()

	req.NoError(sink.Consume(ctx, event.Problem{Reason: "one"}))
	req.NoError(sink.Consume(ctx, event.Problem{Reason: "two"}))

	req.Len(sink.out, 2)
}

func TestSink_Full_Buffer_Respects_Context(t *testing.T) {
	req := require.New(t)
	sink := NewSink(1)
	req.NoError(sink.Consume(context.Background(), event.Problem{Reason: "fills it"}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := sink.Consume(ctx, event.Problem{Reason: "cannot fit"})
	req.ErrorIs(err, context.DeadlineExceeded)
}

func TestSink_Stays_Failed(t *testing.T) {
	req := require.New(t)
	sink := NewSink(1)
	cause := fmt.Errorf("%w: stuck", errors.ErrSlowConsumer)

	sink.Fail(cause)

	// Later pushes return immediately with the original cause, without
	// waiting for any timeout
	start := time.Now()
	err := sink.Consume(context.Background(), event.Problem{Reason: "late"})
	req.ErrorIs(err, errors.ErrSlowConsumer)
	req.Less(time.Since(start), 50*time.Millisecond)

	// And Done is signaled exactly once, also for repeated failures
	sink.Fail(fmt.Errorf("again"))
	select {
	case <-sink.Done():
	default:
		req.Fail("Done should be closed after Fail")
	}
}

func TestSink_Close_Without_Failure(t *testing.T) {
	req := require.New(t)
	sink := NewSink(1)

	sink.Close()

	err := sink.Consume(context.Background(), event.Problem{Reason: "late"})
	req.ErrorIs(err, errors.ErrSessionClosed)
}
