package ws

import (
	"context"
	"sync"

	"mood-chat/contract"
	"mood-chat/domain/event"
	"mood-chat/errors"
)

var _ contract.EventSink = (*Sink)(nil)

// Sink is the per-connection event sink. Events are encoded on the pushing
// goroutine and queued for the session's write pump; the buffer absorbs
// bursts so a briefly busy connection does not stall its producers.
//
// Once failed, the sink stays failed: every later Consume returns
// immediately instead of burning the delivery timeout again, so one dead
// connection costs its producers at most one timeout in total.
type Sink struct {
	out  chan []byte
	done chan struct{}

	mu     sync.Mutex
	once   sync.Once
	reason error
}

func NewSink(buffer int) *Sink {
	return &Sink{
		out:  make(chan []byte, buffer),
		done: make(chan struct{}),
	}
}

func (s *Sink) Consume(ctx context.Context, e event.Event) error {
	if err := s.failure(); err != nil {
		return err
	}
	data, err := EncodeEvent(e)
	if err != nil {
		return err
	}

	select {
	case s.out <- data:
		return nil
	case <-s.done:
		return s.failure()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Fail marks the sink dead and wakes the write pump so the session tears
// the connection down. Idempotent.
func (s *Sink) Fail(err error) {
	s.mu.Lock()
	if s.reason == nil {
		if err == nil {
			err = errors.ErrSlowConsumer
		}
		s.reason = err
	}
	s.mu.Unlock()
	s.once.Do(func() { close(s.done) })
}

func (s *Sink) failure() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reason != nil {
		return s.reason
	}
	select {
	case <-s.done:
		return errors.ErrSessionClosed
	default:
		return nil
	}
}

// Done closes when the sink was failed or the session closed it.
func (s *Sink) Done() <-chan struct{} { return s.done }

// Close releases the write pump without recording a failure reason.
func (s *Sink) Close() {
	s.once.Do(func() { close(s.done) })
}
