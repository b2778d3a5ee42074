package workers

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"mood-chat/contract"
	"mood-chat/errors"
)

// Supervisor runs each worker in a goroutine, recovers panics, restarts
// crashed workers after a delay and shuts down when the parent context is
// canceled.
//
// Workers may be started while Run is already waiting (the router spawns a
// conversation worker on first use), so liveness is tracked with a
// mutex-guarded counter and a condition variable instead of a WaitGroup:
// a WaitGroup forbids Add concurrently with a pending Wait once the
// counter can reach zero.
type Supervisor struct {
	mu              sync.Mutex
	idle            *sync.Cond
	cancel          context.CancelFunc
	log             *slog.Logger
	restartInterval time.Duration
	workers         []contract.Worker
	live            int
}

func NewSupervisor(log *slog.Logger, restartInterval time.Duration) *Supervisor {
	s := &Supervisor{
		log:             log,
		restartInterval: restartInterval,
	}
	s.idle = sync.NewCond(&s.mu)
	return s
}

func (s *Supervisor) Add(worker ...contract.Worker) contract.ISupervisor {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workers = append(s.workers, worker...)
	return s
}

// Run creates a local cancellation trigger tied to the parent ctx, starts
// every registered worker and blocks until all supervised goroutines end.
// Workers added later via Start join the same accounting.
func (s *Supervisor) Run(ctx context.Context) {
	supervisedCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	s.cancel = cancel
	registered := append([]contract.Worker(nil), s.workers...)
	s.mu.Unlock()

	for _, worker := range registered {
		s.Start(supervisedCtx, worker)
	}

	s.mu.Lock()
	for s.live > 0 {
		s.idle.Wait()
	}
	s.mu.Unlock()
}

// Start runs a worker under supervision in a dedicated goroutine. If its
// Run method panics, the supervisor recovers, restarts the worker and keeps
// the supervision loop alive: a failure in one worker must not stop the
// supervisor itself. A worker returning nil is considered finished and is
// never restarted. Safe to call concurrently with a blocked Run.
func (s *Supervisor) Start(ctx context.Context, worker contract.Worker) {
	s.mu.Lock()
	s.live++
	s.mu.Unlock()
	workerName := contract.GetWorkerName(worker)

	go func() {
		defer func() {
			s.mu.Lock()
			s.live--
			if s.live == 0 {
				s.idle.Broadcast()
			}
			s.mu.Unlock()
		}()

		for {
			if ctx.Err() != nil {
				s.log.Info(fmt.Sprintf("Stopping : %s", workerName))
				return
			}

			err := func() (err error) {
				defer func() {
					if r := recover(); r != nil {
						err = errors.ErrWorkerPanic
					}
				}()
				return worker.Run(ctx)
			}()

			if err == nil {
				s.log.Info(fmt.Sprintf("Worker finished : %s", workerName))
				return
			}

			if ctx.Err() != nil {
				s.log.Info("Worker stopped (context canceled)", "name", workerName)
				return
			}

			s.log.Warn("Worker crashed, restarting", "name", workerName, "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.restartInterval):
			}
		}
	}()
}

// Stop cancels all supervised goroutines; Run then waits for them to end.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}
