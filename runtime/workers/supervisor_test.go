package workers

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"mood-chat/mocks"
)

func TestSupervisor_RestartOnPanic(t *testing.T) {
	req := require.New(t)
	log := slog.Default()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	workerMock := mocks.NewMockWorker(ctrl)

	var calls atomic.Int32
	workerMock.EXPECT().
		Run(gomock.Any()).
		DoAndReturn(func(ctx context.Context) error {
			calls.Add(1)
			panic("boom")
		}).
		AnyTimes()

	sup := NewSupervisor(log, 100*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	go sup.Add(workerMock).Run(ctx)

	// Waiting for panics and restarts
	time.Sleep(900 * time.Millisecond)

	req.GreaterOrEqual(calls.Load(), int32(2))
}

func TestSupervisor_StopOnSuccess(t *testing.T) {
	req := require.New(t)
	log := slog.Default()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	workerMock := mocks.NewMockWorker(ctrl)

	// Given a worker running only once
	workerMock.EXPECT().
		Run(gomock.Any()).
		Return(nil).
		Times(1)

	sup := NewSupervisor(log, 100*time.Millisecond)

	// Given a channel to notify when Run() terminated
	done := make(chan struct{})

	go func() {
		sup.Add(workerMock).Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
		// Then supervisor detected a success, returned nil and stopped
	case <-time.After(500 * time.Millisecond):
		req.Fail("Supervisor should have stopped after worker success")
	}
}

func TestSupervisor_StartJoinsRunningSupervisor(t *testing.T) {
	req := require.New(t)
	log := slog.Default()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	first := mocks.NewMockWorker(ctrl)
	late := mocks.NewMockWorker(ctrl)

	firstDone := make(chan struct{})
	first.EXPECT().
		Run(gomock.Any()).
		DoAndReturn(func(ctx context.Context) error {
			close(firstDone)
			<-ctx.Done()
			return ctx.Err()
		}).
		Times(1)

	lateRan := make(chan struct{})
	late.EXPECT().
		Run(gomock.Any()).
		DoAndReturn(func(ctx context.Context) error {
			close(lateRan)
			return nil
		}).
		Times(1)

	sup := NewSupervisor(log, 100*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		sup.Add(first).Run(ctx)
		close(done)
	}()

	// When a worker is started after the supervisor is already running
	<-firstDone
	sup.Start(ctx, late)

	select {
	case <-lateRan:
	case <-time.After(500 * time.Millisecond):
		req.Fail("Late worker should have been started")
	}

	// Then Stop terminates the remaining blocked worker
	sup.Stop()
	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		req.Fail("Supervisor should have drained after Stop")
	}
}

func TestSupervisor_ConcurrentStartsWhileWaiting(t *testing.T) {
	req := require.New(t)
	log := slog.Default()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	blocker := mocks.NewMockWorker(ctrl)
	blocker.EXPECT().
		Run(gomock.Any()).
		DoAndReturn(func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}).
		Times(1)

	// Given a short-lived worker started many times from many goroutines,
	// the way message routing spawns a worker per conversation on first use
	var ran atomic.Int32
	short := mocks.NewMockWorker(ctrl)
	short.EXPECT().
		Run(gomock.Any()).
		DoAndReturn(func(ctx context.Context) error {
			ran.Add(1)
			return nil
		}).
		AnyTimes()

	sup := NewSupervisor(log, 100*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		sup.Add(blocker).Run(ctx)
		close(done)
	}()

	// When workers are started concurrently with the waiting supervisor
	const starts = 50
	var wg sync.WaitGroup
	for i := 0; i < starts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sup.Start(ctx, short)
		}()
	}
	wg.Wait()

	req.Eventually(func() bool {
		return ran.Load() == starts
	}, time.Second, 10*time.Millisecond)

	// Then Run is still waiting on the blocker and Stop drains everything
	select {
	case <-done:
		req.Fail("Supervisor should still be waiting on the blocked worker")
	default:
	}

	sup.Stop()
	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		req.Fail("Supervisor should have drained after Stop")
	}
}
