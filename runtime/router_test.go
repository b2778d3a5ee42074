package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"mood-chat/contract"
	"mood-chat/domain"
	"mood-chat/domain/event"
	"mood-chat/errors"
	"mood-chat/mocks"
	"mood-chat/repositories"
	"mood-chat/runtime/workers"
)

func testConfig() RouterConfig {
	return RouterConfig{
		QueueSize:       32,
		DeliveryTimeout: time.Second,
		RetryAttempts:   2,
		RetryBackoff:    time.Millisecond,
		HistoryPageSize: 50,
		MaxPayloadBytes: 4096,
		TypingTTL:       100 * time.Millisecond,
		ReapInterval:    25 * time.Millisecond,
	}
}

// newTestRouter wires a router over a real registry, a real supervisor and a
// badger-backed store, the same composition cmd/server uses. Every peer
// except "ghost" resolves as known.
func newTestRouter(t *testing.T, cfg RouterConfig) (*Router, context.Context) {
	t.Helper()
	log := slog.Default()

	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctrl := gomock.NewController(t)
	directory := mocks.NewMockIPeerDirectory(ctrl)
	directory.EXPECT().
		Known(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, user domain.UserID) bool {
			return user != "ghost"
		}).
		AnyTimes()

	supervisor := workers.NewSupervisor(log, 50*time.Millisecond)
	router := NewRouter(log, NewRegistry(),
		repositories.NewConversationRepository(db, log), directory, supervisor, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	router.Start(ctx)
	go supervisor.Run(ctx)
	t.Cleanup(supervisor.Stop)
	return router, ctx
}

func deliveredBodies(sink *memorySink) []string {
	var bodies []string
	for _, e := range sink.snapshot() {
		if delivered, ok := e.(event.MessageDelivered); ok {
			bodies = append(bodies, delivered.Message.Payload.(domain.TextPayload).Body)
		}
	}
	return bodies
}

func hasPresence(sink *memorySink, user domain.UserID, online bool) bool {
	for _, e := range sink.snapshot() {
		if p, ok := e.(event.PresenceChanged); ok && p.User == user && p.Online == online {
			return true
		}
	}
	return false
}

func TestRouter_EndToEnd_Conversation(t *testing.T) {
	req := require.New(t)
	router, ctx := newTestRouter(t, testConfig())
	alice, bob := &memorySink{}, &memorySink{}

	// Given two attached users
	req.NoError(router.Attach(ctx, "alice", alice))
	req.NoError(router.Attach(ctx, "bob", bob))

	// Each new connection got the roster first
	req.IsType(event.Roster{}, alice.snapshot()[0])
	req.IsType(event.Roster{}, bob.snapshot()[0])

	// When they exchange two messages
	req.NoError(router.Send(ctx, domain.SendMessageCommand{
		From: "alice", Peer: "bob", Payload: domain.TextPayload{Body: "hello"}}))
	req.NoError(router.Send(ctx, domain.SendMessageCommand{
		From: "bob", Peer: "alice", Payload: domain.TextPayload{Body: "hi"}}))

	// Then both observe the same order
	req.Eventually(func() bool {
		return len(deliveredBodies(alice)) == 2 && len(deliveredBodies(bob)) == 2
	}, 2*time.Second, 10*time.Millisecond)
	req.Equal([]string{"hello", "hi"}, deliveredBodies(alice))
	req.Equal([]string{"hello", "hi"}, deliveredBodies(bob))

	// And history replays the log with gap-free sequences
	reply := &memorySink{}
	req.NoError(router.History(ctx, domain.FetchHistoryCommand{
		From: "alice", Peer: "bob", SinceSeq: 0, Limit: 10}, reply))
	page := reply.snapshot()[0].(event.HistoryPage)
	req.Len(page.Messages, 2)
	req.Equal(uint64(1), page.Messages[0].Seq)
	req.Equal(uint64(2), page.Messages[1].Seq)
	req.Equal(uint64(2), page.NextSeq)

	// When bob's last connection detaches, alice learns he went offline
	router.Detach("bob", bob)
	req.Eventually(func() bool {
		return hasPresence(alice, "bob", false)
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRouter_Attach_Broadcasts_Online_Once(t *testing.T) {
	req := require.New(t)
	router, ctx := newTestRouter(t, testConfig())
	watcher := &memorySink{}

	req.NoError(router.Attach(ctx, "alice", watcher))

	// When bob connects twice
	first, second := &memorySink{}, &memorySink{}
	req.NoError(router.Attach(ctx, "bob", first))
	req.NoError(router.Attach(ctx, "bob", second))

	req.Eventually(func() bool {
		return hasPresence(watcher, "bob", true)
	}, 2*time.Second, 10*time.Millisecond)

	// Then exactly one online transition was announced
	count := 0
	for _, e := range watcher.snapshot() {
		if p, ok := e.(event.PresenceChanged); ok && p.User == "bob" && p.Online {
			count++
		}
	}
	req.Equal(1, count)

	// And dropping only one of the two connections announces nothing
	router.Detach("bob", first)
	time.Sleep(100 * time.Millisecond)
	req.False(hasPresence(watcher, "bob", false))
}

func TestRouter_Slow_Consumer_Does_Not_Block_Healthy_Ones(t *testing.T) {
	req := require.New(t)
	cfg := testConfig()
	cfg.DeliveryTimeout = 20 * time.Millisecond
	router, ctx := newTestRouter(t, cfg)

	alice := &memorySink{}
	healthy := &memorySink{}
	stalled := &memorySink{delay: time.Minute}

	req.NoError(router.Attach(ctx, "alice", alice))
	req.NoError(router.Attach(ctx, "bob", healthy))
	req.NoError(router.Attach(ctx, "bob", stalled))

	const messages = 10
	for i := 0; i < messages; i++ {
		req.NoError(router.Send(ctx, domain.SendMessageCommand{
			From: "alice", Peer: "bob",
			Payload: domain.TextPayload{Body: fmt.Sprintf("msg %d", i)}}))
	}

	// The healthy connection receives everything, in order
	req.Eventually(func() bool {
		return len(deliveredBodies(healthy)) == messages
	}, 5*time.Second, 10*time.Millisecond)
	req.Equal("msg 0", deliveredBodies(healthy)[0])
	req.Equal("msg 9", deliveredBodies(healthy)[messages-1])

	// The stalled one was failed so its session can tear it down
	req.Error(stalled.failure())
	req.Empty(deliveredBodies(stalled))
}

func TestRouter_Typing_Notifies_Peer_And_Decays(t *testing.T) {
	req := require.New(t)
	router, ctx := newTestRouter(t, testConfig())
	alice, bob := &memorySink{}, &memorySink{}

	req.NoError(router.Attach(ctx, "alice", alice))
	req.NoError(router.Attach(ctx, "bob", bob))

	req.NoError(router.Typing(ctx, domain.TypingCommand{From: "alice", Peer: "bob", Typing: true}))

	typingState := func(sink *memorySink, typing bool) bool {
		for _, e := range sink.snapshot() {
			if tc, ok := e.(event.TypingChanged); ok && tc.User == "alice" && tc.Typing == typing {
				return true
			}
		}
		return false
	}

	// The peer sees the indicator; the typist does not get an echo
	req.Eventually(func() bool { return typingState(bob, true) },
		2*time.Second, 10*time.Millisecond)
	req.False(typingState(alice, true))

	// Without a refresh the reaper clears it on the peer's side
	req.Eventually(func() bool { return typingState(bob, false) },
		2*time.Second, 10*time.Millisecond)
}

func TestRouter_Send_Rejections(t *testing.T) {
	req := require.New(t)
	cfg := testConfig()
	cfg.MaxPayloadBytes = 16
	router, ctx := newTestRouter(t, cfg)

	err := router.Send(ctx, domain.SendMessageCommand{
		From: "alice", Peer: "ghost", Payload: domain.TextPayload{Body: "hi"}})
	req.ErrorIs(err, errors.ErrUnknownPeer)

	err = router.Send(ctx, domain.SendMessageCommand{
		From: "alice", Peer: "bob", Payload: domain.TextPayload{Body: ""}})
	req.ErrorIs(err, errors.ErrEmptyPayload)

	err = router.Send(ctx, domain.SendMessageCommand{
		From: "alice", Peer: "bob",
		Payload: domain.TextPayload{Body: "this body does not fit in sixteen bytes"}})
	req.ErrorIs(err, errors.ErrPayloadTooLarge)

	err = router.Attach(ctx, "not\tvalid", &memorySink{})
	req.ErrorIs(err, errors.ErrInvalidIdentity)
}

func TestRouter_Search_Disabled(t *testing.T) {
	req := require.New(t)
	router, ctx := newTestRouter(t, testConfig())

	err := router.Search(ctx, domain.SearchCommand{From: "alice", Peer: "bob", Query: "x"}, &memorySink{})
	req.Error(err)
}

func TestRouter_Search_Replies_On_Requesting_Sink(t *testing.T) {
	req := require.New(t)
	router, ctx := newTestRouter(t, testConfig())

	ctrl := gomock.NewController(t)
	searcher := mocks.NewMockISearcher(ctrl)
	key := domain.NewConversationKey("alice", "bob")
	searcher.EXPECT().
		Search(gomock.Any(), key, "harbor", gomock.Any()).
		Return([]domain.Message{{Conversation: key, Seq: 1, Sender: "alice",
			Payload: domain.TextPayload{Body: "the harbor"}}}, nil).
		Times(1)
	router.WithSearcher(searcher)

	reply := &memorySink{}
	req.NoError(router.Search(ctx,
		domain.SearchCommand{From: "alice", Peer: "bob", Query: "harbor", Limit: 10}, reply))

	results := reply.snapshot()[0].(event.SearchResults)
	req.Equal("harbor", results.Query)
	req.Len(results.Matches, 1)
}

var _ contract.EventSink = (*memorySink)(nil)
