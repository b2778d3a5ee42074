package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"

	"mood-chat/domain"
)

func openTestDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func Test_Append_Assigns_Sequential_Numbers(t *testing.T) {
	req := require.New(t)
	repo := NewConversationRepository(openTestDB(t), slog.Default())
	key := domain.NewConversationKey("alice", "bob")
	ctx := context.Background()

	// When three messages are appended in order
	for i, body := range []string{"hello", "hi", "how are you?"} {
		msg, err := repo.Append(ctx, key, "alice", domain.TextPayload{Body: body}, "en")
		req.NoError(err)
		req.Equal(uint64(i+1), msg.Seq)
	}

	last, err := repo.LastSeq(key)
	req.NoError(err)
	req.Equal(uint64(3), last)
}

func Test_LastSeq_Empty_Conversation(t *testing.T) {
	req := require.New(t)
	repo := NewConversationRepository(openTestDB(t), slog.Default())

	// A conversation nobody wrote to yet has no sequence counter
	last, err := repo.LastSeq(domain.NewConversationKey("alice", "carol"))
	req.NoError(err)
	req.Zero(last)
}

func Test_Append_Concurrent_Is_GapFree(t *testing.T) {
	req := require.New(t)
	repo := NewConversationRepository(openTestDB(t), slog.Default())
	key := domain.NewConversationKey("alice", "bob")
	ctx := context.Background()

	// When 50 goroutines append to the same conversation concurrently
	const calls = 50
	var wg sync.WaitGroup
	seqs := make(chan uint64, calls)
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			msg, err := repo.Append(ctx, key, "alice",
				domain.TextPayload{Body: fmt.Sprintf("message %d", i)}, "en")
			req.NoError(err)
			seqs <- msg.Seq
		}(i)
	}
	wg.Wait()
	close(seqs)

	// Then the persisted numbers form a strictly increasing gap-free run
	seen := make(map[uint64]bool)
	for seq := range seqs {
		req.False(seen[seq], "sequence number %d assigned twice", seq)
		seen[seq] = true
	}
	req.Len(seen, calls)
	for seq := uint64(1); seq <= calls; seq++ {
		req.True(seen[seq], "sequence number %d missing", seq)
	}
}

func Test_History_Pagination_RoundTrip(t *testing.T) {
	req := require.New(t)
	repo := NewConversationRepository(openTestDB(t), slog.Default())
	key := domain.NewConversationKey("alice", "bob")
	ctx := context.Background()

	const total = 25
	for i := 0; i < total; i++ {
		_, err := repo.Append(ctx, key, "alice",
			domain.TextPayload{Body: fmt.Sprintf("message %d", i)}, "en")
		req.NoError(err)
	}

	// When paging with the last returned sequence as the next sinceSeq
	var collected []domain.Message
	since := uint64(0)
	for {
		page, err := repo.History(ctx, key, since, 7)
		req.NoError(err)
		if len(page) == 0 {
			break
		}
		collected = append(collected, page...)
		since = page[len(page)-1].Seq
	}

	// Then every message appears exactly once, in append order
	req.Len(collected, total)
	for i, msg := range collected {
		req.Equal(uint64(i+1), msg.Seq)
		req.Equal(domain.TextPayload{Body: fmt.Sprintf("message %d", i)}, msg.Payload)
	}
}

func Test_History_SinceSeq_Skips_Cached_Prefix(t *testing.T) {
	req := require.New(t)
	repo := NewConversationRepository(openTestDB(t), slog.Default())
	key := domain.NewConversationKey("alice", "bob")
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := repo.Append(ctx, key, "bob",
			domain.TextPayload{Body: fmt.Sprintf("message %d", i)}, "en")
		req.NoError(err)
	}

	page, err := repo.History(ctx, key, 3, 10)
	req.NoError(err)
	req.Len(page, 2)
	req.Equal(uint64(4), page[0].Seq)
	req.Equal(uint64(5), page[1].Seq)
}

func Test_Conversations_Are_Isolated(t *testing.T) {
	req := require.New(t)
	repo := NewConversationRepository(openTestDB(t), slog.Default())
	ctx := context.Background()
	ab := domain.NewConversationKey("alice", "bob")
	ac := domain.NewConversationKey("alice", "clara")

	_, err := repo.Append(ctx, ab, "alice", domain.TextPayload{Body: "for bob"}, "en")
	req.NoError(err)
	_, err = repo.Append(ctx, ac, "alice", domain.TextPayload{Body: "for clara"}, "en")
	req.NoError(err)

	// Then each conversation starts its own sequence and sees only its log
	page, err := repo.History(ctx, ac, 0, 10)
	req.NoError(err)
	req.Len(page, 1)
	req.Equal(uint64(1), page[0].Seq)
	req.Equal(domain.TextPayload{Body: "for clara"}, page[0].Payload)
}

func Test_Append_NonText_Payloads(t *testing.T) {
	req := require.New(t)
	repo := NewConversationRepository(openTestDB(t), slog.Default())
	key := domain.NewConversationKey("alice", "bob")
	ctx := context.Background()

	_, err := repo.Append(ctx, key, "alice",
		domain.EmotionResult{Emotion: "happy", Confidence: 0.93}, "")
	req.NoError(err)
	_, err = repo.Append(ctx, key, "bob",
		domain.ImageAttachment{URL: "/uploads/selfie.png", Mime: "image/png"}, "")
	req.NoError(err)

	page, err := repo.History(ctx, key, 0, 10)
	req.NoError(err)
	req.Len(page, 2)
	req.Equal(domain.EmotionResult{Emotion: "happy", Confidence: 0.93}, page[0].Payload)
	req.Equal(domain.ImageAttachment{URL: "/uploads/selfie.png", Mime: "image/png"}, page[1].Payload)
}
