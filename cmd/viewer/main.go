package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"

	"mood-chat/domain"
	"mood-chat/internal"
	"mood-chat/repositories"
)

// viewer dumps the history of one conversation from a live database,
// read-only, without going through the server.
func main() {
	users := flag.String("conv", "", "conversation participants, e.g. alice,bob")
	since := flag.Uint64("since", 0, "replay strictly after this sequence number")
	limit := flag.Int("limit", 50, "page size")
	transcript := flag.Bool("transcript", false, "print plain text bodies instead of a table")
	flag.Parse()

	pair := strings.Split(*users, ",")
	if len(pair) != 2 {
		log.Fatalf("expected -conv user,user, got %q", *users)
	}

	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		log.Fatalf("Config error: %v", err)
	}

	// BypassLockGuard allows opening while the server holds the lock.
	opts := badger.DefaultOptions(config.BadgerFilepath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	key := domain.NewConversationKey(
		domain.UserID(strings.TrimSpace(pair[0])),
		domain.UserID(strings.TrimSpace(pair[1])))
	repo := repositories.NewConversationRepository(db, logs.GetLoggerFromString(config.LogLevel))

	messages, err := repo.History(context.Background(), key, *since, *limit)
	if err != nil {
		log.Fatalf("Failed to read history: %v", err)
	}
	last, err := repo.LastSeq(key)
	if err != nil {
		log.Fatalf("Failed to read conversation length: %v", err)
	}

	color.Cyan.Printf("Conversation %s (showing %d of %d messages)\n\n", key, len(messages), last)

	if *transcript {
		for _, body := range repositories.Bodies(messages) {
			fmt.Println(body)
		}
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Seq", "At", "Sender", "Kind", "Lang", "Content"})
	for _, msg := range messages {
		table.Append([]string{
			fmt.Sprintf("%d", msg.Seq),
			msg.CreatedAt.Format(time.TimeOnly),
			string(msg.Sender),
			string(msg.Payload.Kind()),
			msg.Lang,
			describe(msg.Payload),
		})
	}
	table.Render()

	if len(messages) > 0 && messages[len(messages)-1].Seq < last {
		color.Gray.Printf("\nnext page: -since %d\n", messages[len(messages)-1].Seq)
	}
}

func describe(p domain.Payload) string {
	switch v := p.(type) {
	case domain.TextPayload:
		return v.Body
	case domain.EmotionResult:
		return fmt.Sprintf("%s (%.2f)", v.Emotion, v.Confidence)
	case domain.ImageAttachment:
		return v.URL
	}
	return "?"
}
