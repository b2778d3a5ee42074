// Package search maintains a full-text index over text message bodies.
// It is fed as a tap on committed messages, best-effort: an indexing
// failure is logged and never blocks or fails delivery.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/blugelabs/bluge"
	"github.com/google/uuid"

	"mood-chat/domain"
)

const seqDigits = 20

// Index wraps a bluge index of text messages, one document per message.
type Index struct {
	writer *bluge.Writer
	log    *slog.Logger
}

func NewIndex(path string, log *slog.Logger) (*Index, error) {
	writer, err := bluge.OpenWriter(bluge.DefaultConfig(path))
	if err != nil {
		return nil, fmt.Errorf("opening search index: %w", err)
	}
	return &Index{writer: writer, log: log}, nil
}

func (i *Index) Close() error {
	return i.writer.Close()
}

// OnMessage indexes the body of a committed text message. Non-text
// payloads are skipped; there is nothing to search in them.
func (i *Index) OnMessage(_ context.Context, msg domain.Message) error {
	text, ok := msg.Payload.(domain.TextPayload)
	if !ok {
		return nil
	}

	doc := bluge.NewDocument(msg.ID.String()).
		AddField(bluge.NewKeywordField("conversation", string(msg.Conversation))).
		AddField(bluge.NewKeywordField("sender", string(msg.Sender)).StoreValue()).
		AddField(bluge.NewTextField("body", text.Body).StoreValue()).
		AddField(bluge.NewKeywordField("lang", msg.Lang).StoreValue()).
		AddField(bluge.NewKeywordField("seq", paddedSeq(msg.Seq)).StoreValue()).
		AddField(bluge.NewKeywordField("at", msg.CreatedAt.UTC().Format(time.RFC3339Nano)).StoreValue())

	return i.writer.Update(doc.ID(), doc)
}

// Search returns the text messages of one conversation matching the query,
// in ascending sequence order, up to limit.
func (i *Index) Search(ctx context.Context, key domain.ConversationKey,
	query string, limit int) ([]domain.Message, error) {
	reader, err := i.writer.Reader()
	if err != nil {
		return nil, err
	}
	defer func() { _ = reader.Close() }()

	q := bluge.NewBooleanQuery().
		AddMust(bluge.NewMatchQuery(query).SetField("body")).
		AddMust(bluge.NewTermQuery(string(key)).SetField("conversation"))

	iterator, err := reader.Search(ctx, bluge.NewTopNSearch(limit, q).SortBy([]string{"seq"}))
	if err != nil {
		return nil, err
	}

	var matches []domain.Message
	for {
		next, err := iterator.Next()
		if err != nil {
			return nil, err
		}
		if next == nil {
			return matches, nil
		}

		msg := domain.Message{Conversation: key}
		var body string
		err = next.VisitStoredFields(func(field string, value []byte) bool {
			switch field {
			case "_id":
				msg.ID, _ = uuid.Parse(string(value))
			case "sender":
				msg.Sender = domain.UserID(value)
			case "body":
				body = string(value)
			case "lang":
				msg.Lang = string(value)
			case "seq":
				msg.Seq, _ = strconv.ParseUint(string(value), 10, 64)
			case "at":
				msg.CreatedAt, _ = time.Parse(time.RFC3339Nano, string(value))
			}
			return true
		})
		if err != nil {
			return nil, err
		}
		msg.Payload = domain.TextPayload{Body: body}
		matches = append(matches, msg)
	}
}

func paddedSeq(seq uint64) string {
	return fmt.Sprintf("%0*d", seqDigits, seq)
}
