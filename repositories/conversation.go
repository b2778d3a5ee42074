package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"mood-chat/domain"
	"mood-chat/errors"
)

const seqDigits = 20

// ConversationRepository persists conversation logs in BadgerDB.
//
// Message keys are formatted as "msg:{conversation}:{seq_padded}" so that:
//  1. A prefix scan per conversation returns messages in sequence order
//     (20-digit zero padding keeps lexicographic and numeric order aligned).
//  2. History paging is a plain seek to the first key after sinceSeq.
//
// The current sequence number of each conversation lives under
// "seq:{conversation}". Appends to the same conversation are serialized by
// a per-key mutex, which makes the read-increment-write of the counter
// atomic without blocking unrelated conversations.
type ConversationRepository struct {
	db  *badger.DB
	log *slog.Logger

	mu    sync.Mutex
	locks map[domain.ConversationKey]*sync.Mutex
}

func NewConversationRepository(db *badger.DB, log *slog.Logger) *ConversationRepository {
	return &ConversationRepository{
		db:    db,
		log:   log,
		locks: make(map[domain.ConversationKey]*sync.Mutex),
	}
}

type diskMessage struct {
	ID      string          `json:"id"`
	Seq     uint64          `json:"seq"`
	Sender  string          `json:"sender"`
	Payload json.RawMessage `json:"payload"`
	Lang    string          `json:"lang,omitempty"`
	At      int64           `json:"at"`
}

// Append assigns the next sequence number of the conversation, persists the
// message and returns the stored record. No two concurrent appends to the
// same conversation can observe the same number.
func (r *ConversationRepository) Append(ctx context.Context, key domain.ConversationKey,
	sender domain.UserID, p domain.Payload, lang string) (domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return domain.Message{}, err
	}

	lock := r.lockFor(key)
	lock.Lock()
	defer lock.Unlock()

	payload, err := domain.EncodePayload(p)
	if err != nil {
		return domain.Message{}, err
	}

	msg := domain.Message{
		ID:           uuid.New(),
		Conversation: key,
		Sender:       sender,
		Payload:      p,
		Lang:         lang,
		CreatedAt:    time.Now().UTC(),
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		seq, err := currentSeq(txn, key)
		if err != nil {
			return err
		}
		msg.Seq = seq + 1

		bytes, err := json.Marshal(diskMessage{
			ID:      msg.ID.String(),
			Seq:     msg.Seq,
			Sender:  string(msg.Sender),
			Payload: payload,
			Lang:    msg.Lang,
			At:      msg.CreatedAt.UnixNano(),
		})
		if err != nil {
			return err
		}

		if err := txn.Set(seqKey(key), []byte(strconv.FormatUint(msg.Seq, 10))); err != nil {
			return err
		}
		return txn.Set(messageKey(key, msg.Seq), bytes)
	})
	if err != nil {
		return domain.Message{}, fmt.Errorf("%w: %w", errors.ErrStoreUnavailable, err)
	}
	return msg, nil
}

// History returns messages with sequence > sinceSeq, ascending, up to limit.
// Feeding the last returned sequence back as sinceSeq pages through the
// whole log exactly once per message.
func (r *ConversationRepository) History(ctx context.Context, key domain.ConversationKey,
	sinceSeq uint64, limit int) ([]domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, nil
	}

	var raw [][]byte
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(fmt.Sprintf("msg:%s:", key))
		options := badger.DefaultIteratorOptions
		options.Prefix = prefix
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Seek(messageKey(key, sinceSeq+1)); it.ValidForPrefix(prefix); it.Next() {
			if len(raw) == limit {
				break
			}
			err := it.Item().Value(func(value []byte) error {
				raw = append(raw, append([]byte(nil), value...))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrStoreUnavailable, err)
	}

	messages := make([]domain.Message, 0, len(raw))
	for _, bytes := range raw {
		msg, err := toMessage(key, bytes)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// LastSeq reports the sequence number of the latest persisted message,
// zero when the conversation has no history yet.
func (r *ConversationRepository) LastSeq(key domain.ConversationKey) (uint64, error) {
	var seq uint64
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		seq, err = currentSeq(txn, key)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %w", errors.ErrStoreUnavailable, err)
	}
	return seq, nil
}

func (r *ConversationRepository) lockFor(key domain.ConversationKey) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[key] = lock
	}
	return lock
}

func currentSeq(txn *badger.Txn, key domain.ConversationKey) (uint64, error) {
	item, err := txn.Get(seqKey(key))
	if err == badger.ErrKeyNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var seq uint64
	err = item.Value(func(value []byte) error {
		seq, err = strconv.ParseUint(string(value), 10, 64)
		return err
	})
	return seq, err
}

func messageKey(key domain.ConversationKey, seq uint64) []byte {
	return []byte(fmt.Sprintf("msg:%s:%0*d", key, seqDigits, seq))
}

func seqKey(key domain.ConversationKey) []byte {
	return []byte(fmt.Sprintf("seq:%s", key))
}

func toMessage(key domain.ConversationKey, bytes []byte) (domain.Message, error) {
	var dm diskMessage
	if err := json.Unmarshal(bytes, &dm); err != nil {
		return domain.Message{}, err
	}
	parsedID, err := uuid.Parse(dm.ID)
	if err != nil {
		return domain.Message{}, err
	}
	payload, err := domain.DecodePayload(dm.Payload)
	if err != nil {
		return domain.Message{}, err
	}
	return domain.Message{
		ID:           parsedID,
		Conversation: key,
		Seq:          dm.Seq,
		Sender:       domain.UserID(dm.Sender),
		Payload:      payload,
		Lang:         dm.Lang,
		CreatedAt:    time.Unix(0, dm.At).UTC(),
	}, nil
}

// Bodies extracts the text bodies of a message slice, used by the viewer.
func Bodies(messages []domain.Message) []string {
	return lo.FilterMap(messages, func(m domain.Message, _ int) (string, bool) {
		text, ok := m.Payload.(domain.TextPayload)
		return text.Body, ok
	})
}
