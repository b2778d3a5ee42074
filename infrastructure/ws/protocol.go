// Package ws is the websocket transport: one session per connection,
// JSON frames in both directions, identity taken from the connection
// and never from the client frames.
package ws

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"mood-chat/domain"
	"mood-chat/domain/event"
	"mood-chat/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// commandFrame is the single inbound frame shape; Type selects the command
// and the other fields are read per type. The sender field deliberately
// does not exist on the wire.
type commandFrame struct {
	Type     string          `json:"type" validate:"required,oneof=join send typing history search"`
	Peer     string          `json:"peer" validate:"required,max=64"`
	Token    string          `json:"token,omitempty" validate:"omitempty,uuid"`
	Payload  json.RawMessage `json:"payload,omitempty"`
	Typing   bool            `json:"typing,omitempty"`
	SinceSeq uint64          `json:"since_seq,omitempty"`
	Limit    int             `json:"limit,omitempty" validate:"gte=0,lte=500"`
	Query    string          `json:"query,omitempty" validate:"max=256"`
}

// DecodeCommand parses and validates one inbound frame into a command bound
// to the connection's authenticated identity.
func DecodeCommand(from domain.UserID, data []byte) (domain.Command, error) {
	var frame commandFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		return nil, fmt.Errorf("malformed frame: %w", err)
	}
	if err := validate.Struct(frame); err != nil {
		return nil, fmt.Errorf("invalid frame: %w", err)
	}

	peer := domain.UserID(frame.Peer)
	switch frame.Type {
	case "join":
		return domain.JoinCommand{From: from, Peer: peer, SinceSeq: frame.SinceSeq}, nil

	case "send":
		token := uuid.New()
		if frame.Token != "" {
			parsed, err := uuid.Parse(frame.Token)
			if err != nil {
				return nil, fmt.Errorf("invalid frame: %w", err)
			}
			token = parsed
		}
		if len(frame.Payload) == 0 {
			return nil, errors.ErrEmptyPayload
		}
		payload, err := domain.DecodePayload(frame.Payload)
		if err != nil {
			return nil, fmt.Errorf("invalid payload: %w", err)
		}
		return domain.SendMessageCommand{
			Token:     token,
			From:      from,
			Peer:      peer,
			Payload:   payload,
			CreatedAt: time.Now().UTC(),
		}, nil

	case "typing":
		return domain.TypingCommand{From: from, Peer: peer, Typing: frame.Typing}, nil

	case "history":
		return domain.FetchHistoryCommand{
			From: from, Peer: peer, SinceSeq: frame.SinceSeq, Limit: frame.Limit}, nil

	case "search":
		if frame.Query == "" {
			return nil, fmt.Errorf("invalid frame: empty query")
		}
		return domain.SearchCommand{
			From: from, Peer: peer, Query: frame.Query, Limit: frame.Limit}, nil
	}
	return nil, fmt.Errorf("invalid frame: unknown type %q", frame.Type)
}

type wireMessage struct {
	ID           string          `json:"id"`
	Conversation string          `json:"conversation"`
	Seq          uint64          `json:"seq"`
	Sender       string          `json:"sender"`
	Payload      json.RawMessage `json:"payload"`
	Lang         string          `json:"lang,omitempty"`
	At           time.Time       `json:"at"`
}

// eventFrame is the single outbound frame shape; only the fields of the
// event named by Type are populated.
type eventFrame struct {
	Type         string        `json:"type"`
	Message      *wireMessage  `json:"message,omitempty"`
	Messages     []wireMessage `json:"messages,omitempty"`
	Conversation string        `json:"conversation,omitempty"`
	Token        string        `json:"token,omitempty"`
	Reason       string        `json:"reason,omitempty"`
	NextSeq      uint64        `json:"next_seq,omitempty"`
	User         string        `json:"user,omitempty"`
	Peer         string        `json:"peer,omitempty"`
	Online       *bool         `json:"online,omitempty"`
	Typing       *bool         `json:"typing,omitempty"`
	Users        []string      `json:"users,omitempty"`
	Query        string        `json:"query,omitempty"`
}

// EncodeEvent serializes one outbound event into its wire frame.
func EncodeEvent(e event.Event) ([]byte, error) {
	frame := eventFrame{Type: e.Name()}

	switch v := e.(type) {
	case event.MessageDelivered:
		wire, err := toWire(v.Message)
		if err != nil {
			return nil, err
		}
		frame.Message = &wire

	case event.DeliveryFailed:
		frame.Conversation = string(v.Conversation)
		frame.Token = v.Token.String()
		frame.Reason = v.Reason

	case event.HistoryPage:
		frame.Conversation = string(v.Conversation)
		frame.NextSeq = v.NextSeq
		for _, msg := range v.Messages {
			wire, err := toWire(msg)
			if err != nil {
				return nil, err
			}
			frame.Messages = append(frame.Messages, wire)
		}

	case event.PresenceChanged:
		frame.User = string(v.User)
		frame.Online = &v.Online

	case event.TypingChanged:
		frame.User = string(v.User)
		frame.Peer = string(v.Peer)
		frame.Typing = &v.Typing

	case event.Roster:
		for _, user := range v.Users {
			frame.Users = append(frame.Users, string(user))
		}

	case event.SearchResults:
		frame.Conversation = string(v.Conversation)
		frame.Query = v.Query
		for _, msg := range v.Matches {
			wire, err := toWire(msg)
			if err != nil {
				return nil, err
			}
			frame.Messages = append(frame.Messages, wire)
		}

	case event.Problem:
		frame.Reason = v.Reason

	default:
		return nil, fmt.Errorf("unsupported event %q", e.Name())
	}
	return json.Marshal(frame)
}

func toWire(msg domain.Message) (wireMessage, error) {
	payload, err := domain.EncodePayload(msg.Payload)
	if err != nil {
		return wireMessage{}, err
	}
	return wireMessage{
		ID:           msg.ID.String(),
		Conversation: string(msg.Conversation),
		Seq:          msg.Seq,
		Sender:       string(msg.Sender),
		Payload:      payload,
		Lang:         msg.Lang,
		At:           msg.CreatedAt,
	}, nil
}
