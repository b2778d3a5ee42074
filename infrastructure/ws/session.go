package ws

import (
	"context"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"mood-chat/contract"
	"mood-chat/domain"
	"mood-chat/domain/event"
)

const (
	writeWait     = 10 * time.Second
	pongWait      = 60 * time.Second
	pingPeriod    = (pongWait * 9) / 10
	maxFrameBytes = 64 * 1024
)

// Engine is the command surface a session drives. Satisfied by the runtime
// router.
type Engine interface {
	Attach(ctx context.Context, user domain.UserID, sink contract.EventSink) error
	Detach(user domain.UserID, sink contract.EventSink)
	Join(ctx context.Context, cmd domain.JoinCommand, reply contract.EventSink) error
	History(ctx context.Context, cmd domain.FetchHistoryCommand, reply contract.EventSink) error
	Send(ctx context.Context, cmd domain.SendMessageCommand) error
	Typing(ctx context.Context, cmd domain.TypingCommand) error
	Search(ctx context.Context, cmd domain.SearchCommand, reply contract.EventSink) error
}

// Session supervises one websocket connection: a read pump turning frames
// into engine commands and a write pump draining the connection's sink.
// Whatever pump dies first closes the connection, which ends the other one,
// and the session always detaches on the way out. A rejected command only
// answers the offending connection; it never ends the session.
type Session struct {
	user   domain.UserID
	conn   *websocket.Conn
	engine Engine
	sink   *Sink
	log    *slog.Logger
}

func NewSession(user domain.UserID, conn *websocket.Conn,
	engine Engine, sink *Sink, log *slog.Logger) *Session {
	return &Session{
		user:   user,
		conn:   conn,
		engine: engine,
		sink:   sink,
		log:    log.With("user", user),
	}
}

// Run blocks until the connection is gone. Detach is unconditional: every
// exit path of both pumps funnels through here.
func (s *Session) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := s.engine.Attach(ctx, s.user, s.sink); err != nil {
		s.log.Warn("Attach rejected", "error", err)
		_ = s.conn.Close()
		return
	}
	defer s.engine.Detach(s.user, s.sink)
	defer s.sink.Close()

	go s.writePump(ctx)
	s.readPump(ctx)
}

func (s *Session) readPump(ctx context.Context) {
	defer func() { _ = s.conn.Close() }()

	s.conn.SetReadLimit(maxFrameBytes)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("Connection dropped", "error", err)
			}
			return
		}

		cmd, err := DecodeCommand(s.user, data)
		if err != nil {
			s.reply(ctx, event.Problem{Reason: err.Error()})
			continue
		}
		s.dispatch(ctx, cmd)
	}
}

func (s *Session) dispatch(ctx context.Context, cmd domain.Command) {
	var err error
	switch cmd := cmd.(type) {
	case domain.JoinCommand:
		err = s.engine.Join(ctx, cmd, s.sink)
	case domain.FetchHistoryCommand:
		err = s.engine.History(ctx, cmd, s.sink)
	case domain.TypingCommand:
		err = s.engine.Typing(ctx, cmd)
	case domain.SearchCommand:
		err = s.engine.Search(ctx, cmd, s.sink)
	case domain.SendMessageCommand:
		// A rejected send is acknowledged with the client's token so the
		// UI can retry that exact attempt.
		if err := s.engine.Send(ctx, cmd); err != nil {
			s.reply(ctx, event.DeliveryFailed{
				Conversation: cmd.Key(), Token: cmd.Token, Reason: err.Error()})
		}
		return
	}
	if err != nil {
		s.reply(ctx, event.Problem{Reason: err.Error()})
	}
}

func (s *Session) reply(ctx context.Context, e event.Event) {
	replyCtx, cancel := context.WithTimeout(ctx, writeWait)
	defer cancel()
	if err := s.sink.Consume(replyCtx, e); err != nil {
		s.log.Debug("Reply dropped", "event", e.Name(), "error", err)
	}
}

func (s *Session) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case <-s.sink.Done():
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = s.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "too slow"))
			return

		case data := <-s.sink.out:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
