package ws

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"mood-chat/domain"
)

// IdentityVerifier turns a bearer token into the authenticated identity of
// the connection.
type IdentityVerifier interface {
	Verify(token string) (domain.UserID, error)
}

// Handler upgrades HTTP requests to websocket sessions. Sessions run on the
// handler's base context so canceling it during shutdown closes every live
// connection.
type Handler struct {
	base      context.Context
	engine    Engine
	verifier  IdentityVerifier
	log       *slog.Logger
	sinkDepth int
	upgrader  websocket.Upgrader
}

func NewHandler(base context.Context, engine Engine,
	verifier IdentityVerifier, log *slog.Logger, sinkDepth int) *Handler {
	return &Handler{
		base:      base,
		engine:    engine,
		verifier:  verifier,
		log:       log,
		sinkDepth: sinkDepth,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser clients are served from arbitrary origins in dev.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, err := h.verifier.Verify(bearerToken(r))
	if err != nil {
		h.log.Warn("Rejected connection", "remote", r.RemoteAddr, "error", err)
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("Upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	h.log.Info("Session opened", "user", user, "remote", r.RemoteAddr)
	session := NewSession(user, conn, h.engine, NewSink(h.sinkDepth), h.log)
	session.Run(h.base)
	h.log.Info("Session closed", "user", user)
}

// bearerToken reads the identity token from the Authorization header, or
// from the "token" query parameter for browser websocket clients that
// cannot set headers.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return token
	}
	return r.URL.Query().Get("token")
}
