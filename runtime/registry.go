// Package runtime handles presence tracking, message routing and fan-out.
// It orchestrates the system without containing domain rules.
package runtime

import (
	"sync"
	"time"

	"mood-chat/contract"
	"mood-chat/domain"
)

type presenceEntry struct {
	sinks  map[contract.EventSink]struct{}
	typing map[domain.UserID]time.Time // peer -> expiry
}

// Registry is the in-memory presence registry: user identity -> set of live
// connection sinks, plus per-peer typing state with expiry.
//
// A user has an entry iff at least one connection is attached. Mutations of
// one user's entry happen under the registry lock; reads used for fan-out
// return snapshots and may be momentarily stale for other users, which is
// acceptable because presence broadcast is best-effort.
type Registry struct {
	mu    sync.RWMutex
	users map[domain.UserID]*presenceEntry
}

func NewRegistry() *Registry {
	return &Registry{users: make(map[domain.UserID]*presenceEntry)}
}

// Attach adds a connection sink to the user's set. The return value signals
// that the user transitioned online with this connection, so the caller can
// broadcast presence exactly once.
func (r *Registry) Attach(user domain.UserID, sink contract.EventSink) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.users[user]
	if !ok {
		entry = &presenceEntry{
			sinks:  make(map[contract.EventSink]struct{}),
			typing: make(map[domain.UserID]time.Time),
		}
		r.users[user] = entry
	}
	entry.sinks[sink] = struct{}{}
	return !ok
}

// Detach removes the sink. When the set becomes empty the entry is removed,
// any typing state the user held is dropped, and the offline transition is
// signaled.
func (r *Registry) Detach(user domain.UserID, sink contract.EventSink) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.users[user]
	if !ok {
		return false
	}
	delete(entry.sinks, sink)
	if len(entry.sinks) > 0 {
		return false
	}
	delete(r.users, user)
	return true
}

// SinksFor returns a snapshot of the user's live sinks for fan-out.
// Nil when the user is offline; fan-out to an offline peer is skipped.
func (r *Registry) SinksFor(user domain.UserID) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.users[user]
	if !ok {
		return nil
	}
	sinks := make([]contract.EventSink, 0, len(entry.sinks))
	for sink := range entry.sinks {
		sinks = append(sinks, sink)
	}
	return sinks
}

func (r *Registry) IsOnline(user domain.UserID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.users[user]
	return ok
}

// Online returns the identities currently holding at least one connection.
func (r *Registry) Online() []domain.UserID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]domain.UserID, 0, len(r.users))
	for user := range r.users {
		users = append(users, user)
	}
	return users
}

// MarkTyping records that user is typing towards peer until now+ttl.
// Refreshing before expiry extends the state; a crashed client simply
// stops refreshing and the state decays on its own.
func (r *Registry) MarkTyping(user, peer domain.UserID, ttl time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.users[user]
	if !ok {
		return
	}
	entry.typing[peer] = time.Now().Add(ttl)
}

func (r *Registry) ClearTyping(user, peer domain.UserID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.users[user]; ok {
		delete(entry.typing, peer)
	}
}

// IsTyping treats an expired mark as already cleared.
func (r *Registry) IsTyping(user, peer domain.UserID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.users[user]
	if !ok {
		return false
	}
	expiry, ok := entry.typing[peer]
	return ok && time.Now().Before(expiry)
}

// ExpireTyping removes every typing mark whose expiry passed and returns
// the affected (user, peer) pairs so the caller can notify the peers.
func (r *Registry) ExpireTyping(now time.Time) []contract.TypingState {
	r.mu.Lock()
	defer r.mu.Unlock()

	var expired []contract.TypingState
	for user, entry := range r.users {
		for peer, expiry := range entry.typing {
			if now.Before(expiry) {
				continue
			}
			delete(entry.typing, peer)
			expired = append(expired, contract.TypingState{User: user, Peer: peer})
		}
	}
	return expired
}
