package auth

import (
	"context"

	"mood-chat/contract"
	"mood-chat/domain"
)

var (
	_ contract.IPeerDirectory = OpenDirectory{}
	_ contract.IPeerDirectory = (*StaticDirectory)(nil)
)

// OpenDirectory accepts any well-formed identity as a valid peer. Used when
// accounts live entirely outside this service.
type OpenDirectory struct{}

func (OpenDirectory) Known(_ context.Context, user domain.UserID) bool {
	return user.Validate() == nil
}

// StaticDirectory restricts peers to a fixed allow list, typically loaded
// from configuration.
type StaticDirectory struct {
	users map[domain.UserID]struct{}
}

func NewStaticDirectory(users ...domain.UserID) *StaticDirectory {
	d := &StaticDirectory{users: make(map[domain.UserID]struct{}, len(users))}
	for _, user := range users {
		d.users[user] = struct{}{}
	}
	return d
}

func (d *StaticDirectory) Known(_ context.Context, user domain.UserID) bool {
	_, ok := d.users[user]
	return ok
}
