// Package domain contains core concepts of the messaging engine.
// Identities, conversations, messages and inbound commands live here.
// No runtime, network, or storage logic should be added to this package.
package domain

import (
	"unicode"
	"unicode/utf8"

	"mood-chat/errors"
)

// UserID is the opaque stable identifier issued by the authentication
// subsystem. It is immutable and never reused once issued.
type UserID string

const maxIdentityLength = 64

// Validate checks that an identity can safely be embedded in conversation
// keys and storage keys. The separator rune is reserved for ConversationKey.
func (u UserID) Validate() error {
	if u == "" {
		return errors.ErrInvalidIdentity
	}
	if utf8.RuneCountInString(string(u)) > maxIdentityLength {
		return errors.ErrInvalidIdentity
	}
	for _, r := range u {
		if unicode.IsControl(r) || unicode.IsSpace(r) || r == keySeparator {
			return errors.ErrInvalidIdentity
		}
	}
	return nil
}
