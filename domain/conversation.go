package domain

import "strings"

// keySeparator joins the two participant identities inside a ConversationKey.
// Identities containing this rune are rejected by UserID.Validate.
const keySeparator = '|'

// ConversationKey identifies the private conversation between exactly two
// user identities. The pair is unordered: {A,B} and {B,A} resolve to the
// same key. A conversation exists implicitly as soon as either party sends
// to the other; it is never created or deleted explicitly.
type ConversationKey string

// NewConversationKey canonicalizes the unordered pair by sorting the two
// identities lexicographically before joining them.
func NewConversationKey(a, b UserID) ConversationKey {
	if b < a {
		a, b = b, a
	}
	return ConversationKey(string(a) + string(keySeparator) + string(b))
}

// Participants returns the two identities encoded in the key.
func (k ConversationKey) Participants() (UserID, UserID) {
	parts := strings.SplitN(string(k), string(keySeparator), 2)
	if len(parts) != 2 {
		return "", ""
	}
	return UserID(parts[0]), UserID(parts[1])
}

// PeerOf returns the other participant of the conversation.
// For a self conversation both sides are the same identity.
func (k ConversationKey) PeerOf(user UserID) UserID {
	a, b := k.Participants()
	if a == user {
		return b
	}
	return a
}

// Has reports whether the identity takes part in the conversation.
func (k ConversationKey) Has(user UserID) bool {
	a, b := k.Participants()
	return a == user || b == user
}
