package errors

import "fmt"

var (
	ErrWorkerPanic      = fmt.Errorf("worker panic")
	ErrStoreUnavailable = fmt.Errorf("conversation store unavailable")
	ErrUnknownPeer      = fmt.Errorf("peer identity unknown")
	ErrEmptyPayload     = fmt.Errorf("payload is empty")
	ErrPayloadTooLarge  = fmt.Errorf("payload exceeds size limit")
	ErrInvalidIdentity  = fmt.Errorf("malformed user identity")
	ErrSlowConsumer     = fmt.Errorf("connection too slow, delivery aborted")
	ErrSessionClosed    = fmt.Errorf("session already closed")
	ErrInvalidToken     = fmt.Errorf("identity token invalid")
	ErrEmptyWordlist    = fmt.Errorf("no censored words have been found")
)
