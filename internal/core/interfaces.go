package core

import "errors"

// Frame is a marshaled outbound payload.
type Frame []byte

type SessionID string

var ErrBackpressure = errors.New("backpressure")

// SignalConnection abstracts the system messaging transport.
// Owned by the adapter; the adapter must Close() it. Identity and room
// membership are registry concerns, never connection fields.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}
