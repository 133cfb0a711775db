package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUnavailable indicates the shared counter backend is unreachable.
	ErrUnavailable = errors.New("shared store unavailable")
)

// State is the shared store's last-known connectivity state. It is a best-effort
// signal: a Ready store may still fail an individual operation, and a Connecting
// store is still attempted so recovery is picked up without a health-check loop.
type State int32

const (
	// StateConnecting means no operation has succeeded yet, or the last one failed
	// on a transient error. The shared path is still attempted.
	StateConnecting State = iota
	// StateReady means the last operation succeeded.
	StateReady
	// StateDown means the client is closed or was told the backend is gone.
	// The shared path is skipped entirely.
	StateDown
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateReady:
		return "ready"
	case StateDown:
		return "down"
	default:
		return "unknown"
	}
}

// SharedStore is the contract any shared counter backend must satisfy.
//
// Incr must be atomic with respect to concurrent callers incrementing the same key:
// two concurrent increments must never both observe the same pre-increment value.
// The TTL is set only on first creation of the key; if two callers race to create it,
// only the first TTL wins.
type SharedStore interface {
	// Incr increments the counter for key, creating it with the window TTL when
	// absent, and returns the post-increment count and the remaining TTL.
	Incr(ctx context.Context, key string, window time.Duration) (count int64, ttl time.Duration, err error)

	// State reports the last-known connectivity state.
	State() State
}
