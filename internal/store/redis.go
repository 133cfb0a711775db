package store

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// incrWindow performs the whole increment cycle atomically. PEXPIRE runs only when the
// key was just created, so the reset boundary is a fixed epoch (no refresh on later
// hits). PTTL is -1 for a key without expiry; callers treat that as a fresh window.
var incrWindow = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {count, ttl}
`)

// RedisStore is a SharedStore backed by a Redis counter per key.
type RedisStore struct {
	client    redis.UniversalClient
	prefix    string
	opTimeout time.Duration
	state     atomic.Int32
}

// NewRedisStore creates a Redis-backed shared store. The constructor pings once with
// the operation timeout to seed the readiness state; a failed ping leaves the store
// in StateConnecting, not StateDown, so the first request still tries the shared path.
func NewRedisStore(client redis.UniversalClient, prefix string, opTimeout time.Duration) *RedisStore {
	s := &RedisStore{
		client:    client,
		prefix:    prefix,
		opTimeout: opTimeout,
	}
	s.state.Store(int32(StateConnecting))

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err == nil {
		s.state.Store(int32(StateReady))
	}

	return s
}

// State reports the last-known connectivity state.
func (s *RedisStore) State() State {
	return State(s.state.Load())
}

// Incr implements SharedStore. Each call applies its own I/O timeout so a stalled
// backend degrades to local evaluation instead of blocking the request.
func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	vals, err := incrWindow.Run(ctx, s.client, []string{s.prefix + key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		s.fail(err)
		return 0, 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(vals) != 2 {
		s.fail(nil)
		return 0, 0, fmt.Errorf("%w: unexpected script reply", ErrUnavailable)
	}

	s.state.Store(int32(StateReady))

	// PTTL reports -1 (no expiry) or -2 (missing key) as negative values.
	ttl := time.Duration(vals[1]) * time.Millisecond
	if ttl < 0 {
		ttl = 0
	}

	return vals[0], ttl, nil
}

func (s *RedisStore) fail(err error) {
	if errors.Is(err, redis.ErrClosed) {
		s.state.Store(int32(StateDown))
		return
	}
	s.state.Store(int32(StateConnecting))
}
