//go:build integration
// +build integration

package test

import (
	"testing"

	throttle "github.com/RelayOne/throttle"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func newIntegrationLimiter(t *testing.T) (*throttle.Limiter, *miniredis.Miniredis, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := throttle.DefaultConfig()
	cfg.Sweeper.Enabled = false

	l, err := throttle.New().WithConfig(cfg).WithRedis(rdb).Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	return l, mr, func() {
		l.Close()
		_ = rdb.Close()
		mr.Close()
	}
}

func uniqueKey(prefix string) string {
	return prefix + ":" + uuid.NewString()
}
