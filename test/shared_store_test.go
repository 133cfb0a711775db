//go:build integration
// +build integration

package test

import (
	"context"
	"testing"
	"time"

	throttle "github.com/RelayOne/throttle"
)

func TestSharedStoreSequentialCounting(t *testing.T) {
	l, _, cleanup := newIntegrationLimiter(t)
	defer cleanup()

	ctx := context.Background()
	key := uniqueKey("ip")

	for i := 1; i <= 6; i++ {
		dec := l.Check(ctx, key, 5, time.Minute)
		if dec.Count != int64(i) {
			t.Fatalf("call %d: expected count %d, got %d", i, i, dec.Count)
		}
		if want := i <= 5; dec.Allowed != want {
			t.Fatalf("call %d: expected allowed=%v, got %v", i, want, dec.Allowed)
		}
	}
}

func TestSharedStoreWindowExpiry(t *testing.T) {
	l, mr, cleanup := newIntegrationLimiter(t)
	defer cleanup()

	ctx := context.Background()
	key := uniqueKey("ip")

	for i := 0; i < 5; i++ {
		l.Check(ctx, key, 5, time.Minute)
	}
	if dec := l.Check(ctx, key, 5, time.Minute); dec.Allowed {
		t.Fatal("expected denial at the ceiling")
	}

	mr.FastForward(61 * time.Second)

	dec := l.Check(ctx, key, 5, time.Minute)
	if !dec.Allowed || dec.Count != 1 {
		t.Fatalf("expected fresh window after expiry, got %+v", dec)
	}
}

func TestSharedStoreTTLFixedAcrossWindow(t *testing.T) {
	l, mr, cleanup := newIntegrationLimiter(t)
	defer cleanup()

	ctx := context.Background()
	key := uniqueKey("ip")

	first := l.Check(ctx, key, 100, time.Minute)
	mr.FastForward(30 * time.Second)
	second := l.Check(ctx, key, 100, time.Minute)

	if second.ResetSeconds >= first.ResetSeconds {
		t.Fatalf("expected reset to shrink across the window, got %d then %d",
			first.ResetSeconds, second.ResetSeconds)
	}
}

func TestSharedStoreOutageFallsBackLocally(t *testing.T) {
	l, mr, cleanup := newIntegrationLimiter(t)
	defer cleanup()

	ctx := context.Background()
	key := uniqueKey("ip")

	for i := 1; i <= 3; i++ {
		if dec := l.Check(ctx, key, 10, time.Minute); dec.Count != int64(i) {
			t.Fatalf("shared call %d: expected count %d, got %d", i, i, dec.Count)
		}
	}

	mr.Close()

	dec := l.Check(ctx, key, 10, time.Minute)
	if !dec.Allowed {
		t.Fatalf("expected request served during outage, got %+v", dec)
	}
	if dec.Count != 1 {
		t.Fatalf("expected local sequence to restart at 1, got %d", dec.Count)
	}

	// The local window still enforces the ceiling on its own.
	for i := 2; i <= 10; i++ {
		l.Check(ctx, key, 10, time.Minute)
	}
	if dec := l.Check(ctx, key, 10, time.Minute); dec.Allowed {
		t.Fatal("expected local window to deny past the ceiling")
	}

	snap := l.MetricsSnapshot()
	if snap.Counters[throttle.MetricLocalFallback] == 0 {
		t.Fatal("expected fallback metric recorded during outage")
	}
}

func TestSharedStoreKeysAreNamespaced(t *testing.T) {
	l, mr, cleanup := newIntegrationLimiter(t)
	defer cleanup()

	ctx := context.Background()
	l.Check(ctx, "ip:1.2.3.4", 5, time.Minute)

	if !mr.Exists("rl:ip:1.2.3.4") {
		t.Fatalf("expected prefixed counter key in store, keys: %v", mr.Keys())
	}
}

func TestSharedStoreIndependentKeys(t *testing.T) {
	l, _, cleanup := newIntegrationLimiter(t)
	defer cleanup()

	ctx := context.Background()
	a, b := uniqueKey("ip"), uniqueKey("user")

	for i := 0; i < 5; i++ {
		l.Check(ctx, a, 5, time.Minute)
	}
	if dec := l.Check(ctx, a, 5, time.Minute); dec.Allowed {
		t.Fatal("expected key a denied")
	}
	if dec := l.Check(ctx, b, 5, time.Minute); !dec.Allowed || dec.Count != 1 {
		t.Fatalf("expected key b untouched, got %+v", dec)
	}
}
