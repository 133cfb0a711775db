package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	throttle "github.com/RelayOne/throttle"
)

func newLimiter(t *testing.T) *throttle.Limiter {
	t.Helper()

	cfg := throttle.DefaultConfig()
	cfg.Sweeper.Enabled = false

	l, err := throttle.New().WithConfig(cfg).Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	t.Cleanup(l.Close)
	return l
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doRequest(h http.Handler, mutate func(*http.Request)) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "1.2.3.4:5678"
	if mutate != nil {
		mutate(r)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestRateLimitAllowsWithinPolicy(t *testing.T) {
	l := newLimiter(t)
	h := RateLimit(l, throttle.Policy{Max: 3, Window: time.Minute})(okHandler())

	for i := 1; i <= 3; i++ {
		w := doRequest(h, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
		if got := w.Header().Get("X-RateLimit-Limit"); got != "3" {
			t.Fatalf("request %d: expected limit header 3, got %q", i, got)
		}
	}
}

func TestRateLimitDeniesOverPolicy(t *testing.T) {
	l := newLimiter(t)
	h := RateLimit(l, throttle.Policy{Max: 2, Window: time.Minute, Message: "slow down"})(okHandler())

	doRequest(h, nil)
	doRequest(h, nil)
	w := doRequest(h, nil)

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if got := w.Header().Get("X-RateLimit-Remaining"); got != "0" {
		t.Fatalf("expected remaining 0, got %q", got)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header on denial")
	}

	body, _ := io.ReadAll(w.Result().Body)
	if !strings.Contains(string(body), "slow down") {
		t.Fatalf("expected policy message in body, got %q", string(body))
	}
}

func TestRateLimitSeparatesClients(t *testing.T) {
	l := newLimiter(t)
	h := RateLimit(l, throttle.Policy{Max: 1, Window: time.Minute})(okHandler())

	doRequest(h, nil)
	w := doRequest(h, func(r *http.Request) { r.RemoteAddr = "5.6.7.8:1" })

	if w.Code != http.StatusOK {
		t.Fatalf("expected second client to get its own window, got %d", w.Code)
	}
}

func TestRateLimitSkipBypassesCounters(t *testing.T) {
	l := newLimiter(t)
	skipHealth := func(r *http.Request) bool { return r.URL.Path == "/health" }
	h := RateLimit(l, throttle.Policy{Max: 1, Window: time.Minute}, WithSkip(skipHealth))(okHandler())

	for i := 0; i < 5; i++ {
		r := httptest.NewRequest(http.MethodGet, "/health", nil)
		r.RemoteAddr = "1.2.3.4:5678"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		if w.Code != http.StatusOK {
			t.Fatalf("health request %d: expected 200, got %d", i+1, w.Code)
		}
	}

	snap := l.MetricsSnapshot()
	if got := snap.Counters[throttle.MetricSkip]; got != 5 {
		t.Fatalf("expected 5 skips recorded, got %d", got)
	}
	if got := snap.Counters[throttle.MetricCheckAllowed]; got != 0 {
		t.Fatalf("skipped requests must not be evaluated, got %d allowed", got)
	}

	// A non-health request still consumes the real window.
	w := doRequest(h, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected first real request allowed, got %d", w.Code)
	}
	w = doRequest(h, nil)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second real request denied, got %d", w.Code)
	}
}

func TestRateLimitCustomKeyFunc(t *testing.T) {
	l := newLimiter(t)
	byPath := func(r *http.Request) string { return "path:" + r.URL.Path }
	h := RateLimit(l, throttle.Policy{Max: 1, Window: time.Minute}, WithKeyFunc(byPath))(okHandler())

	doRequest(h, nil)
	w := doRequest(h, func(r *http.Request) { r.RemoteAddr = "5.6.7.8:1" })

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected shared key across clients to deny, got %d", w.Code)
	}
}

func TestRateLimitTieredPolicies(t *testing.T) {
	l := newLimiter(t)
	tier := Tiered{
		Anonymous:     throttle.Policy{Max: 1, Window: time.Minute},
		Authenticated: throttle.Policy{Max: 3, Window: time.Minute},
		Identity: func(r *http.Request) (string, bool) {
			if r.Header.Get("Authorization") != "" {
				return "u1", true
			}
			return "", false
		},
	}
	h := RateLimitTiered(l, tier)(okHandler())

	withAuth := func(r *http.Request) { r.Header.Set("Authorization", "Bearer x") }

	// The anonymous ceiling does not drain the authenticated one, and vice versa.
	doRequest(h, nil)
	if w := doRequest(h, nil); w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected anonymous denial after 1 request, got %d", w.Code)
	}

	for i := 1; i <= 3; i++ {
		if w := doRequest(h, withAuth); w.Code != http.StatusOK {
			t.Fatalf("authenticated request %d: expected 200, got %d", i, w.Code)
		}
	}
	if w := doRequest(h, withAuth); w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected authenticated denial after 3 requests, got %d", w.Code)
	}
}

func TestRateLimitNilLimiterAllows(t *testing.T) {
	h := RateLimit(nil, throttle.Policy{Max: 1, Window: time.Minute})(okHandler())

	for i := 0; i < 10; i++ {
		if w := doRequest(h, nil); w.Code != http.StatusOK {
			t.Fatalf("nil limiter must allow, got %d", w.Code)
		}
	}
}
