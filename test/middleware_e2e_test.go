//go:build integration
// +build integration

package test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	throttle "github.com/RelayOne/throttle"
	"github.com/RelayOne/throttle/middleware"
	"github.com/golang-jwt/jwt/v5"
)

func TestMiddlewareEndToEndTieredLimits(t *testing.T) {
	l, _, cleanup := newIntegrationLimiter(t)
	defer cleanup()

	secret := []byte("integration-secret-0123456789ab")
	keyFunc := func(token *jwt.Token) (interface{}, error) { return secret, nil }

	tier := middleware.Tiered{
		Anonymous:     throttle.Policy{Max: 2, Window: time.Minute, Message: "anonymous limit"},
		Authenticated: throttle.Policy{Max: 5, Window: time.Minute, Message: "authenticated limit"},
		Identity:      middleware.IdentityFromBearer(keyFunc, []string{"HS256"}),
	}

	handler := middleware.RateLimitTiered(l, tier,
		middleware.WithSkip(func(r *http.Request) bool { return r.URL.Path == "/health" }),
	)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	srv := httptest.NewServer(handler)
	defer srv.Close()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString(secret)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	get := func(path, auth string) int {
		req, err := http.NewRequest(http.MethodGet, srv.URL+path, nil)
		if err != nil {
			t.Fatalf("new request failed: %v", err)
		}
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		return resp.StatusCode
	}

	// Anonymous traffic drains its own ceiling.
	for i := 1; i <= 2; i++ {
		if code := get("/", ""); code != http.StatusOK {
			t.Fatalf("anonymous request %d: expected 200, got %d", i, code)
		}
	}
	if code := get("/", ""); code != http.StatusTooManyRequests {
		t.Fatalf("expected anonymous denial, got %d", code)
	}

	// Authenticated traffic is keyed and limited separately.
	for i := 1; i <= 5; i++ {
		if code := get("/", "Bearer "+signed); code != http.StatusOK {
			t.Fatalf("authenticated request %d: expected 200, got %d", i, code)
		}
	}
	if code := get("/", "Bearer "+signed); code != http.StatusTooManyRequests {
		t.Fatalf("expected authenticated denial, got %d", code)
	}

	// Health checks bypass both ceilings.
	for i := 0; i < 10; i++ {
		if code := get("/health", ""); code != http.StatusOK {
			t.Fatalf("health check: expected 200, got %d", code)
		}
	}
}
