package middleware

import (
	"net/http"
	"strconv"

	throttle "github.com/RelayOne/throttle"
)

// KeyFunc derives the rate-limit key for a request.
type KeyFunc func(*http.Request) string

// SkipFunc reports whether a request bypasses rate limiting entirely.
type SkipFunc func(*http.Request) bool

// Option configures a middleware instance.
type Option func(*options)

type options struct {
	key  KeyFunc
	skip SkipFunc
}

// WithKeyFunc overrides the default IP-based key derivation.
func WithKeyFunc(fn KeyFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.key = fn
		}
	}
}

// WithSkip installs a predicate that bypasses evaluation for matching requests.
// Skipped requests touch no counter and compute no decision.
func WithSkip(fn SkipFunc) Option {
	return func(o *options) {
		o.skip = fn
	}
}

// RateLimit wraps a handler with fixed-window rate limiting under the given policy.
func RateLimit(limiter *throttle.Limiter, policy throttle.Policy, opts ...Option) func(http.Handler) http.Handler {
	o := options{key: KeyByIP}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if o.skip != nil && o.skip(r) {
				limiter.RecordSkip()
				next.ServeHTTP(w, r)
				return
			}

			dec := limiter.CheckPolicy(r.Context(), o.key(r), policy)
			writeDecision(w, r, next, dec)
		})
	}
}

// RateLimitTiered wraps a handler with a tiered policy: the key and the limit are both
// chosen per request by authentication presence.
func RateLimitTiered(limiter *throttle.Limiter, tier Tiered, opts ...Option) func(http.Handler) http.Handler {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if o.skip != nil && o.skip(r) {
				limiter.RecordSkip()
				next.ServeHTTP(w, r)
				return
			}

			key, policy := tier.Resolve(r)
			dec := limiter.CheckPolicy(r.Context(), key, policy)
			writeDecision(w, r, next, dec)
		})
	}
}

func writeDecision(w http.ResponseWriter, r *http.Request, next http.Handler, dec throttle.Decision) {
	h := w.Header()
	h.Set("X-RateLimit-Limit", strconv.FormatInt(dec.Limit, 10))
	h.Set("X-RateLimit-Remaining", strconv.FormatInt(dec.Remaining, 10))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(dec.ResetSeconds, 10))

	if !dec.Allowed {
		h.Set("Retry-After", strconv.FormatInt(dec.ResetSeconds, 10))
		message := dec.Message
		if message == "" {
			message = "too many requests"
		}
		http.Error(w, message, http.StatusTooManyRequests)
		return
	}

	next.ServeHTTP(w, r)
}
