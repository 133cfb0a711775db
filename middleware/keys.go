package middleware

import (
	"net"
	"net/http"
	"strings"

	throttle "github.com/RelayOne/throttle"
)

// UnknownClient is the sentinel key component used when no client address can be
// derived from a request.
const UnknownClient = "unknown"

// IdentityFunc extracts an authenticated identity from a request. The boolean reports
// whether an identity is present.
type IdentityFunc func(*http.Request) (string, bool)

// ClientIP returns the client address for a request: the first entry of the
// X-Forwarded-For chain, else X-Real-IP, else CF-Connecting-IP, else the remote
// address host, else UnknownClient.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	if ip := strings.TrimSpace(r.Header.Get("CF-Connecting-IP")); ip != "" {
		return ip
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if host != "" {
		return host
	}

	return UnknownClient
}

// KeyByIP derives an "ip:"-namespaced key from the client address.
func KeyByIP(r *http.Request) string {
	return "ip:" + ClientIP(r)
}

// KeyByUser prefers an authenticated identity over the client address. Identities are
// keyed under "user:" and addresses under "ip:" so the two spaces never collide.
func KeyByUser(identity IdentityFunc) KeyFunc {
	return func(r *http.Request) string {
		if identity != nil {
			if id, ok := identity(r); ok && id != "" {
				return "user:" + id
			}
		}
		return KeyByIP(r)
	}
}

// Tiered chooses between two distinct (key, policy) pairs by authentication presence:
// authenticated traffic gets its own ceiling under the "user:" namespace, anonymous
// traffic is limited under the "ip:" namespace.
type Tiered struct {
	Anonymous     throttle.Policy
	Authenticated throttle.Policy
	Identity      IdentityFunc
}

// Resolve returns the key and policy for a request.
func (t Tiered) Resolve(r *http.Request) (string, throttle.Policy) {
	if t.Identity != nil {
		if id, ok := t.Identity(r); ok && id != "" {
			return "user:" + id, t.Authenticated
		}
	}
	return KeyByIP(r), t.Anonymous
}
