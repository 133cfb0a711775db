package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// IdentityFromBearer builds an IdentityFunc that derives the identity from the subject
// claim of a verified bearer token. keyFunc resolves the verification key; methods
// restricts the accepted signing algorithms (for example, []string{"HS256"}).
//
// Verification failures and empty subjects yield no identity, so the request falls
// back to its anonymous key and limit. Token issuance and session semantics stay
// outside this package.
func IdentityFromBearer(keyFunc jwt.Keyfunc, methods []string) IdentityFunc {
	parser := jwt.NewParser(jwt.WithValidMethods(methods))

	return func(r *http.Request) (string, bool) {
		raw, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			return "", false
		}

		claims := &jwt.RegisteredClaims{}
		token, err := parser.ParseWithClaims(raw, claims, keyFunc)
		if err != nil || !token.Valid || claims.Subject == "" {
			return "", false
		}

		return claims.Subject, true
	}
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}
