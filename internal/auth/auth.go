// Package auth provides bearer token verification for the reports gateway.
// Tokens are validated locally (signature and expiry against a shared
// signing secret) plus a check against a periodically refreshed revocation
// set; no call to the auth service happens per request.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ErrUnauthenticated indicates a missing, malformed, invalid, expired or
// revoked bearer token.
var ErrUnauthenticated = errors.New("unauthenticated")

// Context keys for auth data
type contextKey string

const contextKeyClaims contextKey = "claims"

// Claims is the validated token payload the gateway cares about.
type Claims struct {
	Subject string
	JTI     string
	Expires int64
}

// Anonymous is the claims value for requests without a bearer token when
// authentication is optional.
var Anonymous = &Claims{Subject: "anonymous"}

// FromContext extracts the claims from a request context.
func FromContext(ctx context.Context) *Claims {
	if claims, ok := ctx.Value(contextKeyClaims).(*Claims); ok {
		return claims
	}
	return Anonymous
}

// WithClaims attaches claims to a context.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, contextKeyClaims, claims)
}

// Verifier validates bearer tokens against the configured secret, algorithm
// and revocation set.
type Verifier struct {
	secret  []byte
	alg     string
	revoked *Revocations
}

// NewVerifier creates a verifier. revoked may be nil when no auth service is
// configured; revocation checks are then skipped.
func NewVerifier(secret, alg string, revoked *Revocations) *Verifier {
	if alg == "" {
		alg = "HS256"
	}
	return &Verifier{secret: []byte(secret), alg: alg, revoked: revoked}
}

// Authenticate validates the Authorization header value and returns the
// token claims. The "bearer " prefix is matched case-insensitively; any
// failure wraps ErrUnauthenticated.
func (v *Verifier) Authenticate(header string) (*Claims, error) {
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return nil, fmt.Errorf("%w: missing bearer token", ErrUnauthenticated)
	}
	tokenString := strings.TrimSpace(header[len("bearer "):])

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{v.alg}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: invalid claims type", ErrUnauthenticated)
	}

	out := &Claims{
		Subject: getStringClaim(claims, "sub"),
		JTI:     getStringClaim(claims, "jti"),
	}
	if exp, ok := claims["exp"].(float64); ok {
		out.Expires = int64(exp)
	}

	if out.JTI != "" && v.revoked != nil && v.revoked.Contains(out.JTI) {
		return nil, fmt.Errorf("%w: token revoked", ErrUnauthenticated)
	}

	return out, nil
}

func getStringClaim(claims jwt.MapClaims, key string) string {
	if val, ok := claims[key].(string); ok {
		return val
	}
	return ""
}

// Middleware returns an HTTP middleware enforcing the auth gate. When
// requireAuth is false a request without a bearer token proceeds as
// anonymous, but a presented token is always fully validated. Failures are
// answered in the query-language convention: HTTP 200 with an errors array
// carrying the UNAUTHENTICATED code.
func Middleware(requireAuth bool, v *Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")

			if header == "" && !requireAuth {
				next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), Anonymous)))
				return
			}

			claims, err := v.Authenticate(header)
			if err != nil {
				writeUnauthenticated(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func writeUnauthenticated(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"data":null,"errors":[{"message":%q,"extensions":{"code":"UNAUTHENTICATED"}}]}`, err.Error())
}
