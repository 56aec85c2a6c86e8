package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub": "user-1",
		"jti": "token-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
}

func TestAuthenticate_ValidToken(t *testing.T) {
	v := NewVerifier(testSecret, "HS256", nil)

	claims, err := v.Authenticate("Bearer " + signToken(t, validClaims()))
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "token-1", claims.JTI)
	assert.Greater(t, claims.Expires, time.Now().Unix())
}

func TestAuthenticate_CaseInsensitiveBearerPrefix(t *testing.T) {
	v := NewVerifier(testSecret, "HS256", nil)

	_, err := v.Authenticate("bearer " + signToken(t, validClaims()))
	assert.NoError(t, err)
}

func TestAuthenticate_MissingOrMalformedHeader(t *testing.T) {
	v := NewVerifier(testSecret, "HS256", nil)

	for _, header := range []string{"", "Basic abc", "Bearer", "token-without-scheme"} {
		_, err := v.Authenticate(header)
		assert.ErrorIs(t, err, ErrUnauthenticated, "header %q", header)
	}
}

func TestAuthenticate_WrongSignature(t *testing.T) {
	v := NewVerifier("other-secret", "HS256", nil)

	_, err := v.Authenticate("Bearer " + signToken(t, validClaims()))
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	v := NewVerifier(testSecret, "HS256", nil)
	claims := validClaims()
	claims["exp"] = time.Now().Add(-time.Minute).Unix()

	_, err := v.Authenticate("Bearer " + signToken(t, claims))
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthenticate_RevokedJTIRejectedDespiteValidSignature(t *testing.T) {
	revoked := NewRevocations("http://auth", time.Minute, nil)
	revoked.snapshot.Store(map[string]struct{}{"token-1": {}})
	v := NewVerifier(testSecret, "HS256", revoked)

	_, err := v.Authenticate("Bearer " + signToken(t, validClaims()))
	require.ErrorIs(t, err, ErrUnauthenticated)
	assert.Contains(t, err.Error(), "revoked")
}

func TestMiddleware_OptionalAuthAllowsAnonymous(t *testing.T) {
	v := NewVerifier(testSecret, "HS256", nil)
	var got *Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	rec := httptest.NewRecorder()
	Middleware(false, v)(next).ServeHTTP(rec, req)

	require.NotNil(t, got)
	assert.Equal(t, "anonymous", got.Subject)
}

func TestMiddleware_OptionalAuthStillValidatesPresentedToken(t *testing.T) {
	v := NewVerifier(testSecret, "HS256", nil)
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	Middleware(false, v)(next).ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNAUTHENTICATED")
}

func TestMiddleware_RequiredAuthRejectsMissingToken(t *testing.T) {
	v := NewVerifier(testSecret, "HS256", nil)
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	rec := httptest.NewRecorder()
	Middleware(true, v)(next).ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Contains(t, rec.Body.String(), "UNAUTHENTICATED")
}

func TestMiddleware_ValidTokenReachesHandlerWithClaims(t *testing.T) {
	v := NewVerifier(testSecret, "HS256", nil)
	var got *Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, validClaims()))
	rec := httptest.NewRecorder()
	Middleware(true, v)(next).ServeHTTP(rec, req)

	require.NotNil(t, got)
	assert.Equal(t, "user-1", got.Subject)
}
