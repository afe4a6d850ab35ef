// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/articlehub/internal/core"
)

type verifierFunc func(ctx context.Context, token string) (*AccessTokenClaims, error)

func (f verifierFunc) VerifyAccessToken(
	ctx context.Context,
	token string,
) (*AccessTokenClaims, error) {
	return f(ctx, token)
}

func testVerifier() TokenVerifier {
	return verifierFunc(func(_ context.Context, token string) (*AccessTokenClaims, error) {
		switch token {
		case "admin":
			return &AccessTokenClaims{UserID: "u-admin", Role: RoleAdmin}, nil
		case "user":
			return &AccessTokenClaims{UserID: "u-user", Role: "USER"}, nil
		case "expired":
			return nil, fmt.Errorf("verify token: %w", core.ErrTokenExpired)
		case "revoked":
			return nil, fmt.Errorf("verify token: %w", core.ErrTokenRevoked)
		case "store-down":
			return nil, errors.New("redis: connection refused")
		}
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	})
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body core.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	return body.Error.Code
}

func TestAuthenticatorAndRequireAdmin(t *testing.T) {
	var seenUser string
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUser = GetUserID(r.Context())
		assert.NotNil(t, GetClaims(r.Context()))
		w.WriteHeader(http.StatusNoContent)
	})

	h := Authenticator(testVerifier())(RequireAdmin(final))

	tests := []struct {
		name   string
		header string
		status int
		code   string
	}{
		{"missing header", "", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"wrong scheme", "Basic admin", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"invalid token", "Bearer junk", http.StatusUnauthorized, "TOKEN_INVALID"},
		{"expired token", "Bearer expired", http.StatusUnauthorized, "TOKEN_EXPIRED"},
		{"revoked token", "Bearer revoked", http.StatusUnauthorized, "TOKEN_REVOKED"},
		{"revocation store down", "Bearer store-down", http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"not an admin", "Bearer user", http.StatusForbidden, "FORBIDDEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, errorCode(t, rec))
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer admin")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "u-admin", seenUser)
}

func TestRequestIDEchoesOrGenerates(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
}
