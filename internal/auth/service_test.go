// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/carterperez-dev/articlehub/internal/core"
)

type fakeUsers struct {
	byEmail map[string]*UserInfo
	updated map[string]string
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*UserInfo, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*UserInfo, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
}

func (f *fakeUsers) UpdatePassword(_ context.Context, id, hash string) error {
	f.updated[id] = hash
	return nil
}

type memRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
	err     error
}

func (m *memRevocations) Revoke(_ context.Context, key string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[key] = ttl
	return nil
}

func (m *memRevocations) IsRevoked(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.revoked[key]
	return ok, nil
}

func newTestService(t *testing.T, passwordHash string) (*Service, *fakeUsers, *memRevocations) {
	t.Helper()

	users := &fakeUsers{
		byEmail: map[string]*UserInfo{
			"admin@example.com": {
				ID:           "user-1",
				Email:        "admin@example.com",
				Name:         "Admin User",
				PasswordHash: passwordHash,
				Role:         "ADMIN",
			},
		},
		updated: make(map[string]string),
	}
	revocations := &memRevocations{revoked: make(map[string]time.Duration)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewService(newTestJWTManager(t, testJWTConfig()), users, revocations, logger)
	return svc, users, revocations
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	hash, err := core.HashPassword("admin123")
	require.NoError(t, err)
	svc, users, _ := newTestService(t, hash)
	ctx := context.Background()

	resp, err := svc.Login(ctx, LoginRequest{Email: "admin@example.com", Password: "admin123"})
	require.NoError(t, err)

	assert.Equal(t, "user-1", resp.User.ID)
	assert.Equal(t, "Bearer", resp.Tokens.TokenType)
	assert.Positive(t, resp.Tokens.ExpiresIn)
	assert.Empty(t, users.updated)

	claims, err := svc.VerifyAccessToken(ctx, resp.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ADMIN", claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	hash, err := core.HashPassword("admin123")
	require.NoError(t, err)
	svc, _, _ := newTestService(t, hash)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "admin@example.com", Password: "nope"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "admin123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUpgradesLegacyHash(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)
	svc, users, _ := newTestService(t, string(legacy))

	_, err = svc.Login(context.Background(), LoginRequest{Email: "admin@example.com", Password: "admin123"})
	require.NoError(t, err)

	upgraded, ok := users.updated["user-1"]
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(upgraded, "$argon2id$"))
}

func TestLogoutRevokesToken(t *testing.T) {
	hash, err := core.HashPassword("admin123")
	require.NoError(t, err)
	svc, _, revocations := newTestService(t, hash)
	ctx := context.Background()

	resp, err := svc.Login(ctx, LoginRequest{Email: "admin@example.com", Password: "admin123"})
	require.NoError(t, err)

	claims, err := svc.VerifyAccessToken(ctx, resp.Tokens.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims))

	ttl, ok := revocations.revoked[claims.TokenID]
	require.True(t, ok)
	assert.Positive(t, ttl)

	_, err = svc.VerifyAccessToken(ctx, resp.Tokens.AccessToken)
	assert.ErrorIs(t, err, core.ErrTokenRevoked)
}

func TestVerifyFailsClosedWhenStoreDown(t *testing.T) {
	hash, err := core.HashPassword("admin123")
	require.NoError(t, err)
	svc, _, revocations := newTestService(t, hash)
	ctx := context.Background()

	resp, err := svc.Login(ctx, LoginRequest{Email: "admin@example.com", Password: "admin123"})
	require.NoError(t, err)

	revocations.err = errors.New("redis: connection refused")

	_, err = svc.VerifyAccessToken(ctx, resp.Tokens.AccessToken)
	require.Error(t, err)
	assert.ErrorIs(t, err, revocations.err)
}

func TestGetCurrentUser(t *testing.T) {
	svc, _, _ := newTestService(t, "")

	u, err := svc.GetCurrentUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Admin User", u.Name)

	_, err = svc.GetCurrentUser(context.Background(), "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}
