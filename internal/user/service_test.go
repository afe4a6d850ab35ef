// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/articlehub/internal/core"
)

type memRepository struct {
	byID map[string]*User
}

func newMemRepository() *memRepository {
	return &memRepository{byID: make(map[string]*User)}
}

func (m *memRepository) emailTaken(email string) bool {
	for _, u := range m.byID {
		if u.Email == email {
			return true
		}
	}
	return false
}

func (m *memRepository) Create(_ context.Context, u *User) error {
	if m.emailTaken(u.Email) {
		return fmt.Errorf("create user: %w", core.NewStorageError(
			"get", "INSERT INTO users", &pgconn.PgError{Code: "23505"},
		))
	}
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memRepository) InsertOrSkip(ctx context.Context, u *User) (bool, error) {
	if m.emailTaken(u.Email) {
		return false, nil
	}
	return true, m.Create(ctx, u)
}

func (m *memRepository) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (m *memRepository) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
}

func (m *memRepository) UpdatePassword(_ context.Context, id, hash string) error {
	u, ok := m.byID[id]
	if !ok {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}
	u.Password = hash
	return nil
}

func (m *memRepository) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return fmt.Errorf("delete user: %w", core.ErrNotFound)
	}
	delete(m.byID, id)
	return nil
}

func TestServiceCreateHashesPassword(t *testing.T) {
	repo := newMemRepository()
	svc := NewService(repo)

	id, err := svc.Create(context.Background(), "writer@example.com", "Writer", "plaintext-pw", "")
	require.NoError(t, err)

	stored := repo.byID[id]
	require.NotNil(t, stored)
	assert.Equal(t, RoleUser, stored.Role)
	assert.NotEqual(t, "plaintext-pw", stored.Password)
	assert.True(t, strings.HasPrefix(stored.Password, "$argon2id$"))

	ok, err := core.VerifyPassword("plaintext-pw", stored.Password)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestServiceCreateRejectsUnknownRole(t *testing.T) {
	svc := NewService(newMemRepository())

	_, err := svc.Create(context.Background(), "x@example.com", "", "password1", "OWNER")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestServiceCreateDuplicateEmail(t *testing.T) {
	svc := NewService(newMemRepository())
	ctx := context.Background()

	_, err := svc.Create(ctx, "dup@example.com", "", "password1", RoleUser)
	require.NoError(t, err)

	_, err = svc.Create(ctx, "dup@example.com", "", "password2", RoleUser)
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestServiceEnsureAccountIsIdempotent(t *testing.T) {
	repo := newMemRepository()
	svc := NewService(repo)
	ctx := context.Background()

	first, created, err := svc.EnsureAccount(ctx, "admin@example.com", "Admin User", "admin123", RoleAdmin)
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := svc.EnsureAccount(ctx, "admin@example.com", "Admin User", "admin123", RoleAdmin)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first, second)
	assert.Len(t, repo.byID, 1)
}

func TestServiceFindByEmailAbsent(t *testing.T) {
	svc := NewService(newMemRepository())

	u, err := svc.FindByEmail(context.Background(), "nobody@example.com")
	assert.Nil(t, u)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestServiceCanDelete(t *testing.T) {
	svc := NewService(newMemRepository())
	ctx := context.Background()

	id, err := svc.Create(ctx, "target@example.com", "", "password1", RoleUser)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.CanDelete(ctx, id, id), core.ErrForbidden)
	assert.ErrorIs(t, svc.CanDelete(ctx, "admin", "missing"), core.ErrNotFound)
	assert.NoError(t, svc.CanDelete(ctx, "admin", id))

	require.NoError(t, svc.Delete(ctx, id))
	assert.ErrorIs(t, svc.Delete(ctx, id), core.ErrNotFound)
}
