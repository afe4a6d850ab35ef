// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/articlehub/internal/auth"
	"github.com/carterperez-dev/articlehub/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create hashes the plaintext credential and stores a new account. A taken
// email comes back as a storage error matching core.ErrDuplicateKey.
func (s *Service) Create(
	ctx context.Context,
	email, name, password, role string,
) (string, error) {
	u, err := s.newUser(email, name, password, role)
	if err != nil {
		return "", err
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return "", err
	}

	return u.ID, nil
}

// EnsureAccount is the conflict-tolerant form of Create. When the email is
// already registered nothing is written and the existing account's id is
// returned with created=false.
func (s *Service) EnsureAccount(
	ctx context.Context,
	email, name, password, role string,
) (string, bool, error) {
	u, err := s.newUser(email, name, password, role)
	if err != nil {
		return "", false, err
	}

	created, err := s.repo.InsertOrSkip(ctx, u)
	if err != nil {
		return "", false, err
	}

	if created {
		return u.ID, true, nil
	}

	existing, err := s.repo.GetByEmail(ctx, u.Email)
	if err != nil {
		return "", false, fmt.Errorf("ensure account: %w", err)
	}

	return existing.ID, false, nil
}

func (s *Service) newUser(email, name, password, role string) (*User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf(
			"create user: email and password are required: %w",
			core.ErrInvalidInput,
		)
	}

	if role == "" {
		role = RoleUser
	}
	if !ValidRole(role) {
		return nil, fmt.Errorf(
			"create user: invalid role %q: %w",
			role,
			core.ErrInvalidInput,
		)
	}

	passwordHash, err := core.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		ID:       uuid.New().String(),
		Email:    email,
		Password: passwordHash,
		Role:     role,
	}
	if name = strings.TrimSpace(name); name != "" {
		u.Name = &name
	}

	return u, nil
}

// FindByEmail hands the stored account, hash included, to the credential
// check. It does not compare passwords itself.
func (s *Service) FindByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.GetByEmail(ctx, strings.TrimSpace(email))
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(u), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	u, err := s.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	return toUserInfo(u), nil
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

// CanDelete refuses self-deletion so an admin cannot lock everyone out by
// accident.
func (s *Service) CanDelete(
	ctx context.Context,
	requesterID, targetID string,
) error {
	if requesterID == targetID {
		return fmt.Errorf("delete user: cannot delete yourself: %w", core.ErrForbidden)
	}

	if _, err := s.repo.GetByID(ctx, targetID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete user: %w", err)
	}

	return nil
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.DisplayName(),
		PasswordHash: u.Password,
		Role:         u.Role,
	}
}

var _ auth.UserProvider = (*Service)(nil)
