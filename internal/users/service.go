package users

import (
	"context"
	"errors"
	"strings"

	"profile-backend/internal/shared/auth"
)

// ErrInvalidPassword is returned when the supplied current password does not
// match the stored hash.
var ErrInvalidPassword = errors.New("current password is incorrect")

// ErrWeakPassword is returned when the new password fails the length check.
var ErrWeakPassword = errors.New("new password must be at least 8 characters")

// ErrInvalidEmail is returned when the submitted email address is malformed.
var ErrInvalidEmail = errors.New("email is invalid")

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, errors.New("user id is required")
	}
	return s.Repo.GetByID(ctx, userID)
}

// UpdateProfile replaces the user's name and email.
func (s *Service) UpdateProfile(ctx context.Context, userID, name, email string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return User{}, errors.New("name and email are required")
	}
	if !strings.Contains(email, "@") {
		return User{}, ErrInvalidEmail
	}

	user, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return User{}, err
	}
	user.Name = name
	user.Email = email
	if err := s.Repo.Upsert(ctx, user); err != nil {
		return User{}, err
	}
	return s.Repo.GetByID(ctx, userID)
}

// UpdatePassword verifies the current password before storing a new hash.
func (s *Service) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if s == nil || s.Repo == nil {
		return errors.New("users service not configured")
	}
	if len(newPassword) < 8 {
		return ErrWeakPassword
	}

	user, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.PasswordHash != "" && !auth.CheckPassword(user.PasswordHash, currentPassword) {
		return ErrInvalidPassword
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.Repo.Upsert(ctx, user)
}
