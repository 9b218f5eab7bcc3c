package users

import (
	"context"
	"errors"
	"testing"

	"profile-backend/internal/shared/auth"
)

func seedUser(t *testing.T, repo *MemoryRepo, id, email, password string) {
	t.Helper()
	user := User{ID: id, Email: email, Name: "Test User"}
	if password != "" {
		hash, err := auth.HashPassword(password)
		if err != nil {
			t.Fatalf("hash password: %v", err)
		}
		user.PasswordHash = hash
	}
	if err := repo.Upsert(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	repo := NewMemoryRepo()
	seedUser(t, repo, "user-1", "old@example.com", "")
	svc := NewService(repo)

	updated, err := svc.UpdateProfile(context.Background(), "user-1", "New Name", "new@example.com")
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Name != "New Name" || updated.Email != "new@example.com" {
		t.Fatalf("unexpected update result: %+v", updated)
	}
}

func TestUpdateProfileRejectsInvalidEmail(t *testing.T) {
	repo := NewMemoryRepo()
	seedUser(t, repo, "user-1", "old@example.com", "")
	svc := NewService(repo)

	if _, err := svc.UpdateProfile(context.Background(), "user-1", "Name", "not-an-email"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestUpdateProfileRejectsTakenEmail(t *testing.T) {
	repo := NewMemoryRepo()
	seedUser(t, repo, "user-1", "a@example.com", "")
	seedUser(t, repo, "user-2", "b@example.com", "")
	svc := NewService(repo)

	if _, err := svc.UpdateProfile(context.Background(), "user-1", "Name", "b@example.com"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUpdateProfileMissingUser(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	if _, err := svc.UpdateProfile(context.Background(), "ghost", "Name", "g@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdatePassword(t *testing.T) {
	repo := NewMemoryRepo()
	seedUser(t, repo, "user-1", "a@example.com", "old-password")
	svc := NewService(repo)
	ctx := context.Background()

	if err := svc.UpdatePassword(ctx, "user-1", "old-password", "new-password"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}

	user, err := repo.GetByID(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !auth.CheckPassword(user.PasswordHash, "new-password") {
		t.Fatalf("expected new password to verify")
	}
}

func TestUpdatePasswordWrongCurrent(t *testing.T) {
	repo := NewMemoryRepo()
	seedUser(t, repo, "user-1", "a@example.com", "old-password")
	svc := NewService(repo)

	if err := svc.UpdatePassword(context.Background(), "user-1", "wrong", "new-password"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
}

func TestUpdatePasswordTooShort(t *testing.T) {
	repo := NewMemoryRepo()
	seedUser(t, repo, "user-1", "a@example.com", "old-password")
	svc := NewService(repo)

	if err := svc.UpdatePassword(context.Background(), "user-1", "old-password", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}
