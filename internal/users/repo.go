package users

import (
	"context"
	"errors"
)

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "user not found" }

// ErrEmailTaken is returned when a profile update collides with another
// user's email address.
var ErrEmailTaken = errors.New("email already in use")

type Repo interface {
	Upsert(ctx context.Context, user User) error
	GetByID(ctx context.Context, userID string) (User, error)
}
