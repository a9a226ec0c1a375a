package users

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("user not found")

type Repo interface {
	Upsert(ctx context.Context, user User) error
	GetByID(ctx context.Context, userID string) (User, error)
	// EnsureExists inserts the user when no row with its id is present and
	// leaves existing rows untouched.
	EnsureExists(ctx context.Context, user User) error
	SetOnboarding(ctx context.Context, userID string, completed bool) error
}
