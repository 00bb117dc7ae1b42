package store

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUsernameTaken is returned when creating a user with a username that already exists.
	ErrUsernameTaken = errors.New("username is already taken")

	// ErrInvalidCredentials is returned for an unknown username or a wrong
	// password. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// QuestStoreIface exposes all quest data operations. Handlers go through
// this interface rather than querying the database directly.
type QuestStoreIface interface {
	Create(ctx context.Context, title, budget, description, posterID string) (*Quest, error)
	GetByID(ctx context.Context, id string) (*Quest, error)
	ListOpen(ctx context.Context) ([]*Quest, error)
	ListByPoster(ctx context.Context, posterID string) ([]*Quest, error)
	Close(ctx context.Context, id string) (*Quest, error)
	Delete(ctx context.Context, id string) error
	CountAll(ctx context.Context) (int, error)
	CountOpen(ctx context.Context) (int, error)
}

// UserStoreIface exposes user account operations.
type UserStoreIface interface {
	Create(ctx context.Context, username, email, password, role string) (*User, error)
	Authenticate(ctx context.Context, username, password string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	ListAll(ctx context.Context) ([]*User, error)
	UpdateRole(ctx context.Context, id, role string) (*User, error)
}
