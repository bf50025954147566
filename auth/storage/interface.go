package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/safartours/safarserver/auth/users"
)

// ErrUserExists is returned by CreateUser when the username or email is
// already taken. The store's uniqueness constraints are the only arbiter:
// two concurrent registrations with the same email race there, and at most
// one wins.
var ErrUserExists = errors.New("username or email already in use")

// AuthStorage persists identities. Lookups that find nothing return
// sql.ErrNoRows. User reads never carry the password hash, only
// GetUserSecret exposes it.
type AuthStorage interface {
	CreateUser(ctx context.Context, user users.User, passwordHash string) error
	GetUser(ctx context.Context, id uuid.UUID) (users.User, error)
	GetUserByEmail(ctx context.Context, email string) (users.User, error)
	GetUserSecret(ctx context.Context, email string) (string, error)
	ListUsers(ctx context.Context) ([]users.User, error)
}
