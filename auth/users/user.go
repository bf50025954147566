package users

import (
	"time"

	"github.com/google/uuid"
)

// Role is a flat enumerated value. There is no hierarchy: a route gated on
// RoleUser rejects admins the same way a route gated on RoleAdmin rejects
// users.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	Role         Role
	RegisteredAt time.Time
}
