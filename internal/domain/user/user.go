package user

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidRole  = errors.New("invalid role")
	ErrUserInactive = errors.New("user is inactive")
)

type Role string

const (
	RoleViewer   Role = "viewer"
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleViewer, RoleOperator, RoleAdmin:
		return true
	default:
		return false
	}
}

// User is the authenticated operator identity. Property scoping for every
// engine call comes from here, never from ambient request state.
type User struct {
	id           uuid.UUID
	propertyID   uuid.UUID
	email        string
	passwordHash string
	role         Role
	active       bool
}

func Reconstruct(id, propertyID uuid.UUID, email, passwordHash string, role Role, active bool) (*User, error) {
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}
	return &User{
		id:           id,
		propertyID:   propertyID,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		active:       active,
	}, nil
}

func (u *User) ID() uuid.UUID         { return u.id }
func (u *User) PropertyID() uuid.UUID { return u.propertyID }
func (u *User) Email() string         { return u.email }
func (u *User) PasswordHash() string  { return u.passwordHash }
func (u *User) Role() Role            { return u.role }
func (u *User) IsActive() bool        { return u.active }
