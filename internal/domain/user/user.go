package user

import (
	"fmt"
	"strings"

	"github.com/helpdesk-inc/helpdesk/internal/shared/authorization"
	"github.com/helpdesk-inc/helpdesk/internal/shared/errors"
)

// User is a console account. Only the password hash is held.
type User struct {
	id           uint
	username     string
	passwordHash string
	role         *Role
}

func NewUser(username, passwordHash string, role *Role) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.NewValidationError("username is required")
	}
	if len(username) > 64 {
		return nil, errors.NewValidationError("username must be at most 64 characters long")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}
	if role == nil || role.ID() == 0 {
		return nil, fmt.Errorf("user requires a persisted role")
	}

	return &User{
		username:     username,
		passwordHash: passwordHash,
		role:         role,
	}, nil
}

func ReconstructUser(id uint, username, passwordHash string, role *Role) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if role == nil {
		return nil, fmt.Errorf("user %d has no role", id)
	}
	return &User{
		id:           id,
		username:     username,
		passwordHash: passwordHash,
		role:         role,
	}, nil
}

func (u *User) ID() uint {
	return u.id
}

func (u *User) Username() string {
	return u.username
}

func (u *User) PasswordHash() string {
	return u.passwordHash
}

func (u *User) Role() *Role {
	return u.role
}

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

// ChangePasswordHash replaces the stored hash when an account is re-provisioned.
func (u *User) ChangePasswordHash(hash string) error {
	if hash == "" {
		return fmt.Errorf("password hash is required")
	}
	u.passwordHash = hash
	return nil
}

// ChangeRole reassigns the account to another persisted role.
func (u *User) ChangeRole(role *Role) error {
	if role == nil || role.ID() == 0 {
		return fmt.Errorf("user requires a persisted role")
	}
	u.role = role
	return nil
}

// AuthContext builds the session context for a successful login.
func (u *User) AuthContext() authorization.AuthContext {
	return authorization.AuthContext{
		UserID:          u.id,
		Username:        u.username,
		Role:            u.role.Name(),
		IsAuthenticated: true,
	}
}
