package user

import (
	"fmt"

	"github.com/helpdesk-inc/helpdesk/internal/shared/authorization"
)

// Role is a named capability set. Rows are seeded at provisioning time and
// are not edited by the application.
type Role struct {
	id   uint
	name authorization.UserRole
}

func NewRole(name string) (*Role, error) {
	role := authorization.UserRole(name)
	if !role.IsValid() {
		return nil, fmt.Errorf("unknown role: %q", name)
	}
	return &Role{name: role}, nil
}

func ReconstructRole(id uint, name string) (*Role, error) {
	if id == 0 {
		return nil, fmt.Errorf("role ID cannot be zero")
	}
	return &Role{id: id, name: authorization.UserRole(name)}, nil
}

func (r *Role) ID() uint {
	return r.id
}

func (r *Role) Name() authorization.UserRole {
	return r.name
}

func (r *Role) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("role ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("role ID cannot be zero")
	}
	r.id = id
	return nil
}

// DefaultRoleNames are the roles every installation starts with.
func DefaultRoleNames() []string {
	return []string{authorization.RoleAdmin.String(), authorization.RoleUser.String()}
}
