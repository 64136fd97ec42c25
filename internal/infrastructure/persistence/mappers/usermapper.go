package mappers

import (
	"fmt"

	"github.com/helpdesk-inc/helpdesk/internal/domain/user"
	"github.com/helpdesk-inc/helpdesk/internal/infrastructure/persistence/models"
)

// UserMapper converts console accounts and roles between domain and persistence.
type UserMapper interface {
	ToModel(u *user.User) *models.UserModel
	ToDomain(model *models.UserModel) (*user.User, error)
	RoleToModel(r *user.Role) *models.RoleModel
	RoleToDomain(model *models.RoleModel) (*user.Role, error)
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:       u.ID(),
		Username: u.Username(),
		Password: u.PasswordHash(),
		RoleID:   u.Role().ID(),
	}
}

// ToDomain expects the Role association to be preloaded.
func (m *UserMapperImpl) ToDomain(model *models.UserModel) (*user.User, error) {
	if model.Role.ID == 0 {
		return nil, fmt.Errorf("user %d: role not loaded", model.ID)
	}
	role, err := m.RoleToDomain(&model.Role)
	if err != nil {
		return nil, err
	}
	return user.ReconstructUser(model.ID, model.Username, model.Password, role)
}

func (m *UserMapperImpl) RoleToModel(r *user.Role) *models.RoleModel {
	return &models.RoleModel{
		ID:   r.ID(),
		Name: r.Name().String(),
	}
}

func (m *UserMapperImpl) RoleToDomain(model *models.RoleModel) (*user.Role, error) {
	return user.ReconstructRole(model.ID, model.Name)
}
