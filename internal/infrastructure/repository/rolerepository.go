package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/helpdesk-inc/helpdesk/internal/domain/user"
	"github.com/helpdesk-inc/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/helpdesk-inc/helpdesk/internal/infrastructure/persistence/models"
	"github.com/helpdesk-inc/helpdesk/internal/shared/db"
	apperrors "github.com/helpdesk-inc/helpdesk/internal/shared/errors"
	"github.com/helpdesk-inc/helpdesk/internal/shared/mapper"
)

type RoleRepository struct {
	db     *gorm.DB
	mapper mappers.UserMapper
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{
		db:     db,
		mapper: mappers.NewUserMapper(),
	}
}

func (r *RoleRepository) Create(ctx context.Context, role *user.Role) error {
	model := r.mapper.RoleToModel(role)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create role: %w", err)
	}
	return role.SetID(model.ID)
}

func (r *RoleRepository) GetByName(ctx context.Context, name string) (*user.Role, error) {
	var model models.RoleModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("name = ?", name).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("role not found", name)
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	return r.mapper.RoleToDomain(&model)
}

func (r *RoleRepository) List(ctx context.Context) ([]*user.Role, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var roleModels []*models.RoleModel
	if err := tx.Order("id ASC").Find(&roleModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return mapper.MapSlicePtrWithID(roleModels, r.mapper.RoleToDomain, func(m *models.RoleModel) uint { return m.ID })
}
