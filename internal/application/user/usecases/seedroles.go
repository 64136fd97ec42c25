package usecases

import (
	"context"

	"github.com/helpdesk-inc/helpdesk/internal/domain/user"
	"github.com/helpdesk-inc/helpdesk/internal/shared/db"
	"github.com/helpdesk-inc/helpdesk/internal/shared/errors"
	"github.com/helpdesk-inc/helpdesk/internal/shared/logger"
)

type SeedRolesResult struct {
	Created []string
}

type SeedRolesUseCase struct {
	txManager db.TxRunner
	roleRepo  user.RoleRepository
	logger    logger.Interface
}

func NewSeedRolesUseCase(txManager db.TxRunner, roleRepo user.RoleRepository, logger logger.Interface) *SeedRolesUseCase {
	return &SeedRolesUseCase{
		txManager: txManager,
		roleRepo:  roleRepo,
		logger:    logger,
	}
}

// Execute creates whichever of the admin and user roles is missing.
func (uc *SeedRolesUseCase) Execute(ctx context.Context) (*SeedRolesResult, error) {
	result := &SeedRolesResult{Created: []string{}}

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		for _, name := range user.DefaultRoleNames() {
			_, err := uc.roleRepo.GetByName(txCtx, name)
			if err == nil {
				continue
			}
			if !errors.IsNotFoundError(err) {
				return err
			}

			role, err := user.NewRole(name)
			if err != nil {
				return err
			}
			if err := uc.roleRepo.Create(txCtx, role); err != nil {
				return err
			}
			result.Created = append(result.Created, name)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to seed roles", "error", err)
		return nil, err
	}

	if len(result.Created) > 0 {
		uc.logger.Infow("roles seeded", "created", result.Created)
	}
	return result, nil
}
