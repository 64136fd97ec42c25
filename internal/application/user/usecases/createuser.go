package usecases

import (
	"context"
	"fmt"

	"github.com/helpdesk-inc/helpdesk/internal/domain/user"
	uservo "github.com/helpdesk-inc/helpdesk/internal/domain/user/valueobjects"
	"github.com/helpdesk-inc/helpdesk/internal/shared/db"
	"github.com/helpdesk-inc/helpdesk/internal/shared/errors"
	"github.com/helpdesk-inc/helpdesk/internal/shared/logger"
)

type CreateUserCommand struct {
	Username string
	Password string
	Role     string
	// UpdateExisting resets password and role of an existing account instead
	// of failing. Used by idempotent provisioning.
	UpdateExisting bool
}

type CreateUserResult struct {
	UserID   uint
	Username string
	Role     string
	Created  bool
}

type CreateUserUseCase struct {
	txManager db.TxRunner
	userRepo  user.Repository
	roleRepo  user.RoleRepository
	hasher    PasswordHasher
	logger    logger.Interface
}

func NewCreateUserUseCase(
	txManager db.TxRunner,
	userRepo user.Repository,
	roleRepo user.RoleRepository,
	hasher PasswordHasher,
	logger logger.Interface,
) *CreateUserUseCase {
	return &CreateUserUseCase{
		txManager: txManager,
		userRepo:  userRepo,
		roleRepo:  roleRepo,
		hasher:    hasher,
		logger:    logger,
	}
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, cmd CreateUserCommand) (*CreateUserResult, error) {
	uc.logger.Infow("executing create user use case", "username", cmd.Username, "role", cmd.Role)

	password, err := uservo.NewPassword(cmd.Password)
	if err != nil {
		return nil, err
	}

	hash, err := uc.hasher.Hash(password.String())
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, err
	}

	var result CreateUserResult
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		role, err := uc.roleRepo.GetByName(txCtx, cmd.Role)
		if err != nil {
			if errors.IsNotFoundError(err) {
				return errors.NewValidationError("unknown role", cmd.Role)
			}
			return err
		}

		existing, err := uc.userRepo.GetByUsername(txCtx, cmd.Username)
		switch {
		case err == nil:
			if !cmd.UpdateExisting {
				return errors.NewValidationError("username already exists", cmd.Username)
			}
			if err := existing.ChangePasswordHash(hash); err != nil {
				return err
			}
			if err := existing.ChangeRole(role); err != nil {
				return err
			}
			if err := uc.userRepo.Update(txCtx, existing); err != nil {
				return fmt.Errorf("failed to update user: %w", err)
			}
			result = CreateUserResult{UserID: existing.ID(), Username: existing.Username(), Role: role.Name().String()}
			return nil
		case !errors.IsNotFoundError(err):
			return err
		}

		newUser, err := user.NewUser(cmd.Username, hash, role)
		if err != nil {
			return err
		}
		if err := uc.userRepo.Create(txCtx, newUser); err != nil {
			return err
		}
		result = CreateUserResult{UserID: newUser.ID(), Username: newUser.Username(), Role: role.Name().String(), Created: true}
		return nil
	})
	if err != nil {
		uc.logger.Warnw("failed to create user", "username", cmd.Username, "error", err)
		return nil, err
	}

	uc.logger.Infow("user provisioned successfully", "user_id", result.UserID, "role", result.Role, "created", result.Created)
	return &result, nil
}
