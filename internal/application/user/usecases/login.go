package usecases

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/helpdesk-inc/helpdesk/internal/domain/user"
	"github.com/helpdesk-inc/helpdesk/internal/shared/authorization"
	"github.com/helpdesk-inc/helpdesk/internal/shared/errors"
	"github.com/helpdesk-inc/helpdesk/internal/shared/logger"
)

type LoginCommand struct {
	Username  string
	Password  string
	IPAddress string
}

type LoginResult struct {
	Auth      authorization.AuthContext
	Token     string
	ExpiresIn time.Duration
}

type LoginUseCase struct {
	userRepo user.Repository
	hasher   PasswordHasher
	tokens   TokenIssuer
	logger   logger.Interface
}

func NewLoginUseCase(
	userRepo user.Repository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	username := strings.TrimSpace(cmd.Username)
	if username == "" || cmd.Password == "" {
		return nil, errors.NewInvalidCredentialsError()
	}

	existingUser, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.IsNotFoundError(err) {
			uc.logger.Warnw("login failed", "username", username, "ip", cmd.IPAddress, "reason", "unknown user")
			return nil, errors.NewInvalidCredentialsError()
		}
		uc.logger.Errorw("failed to get user by username", "error", err)
		return nil, err
	}

	if !uc.verify(ctx, existingUser, cmd.Password) {
		uc.logger.Warnw("login failed", "username", username, "ip", cmd.IPAddress, "reason", "wrong password")
		return nil, errors.NewInvalidCredentialsError()
	}

	auth := existingUser.AuthContext()
	token, err := uc.tokens.Generate(auth)
	if err != nil {
		uc.logger.Errorw("failed to issue session token", "user_id", auth.UserID, "error", err)
		return nil, errors.NewInternalError("failed to create session")
	}

	uc.logger.Infow("user logged in successfully", "user_id", auth.UserID, "role", auth.Role, "ip", cmd.IPAddress)

	return &LoginResult{
		Auth:      auth,
		Token:     token,
		ExpiresIn: uc.tokens.ExpiresIn(),
	}, nil
}

// verify checks the password. Accounts imported from the old database still
// hold plaintext passwords; those are compared in constant time and rehashed
// on the first successful login.
func (uc *LoginUseCase) verify(ctx context.Context, u *user.User, password string) bool {
	stored := u.PasswordHash()
	if isBcryptHash(stored) {
		return uc.hasher.Verify(password, stored) == nil
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(password)) != 1 {
		return false
	}

	hash, err := uc.hasher.Hash(password)
	if err == nil {
		err = u.ChangePasswordHash(hash)
	}
	if err == nil {
		err = uc.userRepo.Update(ctx, u)
	}
	if err != nil {
		uc.logger.Warnw("failed to upgrade legacy password", "user_id", u.ID(), "error", err)
	} else {
		uc.logger.Infow("legacy password upgraded to bcrypt", "user_id", u.ID())
	}
	return true
}

func isBcryptHash(s string) bool {
	return len(s) == 60 && (strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$"))
}
