package usecases

import (
	"time"

	"github.com/helpdesk-inc/helpdesk/internal/shared/authorization"
)

// PasswordHasher is satisfied by *auth.BcryptPasswordHasher.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// TokenIssuer is satisfied by *auth.JWTService.
type TokenIssuer interface {
	Generate(auth authorization.AuthContext) (string, error)
	ExpiresIn() time.Duration
}
