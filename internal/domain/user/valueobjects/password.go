package valueobjects

import (
	"github.com/helpdesk-inc/helpdesk/internal/shared/errors"
)

// MaxPasswordBytes is the bcrypt input limit.
const MaxPasswordBytes = 72

// Password is a plaintext password accepted for hashing. It is never stored.
type Password struct {
	value string
}

func NewPassword(plainPassword string) (*Password, error) {
	if plainPassword == "" {
		return nil, errors.NewValidationError("password is required")
	}
	if len(plainPassword) > MaxPasswordBytes {
		return nil, errors.NewValidationError("password must not exceed 72 bytes")
	}
	return &Password{value: plainPassword}, nil
}

func (p *Password) String() string {
	return p.value
}
