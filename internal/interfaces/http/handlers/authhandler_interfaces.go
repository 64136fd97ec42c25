package handlers

import (
	"context"

	"github.com/helpdesk-inc/helpdesk/internal/application/user/usecases"
)

// Use case interfaces for AuthHandler - enables unit testing with mocks.

type loginUseCase interface {
	Execute(ctx context.Context, cmd usecases.LoginCommand) (*usecases.LoginResult, error)
}
