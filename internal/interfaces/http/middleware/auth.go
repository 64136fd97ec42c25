package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/helpdesk-inc/helpdesk/internal/shared/authorization"
	"github.com/helpdesk-inc/helpdesk/internal/shared/errors"
	"github.com/helpdesk-inc/helpdesk/internal/shared/logger"
	"github.com/helpdesk-inc/helpdesk/internal/shared/utils"
)

// SessionVerifier is satisfied by *auth.JWTService.
type SessionVerifier interface {
	Verify(token string) (authorization.AuthContext, error)
}

type AuthMiddleware struct {
	verifier SessionVerifier
	logger   logger.Interface
}

func NewAuthMiddleware(verifier SessionVerifier, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		logger:   logger,
	}
}

// OptionalAuth attaches the caller's AuthContext to every request. Missing,
// expired or forged tokens leave the caller anonymous.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authorization.SetAuthContext(c, m.resolve(c))
		c.Next()
	}
}

// RequireAuth is OptionalAuth that rejects anonymous callers with 401.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authCtx := m.resolve(c)
		if !authCtx.IsAuthenticated {
			utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("login required"))
			c.Abort()
			return
		}
		authorization.SetAuthContext(c, authCtx)
		c.Next()
	}
}

func (m *AuthMiddleware) resolve(c *gin.Context) authorization.AuthContext {
	token := utils.GetSessionToken(c)
	if token == "" {
		return authorization.Anonymous()
	}

	authCtx, err := m.verifier.Verify(token)
	if err != nil {
		m.logger.Debugw("ignoring invalid session token", "error", err, "client_ip", c.RemoteIP())
		return authorization.Anonymous()
	}
	return authCtx
}
