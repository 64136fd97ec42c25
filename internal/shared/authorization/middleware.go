package authorization

import "github.com/gin-gonic/gin"

const authContextKey = "auth_context"

// SetAuthContext stores the caller's session on the gin context.
func SetAuthContext(c *gin.Context, auth AuthContext) {
	c.Set(authContextKey, auth)
}

// GetAuthContext returns the session stored by the auth middleware, or an
// anonymous context when none was set.
func GetAuthContext(c *gin.Context) AuthContext {
	if v, ok := c.Get(authContextKey); ok {
		if auth, ok := v.(AuthContext); ok {
			return auth
		}
	}
	return Anonymous()
}
