package server

import (
	"github.com/gin-gonic/gin"
	"github.com/teamdesk/teamdesk/engine/auth"
	"github.com/teamdesk/teamdesk/engine/core"
)

// RequirePermission gates a route: 401 for anonymous callers, 403 when
// the principal's role or plan is not in the permission's allow lists.
func RequirePermission(perm auth.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := CurrentPrincipal(c)
		if principal == nil {
			Error(c, core.NewUnauthorizedError(Language(c)))
			c.Abort()
			return
		}
		if !auth.Allows(principal, perm) {
			Error(c, core.NewForbiddenError(Language(c)))
			c.Abort()
			return
		}
		c.Next()
	}
}
