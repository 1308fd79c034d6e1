package middleware

import (
	"github.com/gin-gonic/gin"

	"supportdesk/internal/shared/authorization"
	"supportdesk/internal/shared/errors"
	"supportdesk/internal/shared/logger"
	"supportdesk/internal/shared/utils"
)

// PolicyEnforcer decides whether a role may call method on path.
type PolicyEnforcer interface {
	Enforce(role string, resource string, action string) (bool, error)
}

type PermissionMiddleware struct {
	enforcer PolicyEnforcer
	logger   logger.Interface
}

func NewPermissionMiddleware(enforcer PolicyEnforcer, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		enforcer: enforcer,
		logger:   logger,
	}
}

// RequirePermission checks the caller's role against the request path and method.
func (m *PermissionMiddleware) RequirePermission() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authorization.UserIDFromContext(c)
		if !ok {
			utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
			c.Abort()
			return
		}

		role := authorization.RoleFromContext(c)
		resource := c.Request.URL.Path
		action := c.Request.Method

		allowed, err := m.enforcer.Enforce(role.String(), resource, action)
		if err != nil {
			m.logger.Errorw("permission check failed", "error", err, "user_id", userID, "resource", resource, "action", action)
			utils.ErrorResponseWithError(c, errors.NewInternalError("permission check failed"))
			c.Abort()
			return
		}

		if !allowed {
			m.logger.Warnw("permission denied", "user_id", userID, "role", role, "resource", resource, "action", action)
			utils.ErrorResponseWithError(c, errors.NewForbiddenError("insufficient permissions"))
			c.Abort()
			return
		}

		c.Next()
	}
}
