package authorization

import (
	"github.com/gin-gonic/gin"

	"supportdesk/internal/shared/constants"
)

// RoleFromContext reads the role stored by the auth middleware.
func RoleFromContext(c *gin.Context) UserRole {
	return ParseUserRole(c.GetString(constants.ContextKeyUserRole))
}

// UserIDFromContext reads the caller id stored by the auth middleware.
func UserIDFromContext(c *gin.Context) (uint, bool) {
	v, ok := c.Get(constants.ContextKeyUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

// CanAccessResourceByOwnerID reports whether the caller may read data owned by resourceOwnerID.
func CanAccessResourceByOwnerID(userID uint, userRole UserRole, resourceOwnerID uint) bool {
	if userRole.IsAdmin() {
		return true
	}
	return userID == resourceOwnerID
}
