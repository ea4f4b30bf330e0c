package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/kitabayar/backend/internal/domain/identity"
)

// RequireRole lets the request through when the caller has one of roles.
// It must run after JWTAuth.
func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			abort(c, "UNAUTHORIZED", "Authentication required")
			return
		}
		if !claims.HasRole(roles...) {
			abort(c, "FORBIDDEN", "You do not have permission to perform this action")
			return
		}
		c.Next()
	}
}

// RequireStaff allows administrators and staff
func RequireStaff() gin.HandlerFunc {
	return RequireRole(identity.RoleAdmin, identity.RoleStaff)
}

// RequireAdmin allows administrators only
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(identity.RoleAdmin)
}
