package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fileshare/internal/pkg/response"
)

// AdminOnly rejects authenticated non-admin users. Must run after JWTAuth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}

		if !user.IsAdmin {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Admin privileges required")
			c.Abort()
			return
		}

		c.Next()
	}
}
