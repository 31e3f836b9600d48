package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fileshare/internal/domain"
	"fileshare/internal/pkg/jwt"
	"fileshare/internal/pkg/response"
)

// ContextUserKey is where JWTAuth stores the resolved *domain.User.
const ContextUserKey = "user"

// UserResolver re-reads the acting user from storage. The token only
// carries the identity claim; admin-ness always comes from the stored row.
type UserResolver interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

func JWTAuth(jwtService *jwt.Service, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.Error(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Missing Authorization header")
			c.Abort()
			return
		}

		if !strings.HasPrefix(h, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Invalid Authorization header")
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		claims, err := jwtService.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		user, err := users.GetByUsername(c.Request.Context(), claims.Username)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNKNOWN_USER", "Token identity no longer exists")
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Set("user_id", user.ID)
		c.Set("username", user.Username)

		c.Next()
	}
}

// CurrentUser pulls the resolved user out of the request context.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}
