package middleware

import (
	"context"
	"strings"

	"github.com/Rohan-debug788/SkillSwap/pkg/utils"
	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

// TokenVerifier resolves a bearer token to a user id.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// Auth resolves the bearer token to a user id and stores it on the context.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		userID, err := verifier.Verify(c.Request.Context(), strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			utils.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id, or "" outside Auth.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
