package middleware

import (
	"errors"
	"net/http"
	"strings"

	"backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CurrentUserKey is the gin context key holding the resolved
// *models.User for authenticated routes.
const CurrentUserKey = "currentUser"

// AuthMiddleware creates a Gin middleware that resolves the bearer
// token to a live user record. Missing, malformed and expired tokens
// as well as deleted subjects all produce the same 401.
func AuthMiddleware(authService service.AuthService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			c.Abort()
			return
		}

		user, err := authService.ResolveUser(parts[1])
		if err != nil {
			// A store failure is a fault, not an auth failure.
			if !errors.Is(err, service.ErrUnauthenticated) {
				logger.Error("Failed to resolve current user", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
				c.Abort()
				return
			}
			logger.Debug("Rejected bearer token", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			c.Abort()
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}
