package middleware

import (
	"strings"

	"github.com/akozlenko/kasa-api/internal/domain/repository"
	"github.com/akozlenko/kasa-api/internal/presentation/http/dto/response"
	"github.com/akozlenko/kasa-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware creates a JWT authentication middleware. The token subject
// is resolved to a user record on every request: an invalid or expired token
// is a 401, a valid token whose subject no longer exists is a 404.
func AuthMiddleware(jwtManager *utils.JWTManager, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		userID, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		user, err := userRepo.GetByID(c.Request.Context(), userID)
		if err != nil {
			response.Detail(c, 500, "Failed to resolve user")
			c.Abort()
			return
		}
		if user == nil {
			response.NotFound(c, "User not found")
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user_login", user.Login)

		c.Next()
	}
}
