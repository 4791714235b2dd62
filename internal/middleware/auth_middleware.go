package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	apperrors "github.com/rahat/tastybites-backend/internal/errors"
	"github.com/rahat/tastybites-backend/pkg/logger"
	"github.com/rahat/tastybites-backend/pkg/redis"
	"github.com/rahat/tastybites-backend/pkg/util"
)

const (
	// UserIDKey is the context key for user ID
	UserIDKey = "user_id"
	// UserEmailKey is the context key for user email
	UserEmailKey = "user_email"
	// UserRoleKey is the context key for user role
	UserRoleKey = "user_role"
)

// Authenticate validates the JWT token from the Authorization header
func Authenticate(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Missing authorization header", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			apperrors.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			logger.Warn("Invalid authorization header format", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenInvalid,
				"Authorization header must be in format: Bearer {token}")
			c.Abort()
			return
		}

		tokenString := parts[1]

		// Reject tokens that were invalidated by logout
		if redis.IsTokenBlacklisted(c.Request.Context(), tokenString) {
			logger.Warn("Blacklisted token rejected", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenRevoked,
				"Token has been invalidated")
			c.Abort()
			return
		}

		claims, err := util.ValidateToken(tokenString, jwtSecret)
		if err != nil {
			logger.Warn("Token validation failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			if err == util.ErrExpiredToken {
				apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenExpired,
					"Token has expired")
			} else {
				apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenInvalid,
					"Invalid token")
			}
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Set(UserRoleKey, claims.Role)

		c.Next()
	}
}

// RequireRole allows the request only when the authenticated user has one
// of the given roles. Must run after Authenticate.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(UserRoleKey)
		if !exists {
			apperrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		userRole, ok := role.(string)
		if !ok {
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenInvalid,
				"Invalid token claims")
			c.Abort()
			return
		}

		for _, allowed := range roles {
			if userRole == allowed {
				c.Next()
				return
			}
		}

		logger.Warn("Insufficient role for request", map[string]interface{}{
			"path":      c.Request.URL.Path,
			"user_role": userRole,
		})
		apperrors.Forbidden(c, "")
		c.Abort()
	}
}

// GetUserID extracts the user ID from the gin context
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}

// GetUserEmail extracts the user email from the gin context
func GetUserEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(UserEmailKey)
	if !exists {
		return "", false
	}
	e, ok := email.(string)
	return e, ok
}

// GetUserRole extracts the user role from the gin context
func GetUserRole(c *gin.Context) (string, bool) {
	role, exists := c.Get(UserRoleKey)
	if !exists {
		return "", false
	}
	r, ok := role.(string)
	return r, ok
}
