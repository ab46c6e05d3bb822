package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"nexus-portal-backend/internal/supabase"
)

const (
	RoleKey    = "user_role"
	ProfileKey = "user_profile"
)

// ProfileMiddleware resolves the caller's profile row, creating it on first
// authenticated touch, and stores the profile and role in the context. Role
// checks always come from the database, never from token claims.
func ProfileMiddleware(dbClient *supabase.DatabaseClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		if dbClient == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database not available"})
			c.Abort()
			return
		}

		userIDStr, exists := c.Get(UserIDKey)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user id not found"})
			c.Abort()
			return
		}

		userID, err := uuid.Parse(userIDStr.(string))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			c.Abort()
			return
		}

		email, _ := c.Get(EmailKey)
		emailStr, _ := email.(string)

		profile, err := dbClient.EnsureProfile(userID, emailStr)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "failed to resolve profile",
				"message": err.Error(),
			})
			c.Abort()
			return
		}

		c.Set(RoleKey, profile.Role)
		c.Set(ProfileKey, profile)
		c.Next()
	}
}

// RequireAdmin gates admin-only routes.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(RoleKey)
		if role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
