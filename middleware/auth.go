package middleware

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"partnership-management-api/config"
	"partnership-management-api/models"
	"partnership-management-api/services"
)

// AuthMiddleware validates the session token, re-checks the account against
// the store, and rejects requests from accounts that are currently locked.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		token, err := jwt.ParseWithClaims(tokenString, &services.Claims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(*services.Claims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		// The token may outlive the account: re-check existence and lockout.
		var user models.User
		if err := config.DB.Where("user_id = ? AND delete_at IS NULL", claims.UserID).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			c.Abort()
			return
		}

		if status := services.CheckLockout(&user, time.Now()); status.Locked {
			c.JSON(http.StatusLocked, gin.H{
				"error":             "Account is locked due to too many failed login attempts",
				"lockout_remaining": status.RemainingMinutes,
			})
			c.Abort()
			return
		}

		if claims.Role != user.Role {
			c.JSON(http.StatusForbidden, gin.H{"error": "Role mismatch in token"})
			c.Abort()
			return
		}

		c.Set("userID", user.UserID)
		c.Set("email", user.Email)
		c.Set("role", user.Role)
		c.Set("status", user.Status)
		if user.CampusID != nil {
			c.Set("campusID", *user.CampusID)
		}

		c.Next()
	}
}

// RequireRole checks if the user has one of the given roles (case-insensitive).
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "Role not found"})
			c.Abort()
			return
		}

		role := strings.ToLower(userRole.(string))
		allowed := false
		for _, r := range roles {
			if role == strings.ToLower(r) {
				allowed = true
				break
			}
		}

		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access forbidden: insufficient role"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireActiveAccount gates mutating partnership actions on account status.
func RequireActiveAccount() gin.HandlerFunc {
	return func(c *gin.Context) {
		status, exists := c.Get("status")
		if !exists || status.(string) != models.StatusActive {
			current := "unknown"
			if exists {
				current = status.(string)
			}
			c.JSON(http.StatusForbidden, gin.H{
				"error": "User account not active. Current status: " + current,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
