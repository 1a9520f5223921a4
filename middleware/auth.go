package middleware

import (
	"net/http"
	"os"
	"strings"

	"newhire-onboarding-api/config"
	"newhire-onboarding-api/services"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the admin Bearer token
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get token from header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
			c.Abort()
			return
		}

		// Check Bearer prefix
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		auth := services.NewAuthService(config.DB, []byte(os.Getenv("JWT_SECRET")))
		claims, err := auth.Verify(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		// Set admin info in context
		c.Set("adminID", claims.AdminID)
		c.Set("email", claims.Email)

		c.Next()
	}
}

// FormGateMiddleware requires the signed form cookie issued by POST /login.
func FormGateMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie("auth")
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
			c.Abort()
			return
		}

		auth := services.NewAuthService(config.DB, []byte(os.Getenv("JWT_SECRET")))
		if err := auth.VerifyFormToken(cookie); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		c.Next()
	}
}
