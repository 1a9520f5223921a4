package controllers

import (
	"errors"
	"log"
	"net/http"
	"os"

	"newhire-onboarding-api/config"
	"newhire-onboarding-api/services"

	"github.com/gin-gonic/gin"
)

type adminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminLogin authenticates a dashboard operator and returns a session token.
func AdminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing email or password"})
		return
	}

	auth := services.NewAuthService(config.DB, []byte(os.Getenv("JWT_SECRET")))
	token, err := auth.Login(req.Email, req.Password)
	if err != nil {
		var authErr *services.AuthError
		if errors.As(err, &authErr) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": authErr.Message})
			return
		}
		log.Printf("admin login failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
