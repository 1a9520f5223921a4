package controllers

import (
	"log"
	"net/http"
	"os"

	"newhire-onboarding-api/config"
	"newhire-onboarding-api/services"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type formLoginRequest struct {
	Password string `json:"password"`
}

// FormLogin is the one-secret gate in front of the intake form. A correct
// password sets the signed httpOnly "auth" cookie the form pages require.
func FormLogin(c *gin.Context) {
	var req formLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing password"})
		return
	}

	hash := os.Getenv("FORM_PASSWORD_HASH")
	if hash == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server not configured (missing FORM_PASSWORD_HASH)"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
		return
	}

	auth := services.NewAuthService(config.DB, []byte(os.Getenv("JWT_SECRET")))
	token, err := auth.IssueFormToken()
	if err != nil {
		log.Printf("form token issue failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	secure := os.Getenv("COOKIE_SECURE") == "1"
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("auth", token, int(services.TokenTTL.Seconds()), "/", "", secure, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
