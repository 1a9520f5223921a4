package main

import (
	"log"
	"os"
	"path/filepath"

	"newhire-onboarding-api/config"
	"newhire-onboarding-api/middleware"
	"newhire-onboarding-api/routes"
	"newhire-onboarding-api/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Configure logging output (stdout + logs/newhire-api.log)
	logFile, _ := config.InitLogging()
	if logFile != nil {
		defer logFile.Close()
	}

	// Initialize database (creates/updates schema, idempotent)
	config.InitDB()

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET is required")
	}

	// Provision the bootstrap admin account if the table is empty
	auth := services.NewAuthService(config.DB, []byte(os.Getenv("JWT_SECRET")))
	if err := auth.Bootstrap(os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD")); err != nil {
		log.Fatal("Failed to bootstrap admin account:", err)
	}

	// Set Gin mode
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()

	// Add logging middleware
	router.Use(gin.Logger())

	// Add recovery middleware
	router.Use(gin.Recovery())

	// Add security headers middleware
	router.Use(func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	})

	// Add request id + CORS middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.CORSMiddleware())

	// Setup API routes
	routes.SetupRoutes(router)

	// Static pages: the login shell is public, the wizard itself sits behind
	// the form cookie gate.
	publicDir := os.Getenv("PUBLIC_DIR")
	if publicDir == "" {
		publicDir = "./public"
	}
	if info, err := os.Stat(publicDir); err == nil && info.IsDir() {
		router.Static("/assets", filepath.Join(publicDir, "assets"))
		router.StaticFile("/", filepath.Join(publicDir, "index.html"))

		form := router.Group("/form", middleware.FormGateMiddleware())
		form.Static("/", filepath.Join(publicDir, "form"))
	} else {
		log.Printf("Static form disabled: %s not found", publicDir)
	}

	// Start server
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("New hire onboarding API starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
