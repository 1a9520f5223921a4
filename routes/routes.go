package routes

import (
	"newhire-onboarding-api/controllers"
	"newhire-onboarding-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	// Form password gate (sets the signed "auth" cookie)
	router.POST("/login", middleware.RateLimitLogin(), controllers.FormLogin)

	api := router.Group("/api")
	{
		// Public routes
		public := api.Group("")
		{
			public.GET("/steps", controllers.GetSteps)
			public.POST("/submit", controllers.SubmitNewHire)
			public.GET("/submission/:id", controllers.GetSubmission)
			public.GET("/status/:id", controllers.GetStatus)
		}

		// Admin routes
		admin := api.Group("/admin")
		{
			admin.POST("/login", middleware.RateLimitLogin(), controllers.AdminLogin)

			protected := admin.Group("")
			protected.Use(middleware.AuthMiddleware())
			{
				protected.GET("/submissions", controllers.ListSubmissions)
				protected.POST("/update-status", controllers.UpdateStatus)
			}
		}
	}
}
