package routes

import (
	"github.com/gin-gonic/gin"

	"appointment-booking-server/internal/config"
	"appointment-booking-server/internal/handlers"
	"appointment-booking-server/internal/middleware"
	"appointment-booking-server/internal/repository"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, store repository.Store, cfg *config.Config) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(store, cfg)
	userHandler := handlers.NewUserHandler(store, cfg)
	appointmentHandler := handlers.NewAppointmentHandler(store)

	// Credential endpoints get a per-IP rate limit
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/login", limiter.Middleware(), authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}

		// Registration is open; role flags can only be granted by an admin afterwards
		public.POST("/users", limiter.Middleware(), userHandler.Register)
	}

	// Authenticated routes
	private := router.Group("/api")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutes := private.Group("/auth")
		{
			authRoutes.POST("/logout", authHandler.Logout)
		}

		// User management; per-endpoint gates run inside the handlers so the
		// documented existence-vs-privilege check order is preserved
		userRoutes := private.Group("/users")
		{
			userRoutes.GET("", userHandler.GetUsers)
			userRoutes.GET("/currentUser", userHandler.GetCurrentUser)
			userRoutes.GET("/:id", userHandler.GetUser)
			userRoutes.DELETE("/:id", userHandler.DeleteUser)
			userRoutes.PATCH("/:id/updatephonenumber", userHandler.UpdatePhoneNumber)
			userRoutes.PATCH("/:id/updateemail", userHandler.UpdateEmail)
			userRoutes.PATCH("/:id/updatepassword", userHandler.UpdatePassword)
			userRoutes.PATCH("/:id/grantadminpermission", userHandler.GrantAdmin)
			userRoutes.PATCH("/:id/removeadminpermission", userHandler.RevokeAdmin)
			userRoutes.PATCH("/:id/grantemployeepermission", userHandler.GrantEmployee)
			userRoutes.PATCH("/:id/removeemployeepermission", userHandler.RevokeEmployee)
		}

		// Appointment routes
		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.GET("", appointmentHandler.GetAppointments)
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointment)
			appointmentRoutes.POST("", appointmentHandler.CreateAppointment)
			appointmentRoutes.PUT("/:id", appointmentHandler.UpdateAppointment)
			appointmentRoutes.PATCH("/:id/cancel", appointmentHandler.CancelAppointment)
			appointmentRoutes.DELETE("/:id", appointmentHandler.DeleteAppointment)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
