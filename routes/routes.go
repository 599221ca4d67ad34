package routes

import (
	"partnership-management-api/controllers"
	"partnership-management-api/middleware"
	"partnership-management-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			public.POST("/login", controllers.Login)

			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Partnership Management API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.POST("/logout", controllers.Logout)
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)
			protected.POST("/reset-password", controllers.ResetPassword)

			protected.GET("/users",
				middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin),
				controllers.GetUsers)

			// Partnerships
			partnerships := protected.Group("/partnerships")
			partnerships.Use(middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin))
			{
				partnerships.GET("", controllers.GetPartnerships)
				partnerships.GET("/:id", controllers.GetPartnership)

				// Mutations require an active account
				mutating := partnerships.Group("")
				mutating.Use(middleware.RequireActiveAccount())
				{
					mutating.POST("", controllers.CreatePartnership)
					mutating.PUT("/:id", controllers.UpdatePartnership)
					mutating.DELETE("/:id", controllers.DeletePartnership)
					mutating.PATCH("/:id/approve", controllers.ApprovePartnership)
					mutating.PATCH("/:id/reject", controllers.RejectPartnership)
					mutating.PATCH("/:id/archive", controllers.ArchivePartnership)
					mutating.PATCH("/:id/renew", controllers.RenewPartnership)
				}
			}

			// Notifications
			notifications := protected.Group("/notifications")
			{
				notifications.GET("/settings", controllers.GetNotificationSettings)
				notifications.PATCH("/settings", controllers.UpdateNotificationSettings)

				admin := notifications.Group("")
				admin.Use(middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin))
				{
					admin.GET("", controllers.GetNotifications)
					admin.GET("/unread", controllers.GetUnreadNotifications)
					admin.POST("", controllers.CreateNotification)
					admin.PATCH("/:id/read", controllers.MarkNotificationRead)
					admin.PUT("/read-all", controllers.MarkAllNotificationsRead)
					admin.DELETE("/:id", controllers.DeleteNotification)
				}
			}

			// SuperAdmin management
			superadmin := protected.Group("/superadmin")
			superadmin.Use(middleware.RequireRole(models.RoleSuperAdmin))
			{
				superadmin.POST("/assign-admin", controllers.AssignAdmin)
				superadmin.GET("/users", controllers.GetAllUsers)
				superadmin.PUT("/users/:id", controllers.UpdateUser)
				superadmin.DELETE("/users/:id", controllers.DeleteUser)
				superadmin.GET("/partnerships", controllers.GetPartnerships)
			}
		}
	}
}
