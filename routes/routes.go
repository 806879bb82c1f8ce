package routes

import (
	"github.com/gin-gonic/gin"

	"bgv-management-api/controllers"
	"bgv-management-api/middleware"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			public.POST("/admin/login", controllers.AdminLogin)
			public.POST("/branch/login", controllers.BranchLogin)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "BGV Management API is running",
				})
			})
		}

		// Admin routes (internal operations team)
		admin := v1.Group("/admin")
		admin.Use(middleware.AdminAuthMiddleware())
		{
			admin.POST("/logout", controllers.AdminLogout)

			tracker := admin.Group("/tracker")
			tracker.Use(middleware.RequirePermission("client_master_tracker", "view"))
			{
				tracker.GET("/applications", controllers.ListApplications)
				tracker.GET("/applications/:id", controllers.GetApplication)
				tracker.GET("/filter-options", controllers.FilterOptions)
			}

			reports := admin.Group("/reports")
			reports.Use(middleware.RequirePermission("client_master_tracker", "edit"))
			{
				reports.POST("/generate", controllers.GenerateReport)
				reports.GET("/download/:id", controllers.DownloadReport)
			}

			applications := admin.Group("/applications")
			{
				applications.POST("/:id/highlight", controllers.HighlightApplication)
				applications.DELETE("/:id", controllers.DeleteApplication)
				applications.DELETE("/:id/destroy", controllers.DestroyApplication)
			}

			holidays := admin.Group("/holidays")
			{
				holidays.GET("", controllers.GetHolidays)
				holidays.POST("", controllers.CreateHoliday)
				holidays.DELETE("/:id", controllers.DeleteHoliday)
			}

			admin.GET("/weekend-config", controllers.GetWeekendConfig)
			admin.PUT("/weekend-config", controllers.SetWeekendConfig)
			admin.GET("/services", controllers.GetServices)
			admin.GET("/report-forms/:service_id", controllers.GetReportForm)
		}

		// Branch routes (customer-side users)
		branch := v1.Group("/branch")
		branch.Use(middleware.BranchAuthMiddleware())
		{
			branch.POST("/logout", controllers.BranchLogout)
			branch.POST("/applications", controllers.CreateApplication)
			branch.GET("/applications", controllers.ListApplications)
			branch.GET("/applications/:id", controllers.GetApplication)
			branch.GET("/filter-options", controllers.FilterOptions)
		}
	}
}
