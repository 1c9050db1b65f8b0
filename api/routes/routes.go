package routes

import (
	"github.com/edubridge/lms-backend/internal/config"
	"github.com/edubridge/lms-backend/internal/handlers"
	"github.com/edubridge/lms-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// HandlerDependencies bundles the handlers the router wires up
type HandlerDependencies struct {
	AuthHandler         *handlers.AuthHandler
	UserHandler         *handlers.UserHandler
	CourseHandler       *handlers.CourseHandler
	ChatHandler         *handlers.ChatHandler
	NotificationHandler *handlers.NotificationHandler
	SettingsHandler     *handlers.SettingsHandler
	AssistantHandler    *handlers.AssistantHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/register", deps.AuthHandler.Register)
			auth.POST("/login", deps.AuthHandler.Login)
		}

		// Course catalog is public
		public.GET("/courses", deps.CourseHandler.BrowseCourses)
		public.GET("/courses/:id", deps.CourseHandler.GetCourseByID)

		// Polled by connected clients for responsive promotion expiry.
		// No auth: clients poll before login, and every outcome is
		// structured JSON.
		public.PUT("/settings/auto-expire-promotion", deps.SettingsHandler.AutoExpirePromotion)
	}

	// Authenticated routes
	protected := router.Group("/api")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		protected.GET("/users/me", deps.UserHandler.GetMe)

		protected.GET("/notifications", deps.NotificationHandler.GetMyNotifications)
		protected.POST("/notifications/:id/read", deps.NotificationHandler.MarkRead)

		chat := protected.Group("/chat")
		{
			chat.POST("/messages", deps.ChatHandler.SendMessage)
			chat.GET("/messages", deps.ChatHandler.GetMyThread)
		}

		protected.GET("/ai-assistant/access", deps.AssistantHandler.GetAccess)
	}

	// Admin routes
	admin := router.Group("/api")
	admin.Use(middleware.JWTAuthMiddleware(cfg), middleware.AdminOnly())
	{
		admin.GET("/settings", deps.SettingsHandler.GetSettings)
		admin.PUT("/settings/:section", deps.SettingsHandler.UpdateSection)

		users := admin.Group("/users")
		{
			users.GET("", deps.UserHandler.GetAllUsers)
			users.GET("/count", deps.UserHandler.GetUserCount)
			users.PUT("/:id/premium", deps.UserHandler.SetPremium)
		}

		courses := admin.Group("/admin/courses")
		{
			courses.GET("", deps.CourseHandler.GetAllCourses)
			courses.GET("/count", deps.CourseHandler.GetCourseCount)
			courses.POST("", deps.CourseHandler.CreateCourse)
			courses.PUT("/:id", deps.CourseHandler.UpdateCourse)
			courses.DELETE("/:id", deps.CourseHandler.DeleteCourse)
		}

		admin.POST("/notifications", deps.NotificationHandler.CreateNotification)
		admin.GET("/notifications/type/:type", deps.NotificationHandler.GetNotificationsByType)

		threads := admin.Group("/chat/threads")
		{
			threads.GET("", deps.ChatHandler.ListThreads)
			threads.GET("/:userId", deps.ChatHandler.GetThread)
		}
	}

	return router
}
