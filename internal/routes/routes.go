package routes

import (
	"github.com/gin-gonic/gin"

	"internhub/internal/authz"
	"internhub/internal/handlers"
	"internhub/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	jwtKey []byte,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	taskHandler *handlers.TaskHandler,
	ratingHandler *handlers.RatingHandler,
	logHandler *handlers.LogHandler,
	notificationHandler *handlers.NotificationHandler,
	activityHandler *handlers.ActivityHandler,
	reportHandler *handlers.ReportHandler,
) *gin.Engine {

	// ---- public
	r.POST("/login", authHandler.Login)
	r.POST("/auth/complete-profile", authHandler.CompleteProfile)

	// ---- protected
	r.Use(middleware.AuthMiddleware(jwtKey))

	// TASKS (workflow)
	tasks := r.Group("/tasks")
	{
		tasks.POST("/", taskHandler.Create)
		tasks.GET("/", taskHandler.List)
		tasks.GET("/:id", taskHandler.GetByID)
		tasks.POST("/:id/submit", taskHandler.Submit)
		tasks.POST("/:id/review", middleware.RequireRoles(authz.RoleSupervisor), taskHandler.Review)
		tasks.POST("/:id/complete", middleware.RequireRoles(authz.RoleSupervisor), taskHandler.Complete)
		tasks.POST("/:id/comments", middleware.RequireRoles(authz.RoleSupervisor), taskHandler.AddComment)
	}

	// STUDENTS
	students := r.Group("/students")
	{
		students.GET("/", userHandler.ListStudents)
		students.GET("/:id/tasks", taskHandler.ListForStudent)
		students.GET("/:id/logbook.pdf", reportHandler.Logbook)
		students.PUT("/:id/supervisor", middleware.RequireRoles(authz.RoleAdmin), userHandler.AssignSupervisor)
	}

	// RATINGS
	ratings := r.Group("/ratings")
	{
		ratings.POST("/", middleware.RequireRoles(authz.RoleSupervisor), ratingHandler.Upsert)
		ratings.GET("/", ratingHandler.List)
	}

	// DAILY LOG
	logs := r.Group("/logs")
	{
		logs.POST("/", logHandler.Create)
		logs.GET("/", logHandler.List)
	}

	// NOTIFICATIONS
	notifications := r.Group("/notifications")
	{
		notifications.GET("/", notificationHandler.List)
		notifications.PATCH("/", notificationHandler.MarkRead)
		notifications.DELETE("/", notificationHandler.Delete)
	}

	// ADMIN
	admin := r.Group("/admin", middleware.RequireRoles(authz.RoleAdmin))
	{
		admin.GET("/activity", activityHandler.Recent)
	}

	// USERS (admin)
	users := r.Group("/users", middleware.RequireRoles(authz.RoleAdmin))
	{
		users.POST("/", userHandler.Invite)
		users.GET("/", userHandler.List)
		users.GET("/:id", userHandler.GetByID)
		users.DELETE("/:id", userHandler.Delete)
	}

	return r
}
