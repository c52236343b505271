package routes

import (
	"github.com/gin-gonic/gin"

	"campus_tracker/internal/middleware"
	"campus_tracker/internal/models"
)

func NotificationRoutes(r *gin.Engine, d Deps) {
	notifications := r.Group("/api/notifications")
	notifications.Use(middleware.RequireAuth(d.Finder))
	{
		notifications.GET("", d.Notifications.List)
		notifications.GET("/bus/:busNumber", d.Notifications.ListByBus)
	}

	admin := r.Group("/api/notifications")
	admin.Use(middleware.RequireRoles(d.Finder, models.RoleAdmin))
	{
		admin.POST("", d.Notifications.Create)
		admin.DELETE("/:id", d.Notifications.Delete)
	}
}
