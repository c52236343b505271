package routes

import (
	"github.com/gin-gonic/gin"

	"campus_tracker/internal/middleware"
	"campus_tracker/internal/models"
)

func FeedbackRoutes(r *gin.Engine, d Deps) {
	feedback := r.Group("/api/feedback")

	feedback.POST("", d.Feedback.Submit)

	admin := feedback.Group("", middleware.RequireRoles(d.Finder, models.RoleAdmin))
	{
		admin.GET("", d.Feedback.List)
		admin.DELETE("/:id", d.Feedback.Delete)
	}
}
