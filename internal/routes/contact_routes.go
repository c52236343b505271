package routes

import (
	"github.com/gin-gonic/gin"

	"campus_tracker/internal/middleware"
	"campus_tracker/internal/models"
)

func ContactRoutes(r *gin.Engine, d Deps) {
	contact := r.Group("/api/contact")

	// Anyone can submit the contact form
	contact.POST("/submit", d.Contacts.Submit)

	admin := contact.Group("", middleware.RequireRoles(d.Finder, models.RoleAdmin))
	{
		admin.GET("/all", d.Contacts.List)
		admin.PUT("/:id/read", d.Contacts.MarkRead)
		admin.PUT("/:id/replied", d.Contacts.MarkReplied)
		admin.PUT("/:id/reply", d.Contacts.Reply)
		admin.PUT("/:id/delete-reply", d.Contacts.DeleteReply)
		admin.DELETE("/:id", d.Contacts.Delete)
	}
}
