package routes

import (
	"github.com/gin-gonic/gin"

	"campus_tracker/internal/middleware"
	"campus_tracker/internal/models"
)

func ProtectedRoutes(r *gin.Engine, d Deps) {
	protected := r.Group("/api/protected")
	protected.Use(middleware.RequireAuth(d.Finder))
	{
		protected.GET("/dashboard-data", d.Users.Dashboard)
		protected.PUT("/update-user/:id", d.Users.UpdateUser)
	}

	admin := r.Group("/api/protected")
	admin.Use(middleware.RequireRoles(d.Finder, models.RoleAdmin))
	{
		admin.GET("/pending-users", d.Users.PendingUsers)
		admin.PUT("/approve-user/:id", d.Users.ApproveUser)
		admin.PUT("/reject-user/:id", d.Users.RejectUser)
		admin.GET("/users", d.Users.ListUsers)
		admin.DELETE("/delete-user/:id", d.Users.DeleteUser)
	}
}
