package routes

import (
	"github.com/gin-gonic/gin"
)

func AuthRoutes(r *gin.Engine, d Deps) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", d.Auth.Register)
		auth.POST("/login", d.Auth.Login)
		auth.GET("/check-status", d.Auth.CheckStatus)
	}
}
