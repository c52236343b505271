package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"campus_tracker/internal/controllers"
	"campus_tracker/internal/middleware"
)

// Deps carries the constructed controllers plus the user finder the auth
// middleware needs.
type Deps struct {
	Auth          *controllers.AuthController
	Users         *controllers.UserController
	Buses         *controllers.BusController
	Notifications *controllers.NotificationController
	Contacts      *controllers.ContactController
	Feedback      *controllers.FeedbackController
	Finder        middleware.UserFinder
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())

	AuthRoutes(r, d)
	BusRoutes(r, d)
	ProtectedRoutes(r, d)
	NotificationRoutes(r, d)
	ContactRoutes(r, d)
	FeedbackRoutes(r, d)

	return r
}
