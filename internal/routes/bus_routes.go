package routes

import (
	"github.com/gin-gonic/gin"

	"campus_tracker/internal/middleware"
	"campus_tracker/internal/models"
)

func BusRoutes(r *gin.Engine, d Deps) {
	buses := r.Group("/api/buses")

	// Public search endpoints for the rider map
	buses.GET("/search/vehicle", d.Buses.SearchByVehicle)
	buses.GET("/search/route", d.Buses.SearchByRoute)
	buses.GET("/search/source-destination", d.Buses.SearchBySourceDestination)
	buses.GET("/search/stop", d.Buses.SearchByStop)

	buses.GET("/all", middleware.RequireAuth(d.Finder), d.Buses.GetAll)

	// Location feed: a driver reports their own bus, an admin may correct any
	buses.PUT("/update-location",
		middleware.RequireRoles(d.Finder, models.RoleAdmin, models.RoleDriver),
		d.Buses.UpdateLocation)

	admin := buses.Group("", middleware.RequireRoles(d.Finder, models.RoleAdmin))
	{
		admin.POST("/add-bus", d.Buses.AddBus)
		admin.PUT("/update/:busNumber", d.Buses.UpdateDetails)
		admin.DELETE("/delete/:busNumber", d.Buses.DeleteBus)
	}
}
