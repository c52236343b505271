package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"campus_tracker/internal/models"
	"campus_tracker/internal/services"
)

type BusController struct {
	tracking *services.TrackingService
}

func NewBusController(tracking *services.TrackingService) *BusController {
	return &BusController{tracking: tracking}
}

// busJSON shapes a bus for API responses: nested current_location for the
// map component and the route path converted from WKB back to GeoJSON.
func busJSON(b *models.Bus) gin.H {
	resp := gin.H{
		"id":                b.ID,
		"bus_number":        b.BusNumber,
		"route_number":      b.RouteNumber,
		"source":            b.Source,
		"destination":       b.Destination,
		"stops":             b.Stops,
		"status":            b.Status,
		"last_updated":      b.LastUpdated,
		"arrival_time":      b.ArrivalTime,
		"current_driver_id": b.CurrentDriverID,
	}
	if b.CurrentLat != nil && b.CurrentLng != nil {
		resp["current_location"] = gin.H{"lat": *b.CurrentLat, "lng": *b.CurrentLng}
	}
	if len(b.RoutePath) > 0 {
		path, err := services.WKBToPath(b.RoutePath)
		if err != nil {
			logrus.WithError(err).WithField("bus_number", b.BusNumber).Warn("undecodable route path")
		} else {
			resp["route_path"] = path
		}
	}
	return resp
}

func busListJSON(buses []models.Bus) []gin.H {
	out := make([]gin.H, 0, len(buses))
	for i := range buses {
		out = append(out, busJSON(&buses[i]))
	}
	return out
}

// SearchByVehicle looks a single bus up by number. The response is a
// one-element list so all search endpoints share a shape.
func (b *BusController) SearchByVehicle(c *gin.Context) {
	bus, err := b.tracking.SearchByVehicle(c.Query("busNumber"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, []gin.H{busJSON(bus)})
}

func (b *BusController) SearchByRoute(c *gin.Context) {
	buses, err := b.tracking.SearchByRoute(c.Query("routeNumber"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, busListJSON(buses))
}

func (b *BusController) SearchBySourceDestination(c *gin.Context) {
	buses, err := b.tracking.SearchBySourceDestination(c.Query("source"), c.Query("destination"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, busListJSON(buses))
}

func (b *BusController) SearchByStop(c *gin.Context) {
	buses, err := b.tracking.SearchByStop(c.Query("stop"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, busListJSON(buses))
}

// GetAll returns every bus, most recently updated first.
func (b *BusController) GetAll(c *gin.Context) {
	buses, err := b.tracking.ListAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, busListJSON(buses))
}

type addBusInput struct {
	BusNumber   string   `json:"bus_number" binding:"required"`
	RouteNumber string   `json:"route_number" binding:"required"`
	Source      string   `json:"source" binding:"required"`
	Destination string   `json:"destination" binding:"required"`
	Stops       []string `json:"stops"`
	ArrivalTime string   `json:"arrival_time"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	RoutePath   string   `json:"route_path"`
}

// AddBus registers a new bus (admin only).
func (b *BusController) AddBus(c *gin.Context) {
	var input addBusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bus, err := b.tracking.AddBus(services.NewBusInput{
		BusNumber:   input.BusNumber,
		RouteNumber: input.RouteNumber,
		Source:      input.Source,
		Destination: input.Destination,
		Stops:       input.Stops,
		ArrivalTime: input.ArrivalTime,
		Lat:         input.Lat,
		Lng:         input.Lng,
		RoutePath:   input.RoutePath,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Bus added successfully", "bus": busJSON(bus)})
}

type updateLocationInput struct {
	BusNumber string  `json:"bus_number" binding:"required"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	DriverID  uint    `json:"driver_id"`
}

// UpdateLocation is the driver's live feed. The tracked identity is the
// authenticated caller; a driver cannot report on someone else's behalf
// (admins may, for manual corrections).
func (b *BusController) UpdateLocation(c *gin.Context) {
	var input updateLocationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	callerID := c.MustGet("user_id").(uint)
	driverID := callerID
	if input.DriverID != 0 && input.DriverID != callerID {
		if c.GetString("role") != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Cannot report location for another driver"})
			return
		}
		driverID = input.DriverID
	}

	bus, err := b.tracking.UpdateLocation(input.BusNumber, input.Lat, input.Lng, driverID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Location updated", "bus": busJSON(bus)})
}

type updateBusInput struct {
	RouteNumber *string   `json:"route_number"`
	Source      *string   `json:"source"`
	Destination *string   `json:"destination"`
	Stops       *[]string `json:"stops"`
	Status      *string   `json:"status"`
	ArrivalTime *string   `json:"arrival_time"`
	RoutePath   *string   `json:"route_path"`
}

// UpdateDetails patches bus metadata (admin only). The claim and location
// fields are not part of the input struct, so they cannot be smuggled
// through this endpoint.
func (b *BusController) UpdateDetails(c *gin.Context) {
	var input updateBusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bus, err := b.tracking.UpdateDetails(c.Param("busNumber"), services.BusDetailsPatch{
		RouteNumber: input.RouteNumber,
		Source:      input.Source,
		Destination: input.Destination,
		Stops:       input.Stops,
		Status:      input.Status,
		ArrivalTime: input.ArrivalTime,
		RoutePath:   input.RoutePath,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, busJSON(bus))
}

// DeleteBus removes a bus (admin only).
func (b *BusController) DeleteBus(c *gin.Context) {
	if err := b.tracking.DeleteBus(c.Param("busNumber")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bus deleted successfully"})
}
