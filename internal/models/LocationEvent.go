package models

import (
	"time"

	"gorm.io/gorm"
)

// LocationEvent is an append-only record of every accepted location update,
// kept for route analysis. Failures writing history never fail the update
// itself.
type LocationEvent struct {
	gorm.Model
	BusNumber string    `json:"bus_number" gorm:"index"`
	DriverID  uint      `json:"driver_id" gorm:"index"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}
