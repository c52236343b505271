package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Operational statuses for a bus.
const (
	BusOnTime  = "on_time"
	BusDelayed = "delayed"
)

// Bus is a tracked campus vehicle. CurrentDriverID marks the sole driver
// whose location feed is trusted right now; it is mutated only through the
// tracking service's conditional claim update, never through the generic
// detail patch.
type Bus struct {
	gorm.Model
	BusNumber   string         `json:"bus_number" gorm:"uniqueIndex"`
	RouteNumber string         `json:"route_number"`
	Source      string         `json:"source"`
	Destination string         `json:"destination"`
	Stops       pq.StringArray `json:"stops" gorm:"type:text[]"`
	CurrentLat  *float64       `json:"current_lat"`
	CurrentLng  *float64       `json:"current_lng"`
	Status      string         `json:"status" gorm:"default:on_time"` // "on_time" or "delayed"
	LastUpdated time.Time      `json:"last_updated"`
	ArrivalTime string         `json:"arrival_time" gorm:"default:Not Available"`

	CurrentDriverID *uint      `json:"current_driver_id"`
	ClaimExpiresAt  *time.Time `json:"claim_expires_at"`

	// Route path stored as WKB (SRID 4326 LINESTRING); GeoJSON at the API
	// boundary, same convention as the geometry codec expects.
	RoutePath []byte `json:"-" gorm:"type:bytea"`
}

// ValidBusStatus reports whether status is a known operational status.
func ValidBusStatus(status string) bool {
	return status == BusOnTime || status == BusDelayed
}
