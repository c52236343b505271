package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"campus_tracker/internal/models"
)

// DefaultClaimTTL is how long a driver's claim on a bus stays live without a
// refresh. A lapsed lease is treated as unclaimed on the next update attempt,
// so a crashed driver client cannot lock a bus forever. No background timers
// are involved; the lease is just a stored expiry checked by the conditional
// update.
const DefaultClaimTTL = 120 * time.Second

// Default coordinates assigned to a new bus when the admin supplies none
// (the main campus gate).
const (
	DefaultLat = 16.4649
	DefaultLng = 80.5083
)

// TrackingService owns the single-writer location protocol and the bus
// record operations around it. CurrentDriverID, CurrentLat/CurrentLng,
// LastUpdated and ClaimExpiresAt are written exclusively through
// UpdateLocation's conditional claim; the admin detail patch cannot reach
// them.
type TrackingService struct {
	buses    BusStore
	history  LocationEventStore
	claimTTL time.Duration
	now      func() time.Time
}

func NewTrackingService(buses BusStore, history LocationEventStore, claimTTL time.Duration) *TrackingService {
	if claimTTL <= 0 {
		claimTTL = DefaultClaimTTL
	}
	return &TrackingService{
		buses:    buses,
		history:  history,
		claimTTL: claimTTL,
		now:      time.Now,
	}
}

// NewBusInput is the admin payload for registering a bus.
type NewBusInput struct {
	BusNumber   string
	RouteNumber string
	Source      string
	Destination string
	Stops       []string
	ArrivalTime string
	Lat         *float64
	Lng         *float64
	RoutePath   string // optional GeoJSON LineString
}

// BusDetailsPatch is the admin allow-list for updating a bus. The claim and
// location columns are structurally absent so the generic patch path cannot
// break the single-writer invariant.
type BusDetailsPatch struct {
	RouteNumber *string
	Source      *string
	Destination *string
	Stops       *[]string
	Status      *string
	ArrivalTime *string
	RoutePath   *string // GeoJSON LineString; empty string clears the path
}

// UpdateLocation applies the claim-or-reaffirm rule: the first driver to
// write an unclaimed (or lapsed) bus becomes its tracker, the current holder
// refreshes location and lease, and anyone else gets ErrOwnershipConflict.
// The decision rides on a single conditional update against the stored
// record, so of two concurrent claims at most one wins.
func (s *TrackingService) UpdateLocation(busNumber string, lat, lng float64, driverID uint) (*models.Bus, error) {
	if driverID == 0 {
		return nil, fmt.Errorf("%w: driver id is required", ErrInvalidArgument)
	}
	if busNumber == "" {
		return nil, fmt.Errorf("%w: bus number is required", ErrInvalidArgument)
	}

	// Existence check first so an unknown bus is NotFound, not a conflict.
	if _, err := s.buses.FindByNumber(busNumber); err != nil {
		return nil, err
	}

	now := s.now()
	claimed, err := s.buses.ClaimLocation(busNumber, driverID, lat, lng, now, now.Add(s.claimTTL))
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, ErrOwnershipConflict
	}

	if s.history != nil {
		event := &models.LocationEvent{
			BusNumber: busNumber,
			DriverID:  driverID,
			Latitude:  lat,
			Longitude: lng,
			Timestamp: now,
		}
		if histErr := s.history.Append(event); histErr != nil {
			logrus.WithError(histErr).WithField("bus_number", busNumber).
				Warn("failed to append location history")
		}
	}

	return s.buses.FindByNumber(busNumber)
}

// AddBus registers a new bus, defaulting its location to the campus gate
// when none is given.
func (s *TrackingService) AddBus(input NewBusInput) (*models.Bus, error) {
	input.BusNumber = strings.TrimSpace(input.BusNumber)
	if input.BusNumber == "" || input.RouteNumber == "" || input.Source == "" || input.Destination == "" {
		return nil, fmt.Errorf("%w: bus number, route number, source and destination are required", ErrInvalidArgument)
	}

	if _, err := s.buses.FindByNumber(input.BusNumber); err == nil {
		return nil, fmt.Errorf("%w: bus %s is already registered", ErrInvalidState, input.BusNumber)
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	lat, lng := DefaultLat, DefaultLng
	if input.Lat != nil && input.Lng != nil {
		lat, lng = *input.Lat, *input.Lng
	}

	bus := &models.Bus{
		BusNumber:   input.BusNumber,
		RouteNumber: input.RouteNumber,
		Source:      input.Source,
		Destination: input.Destination,
		Stops:       input.Stops,
		CurrentLat:  &lat,
		CurrentLng:  &lng,
		Status:      models.BusOnTime,
		LastUpdated: s.now(),
		ArrivalTime: input.ArrivalTime,
	}
	if bus.ArrivalTime == "" {
		bus.ArrivalTime = "Not Available"
	}
	if input.RoutePath != "" {
		wkb, err := PathToWKB(input.RoutePath)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid route path: %v", ErrInvalidArgument, err)
		}
		bus.RoutePath = wkb
	}

	if err := s.buses.Create(bus); err != nil {
		return nil, err
	}
	return bus, nil
}

// UpdateDetails applies the admin patch. Only the allow-listed columns are
// ever written.
func (s *TrackingService) UpdateDetails(busNumber string, patch BusDetailsPatch) (*models.Bus, error) {
	if _, err := s.buses.FindByNumber(busNumber); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if patch.RouteNumber != nil {
		fields["route_number"] = *patch.RouteNumber
	}
	if patch.Source != nil {
		fields["source"] = *patch.Source
	}
	if patch.Destination != nil {
		fields["destination"] = *patch.Destination
	}
	if patch.Stops != nil {
		fields["stops"] = *patch.Stops
	}
	if patch.Status != nil {
		if !models.ValidBusStatus(*patch.Status) {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, *patch.Status)
		}
		fields["status"] = *patch.Status
	}
	if patch.ArrivalTime != nil {
		fields["arrival_time"] = *patch.ArrivalTime
	}
	if patch.RoutePath != nil {
		if *patch.RoutePath == "" {
			fields["route_path"] = nil
		} else {
			wkb, err := PathToWKB(*patch.RoutePath)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid route path: %v", ErrInvalidArgument, err)
			}
			fields["route_path"] = wkb
		}
	}

	if len(fields) > 0 {
		if err := s.buses.UpdateFields(busNumber, fields); err != nil {
			return nil, err
		}
	}
	return s.buses.FindByNumber(busNumber)
}

// DeleteBus removes a bus record.
func (s *TrackingService) DeleteBus(busNumber string) error {
	return s.buses.Delete(busNumber)
}

// ListAll returns every bus, most recently updated first.
func (s *TrackingService) ListAll() ([]models.Bus, error) {
	return s.buses.ListAll()
}

// SearchByVehicle finds a single bus by its number.
func (s *TrackingService) SearchByVehicle(busNumber string) (*models.Bus, error) {
	if busNumber == "" {
		return nil, fmt.Errorf("%w: bus number is required", ErrInvalidArgument)
	}
	return s.buses.FindByNumber(busNumber)
}

// SearchByRoute finds all buses serving a route number.
func (s *TrackingService) SearchByRoute(routeNumber string) ([]models.Bus, error) {
	return s.buses.SearchByRoute(routeNumber)
}

// SearchBySourceDestination finds buses by endpoints, case-insensitively.
func (s *TrackingService) SearchBySourceDestination(source, destination string) ([]models.Bus, error) {
	return s.buses.SearchBySourceDestination(source, destination)
}

// SearchByStop finds buses that pass through a stop, including intermediate
// stops, case-insensitively.
func (s *TrackingService) SearchByStop(stop string) ([]models.Bus, error) {
	stop = strings.TrimSpace(stop)
	if stop == "" {
		return nil, fmt.Errorf("%w: stop is required", ErrInvalidArgument)
	}
	return s.buses.SearchByStop(stop)
}
