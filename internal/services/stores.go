package services

import (
	"time"

	"campus_tracker/internal/models"
)

// Store interfaces consumed by the services. The GORM implementations live in
// internal/store; tests use the in-memory fakes from internal/store/storetest.
// Implementations return ErrNotFound for missing records, ErrDuplicateEmail
// for a unique-email violation and wrap any other persistence failure in
// ErrStoreUnavailable.

type UserStore interface {
	FindByEmail(email string) (*models.User, error)
	FindByID(id uint) (*models.User, error)
	Create(u *models.User) error
	Save(u *models.User) error
	Delete(id uint) error
	ListByStatus(status string) ([]models.User, error)
	ListAll() ([]models.User, error)
}

type BusStore interface {
	FindByNumber(busNumber string) (*models.Bus, error)
	Create(b *models.Bus) error
	Delete(busNumber string) error
	ListAll() ([]models.Bus, error)
	SearchByRoute(routeNumber string) ([]models.Bus, error)
	SearchBySourceDestination(source, destination string) ([]models.Bus, error)
	SearchByStop(stop string) ([]models.Bus, error)

	// ClaimLocation atomically writes driver, location, last-updated and lease
	// expiry for busNumber when the bus is unclaimed, already claimed by
	// driverID, or the existing lease has lapsed. Returns false when another
	// driver holds a live claim. The check-and-set must be a single atomic
	// update relative to other writers on the same bus record.
	ClaimLocation(busNumber string, driverID uint, lat, lng float64, now, expiry time.Time) (bool, error)

	// UpdateFields applies a column patch to busNumber. Callers build the map
	// from an allow-list; the claim and location columns never pass through
	// here.
	UpdateFields(busNumber string, fields map[string]interface{}) error
}

type NotificationStore interface {
	Create(n *models.Notification) error
	FindByID(id uint) (*models.Notification, error)
	Delete(id uint) error
	ListAll() ([]models.Notification, error)
	ListByBus(busNumber string, limit int) ([]models.Notification, error)
	DeleteByContact(contactID uint, kind string) error
	DeleteByEmail(email, kind string) error
}

type ContactStore interface {
	Create(c *models.Contact) error
	FindByID(id uint) (*models.Contact, error)
	Save(c *models.Contact) error
	Delete(id uint) error
	ListAll() ([]models.Contact, error)
}

type FeedbackStore interface {
	Create(f *models.Feedback) error
	FindByID(id uint) (*models.Feedback, error)
	Delete(id uint) error
	ListAll() ([]models.Feedback, error)
}

type LocationEventStore interface {
	Append(e *models.LocationEvent) error
}
