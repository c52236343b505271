// Package storetest provides in-memory implementations of the service store
// interfaces for tests. The fakes keep the same contract as the Postgres
// stores: ErrNotFound for missing records, ErrDuplicateEmail on a unique
// email violation, and an atomic check-and-set for bus claims.
package storetest

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lib/pq"

	"campus_tracker/internal/models"
	"campus_tracker/internal/services"
)

// Users is an in-memory services.UserStore.
type Users struct {
	mu     sync.Mutex
	nextID uint
	byID   map[uint]models.User
}

func NewUsers() *Users {
	return &Users{byID: map[uint]models.User{}}
}

func (s *Users) FindByEmail(email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byID {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, services.ErrNotFound
}

func (s *Users) FindByID(id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	copied := u
	return &copied, nil
}

func (s *Users) Create(u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.byID {
		if existing.Email == u.Email {
			return services.ErrDuplicateEmail
		}
	}
	s.nextID++
	u.ID = s.nextID
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	s.byID[u.ID] = *u
	return nil
}

func (s *Users) Save(u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[u.ID]; !ok {
		return services.ErrNotFound
	}
	for id, existing := range s.byID {
		if id != u.ID && existing.Email == u.Email {
			return services.ErrDuplicateEmail
		}
	}
	u.UpdatedAt = time.Now()
	s.byID[u.ID] = *u
	return nil
}

func (s *Users) Delete(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return services.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

func (s *Users) ListByStatus(status string) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.User
	for _, u := range s.byID {
		if u.Status == status {
			out = append(out, u)
		}
	}
	sortUsers(out)
	return out, nil
}

func (s *Users) ListAll() ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.User
	for _, u := range s.byID {
		out = append(out, u)
	}
	sortUsers(out)
	return out, nil
}

func sortUsers(users []models.User) {
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
}

// Buses is an in-memory services.BusStore. ClaimLocation performs the
// check-and-set under the store mutex, matching the row-level atomicity of
// the Postgres conditional update.
type Buses struct {
	mu       sync.Mutex
	nextID   uint
	byNumber map[string]models.Bus
}

func NewBuses() *Buses {
	return &Buses{byNumber: map[string]models.Bus{}}
}

func (s *Buses) FindByNumber(busNumber string) (*models.Bus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.byNumber[busNumber]
	if !ok {
		return nil, services.ErrNotFound
	}
	copied := b
	return &copied, nil
}

func (s *Buses) Create(b *models.Bus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byNumber[b.BusNumber]; ok {
		return services.ErrDuplicateEmail
	}
	s.nextID++
	b.ID = s.nextID
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	s.byNumber[b.BusNumber] = *b
	return nil
}

func (s *Buses) Delete(busNumber string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byNumber[busNumber]; !ok {
		return services.ErrNotFound
	}
	delete(s.byNumber, busNumber)
	return nil
}

func (s *Buses) ListAll() ([]models.Bus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Bus
	for _, b := range s.byNumber {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastUpdated.After(out[j].LastUpdated) })
	return out, nil
}

func (s *Buses) SearchByRoute(routeNumber string) ([]models.Bus, error) {
	return s.filter(func(b models.Bus) bool { return b.RouteNumber == routeNumber })
}

func (s *Buses) SearchBySourceDestination(source, destination string) ([]models.Bus, error) {
	return s.filter(func(b models.Bus) bool {
		return containsFold(b.Source, source) && containsFold(b.Destination, destination)
	})
}

func (s *Buses) SearchByStop(stop string) ([]models.Bus, error) {
	return s.filter(func(b models.Bus) bool {
		for _, candidate := range b.Stops {
			if containsFold(candidate, stop) {
				return true
			}
		}
		return false
	})
}

func (s *Buses) filter(keep func(models.Bus) bool) ([]models.Bus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Bus
	for _, b := range s.byNumber {
		if keep(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func (s *Buses) ClaimLocation(busNumber string, driverID uint, lat, lng float64, now, expiry time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.byNumber[busNumber]
	if !ok {
		return false, nil
	}
	held := b.CurrentDriverID != nil && *b.CurrentDriverID != driverID
	lapsed := b.ClaimExpiresAt != nil && b.ClaimExpiresAt.Before(now)
	if held && !lapsed {
		return false, nil
	}
	b.CurrentDriverID = &driverID
	b.CurrentLat = &lat
	b.CurrentLng = &lng
	b.LastUpdated = now
	b.ClaimExpiresAt = &expiry
	b.UpdatedAt = now
	s.byNumber[busNumber] = b
	return true, nil
}

func (s *Buses) UpdateFields(busNumber string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.byNumber[busNumber]
	if !ok {
		return services.ErrNotFound
	}
	for column, value := range fields {
		switch column {
		case "route_number":
			b.RouteNumber = value.(string)
		case "source":
			b.Source = value.(string)
		case "destination":
			b.Destination = value.(string)
		case "stops":
			b.Stops = pq.StringArray(value.([]string))
		case "status":
			b.Status = value.(string)
		case "arrival_time":
			b.ArrivalTime = value.(string)
		case "route_path":
			if value == nil {
				b.RoutePath = nil
			} else {
				b.RoutePath = value.([]byte)
			}
		}
	}
	b.UpdatedAt = time.Now()
	s.byNumber[busNumber] = b
	return nil
}

// Notifications is an in-memory services.NotificationStore.
type Notifications struct {
	mu     sync.Mutex
	nextID uint
	items  []models.Notification
}

func NewNotifications() *Notifications {
	return &Notifications{}
}

func (s *Notifications) Create(n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	n.ID = s.nextID
	n.CreatedAt = time.Now()
	s.items = append(s.items, *n)
	return nil
}

func (s *Notifications) FindByID(id uint) (*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.items {
		if n.ID == id {
			copied := n
			return &copied, nil
		}
	}
	return nil, services.ErrNotFound
}

func (s *Notifications) Delete(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.items {
		if n.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return services.ErrNotFound
}

func (s *Notifications) ListAll() ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Notification, len(s.items))
	copy(out, s.items)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *Notifications) ListByBus(busNumber string, limit int) ([]models.Notification, error) {
	all, _ := s.ListAll()
	var out []models.Notification
	for _, n := range all {
		if n.BusNumber == busNumber {
			out = append(out, n)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (s *Notifications) DeleteByContact(contactID uint, kind string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	for _, n := range s.items {
		if n.ContactID != nil && *n.ContactID == contactID && n.Kind == kind {
			continue
		}
		kept = append(kept, n)
	}
	s.items = kept
	return nil
}

func (s *Notifications) DeleteByEmail(email, kind string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	for _, n := range s.items {
		if n.UserEmail == email && n.Kind == kind {
			continue
		}
		kept = append(kept, n)
	}
	s.items = kept
	return nil
}

// Contacts is an in-memory services.ContactStore.
type Contacts struct {
	mu     sync.Mutex
	nextID uint
	byID   map[uint]models.Contact
}

func NewContacts() *Contacts {
	return &Contacts{byID: map[uint]models.Contact{}}
}

func (s *Contacts) Create(c *models.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	c.ID = s.nextID
	c.CreatedAt = time.Now()
	s.byID[c.ID] = *c
	return nil
}

func (s *Contacts) FindByID(id uint) (*models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byID[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	copied := c
	return &copied, nil
}

func (s *Contacts) Save(c *models.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[c.ID]; !ok {
		return services.ErrNotFound
	}
	s.byID[c.ID] = *c
	return nil
}

func (s *Contacts) Delete(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return services.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

func (s *Contacts) ListAll() ([]models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Contact
	for _, c := range s.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// Feedbacks is an in-memory services.FeedbackStore.
type Feedbacks struct {
	mu     sync.Mutex
	nextID uint
	byID   map[uint]models.Feedback
}

func NewFeedbacks() *Feedbacks {
	return &Feedbacks{byID: map[uint]models.Feedback{}}
}

func (s *Feedbacks) Create(f *models.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	f.ID = s.nextID
	f.CreatedAt = time.Now()
	s.byID[f.ID] = *f
	return nil
}

func (s *Feedbacks) FindByID(id uint) (*models.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.byID[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	copied := f
	return &copied, nil
}

func (s *Feedbacks) Delete(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return services.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

func (s *Feedbacks) ListAll() ([]models.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Feedback
	for _, f := range s.byID {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// Events is an in-memory services.LocationEventStore.
type Events struct {
	mu    sync.Mutex
	items []models.LocationEvent
}

func NewEvents() *Events {
	return &Events{}
}

func (s *Events) Append(e *models.LocationEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = uint(len(s.items) + 1)
	s.items = append(s.items, *e)
	return nil
}

// All returns a copy of the recorded events, oldest first.
func (s *Events) All() []models.LocationEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.LocationEvent, len(s.items))
	copy(out, s.items)
	return out
}
