package store

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"campus_tracker/internal/models"
)

type BusStore struct {
	db *gorm.DB
}

func NewBusStore(db *gorm.DB) *BusStore {
	return &BusStore{db: db}
}

func (s *BusStore) FindByNumber(busNumber string) (*models.Bus, error) {
	var bus models.Bus
	if err := s.db.Where("bus_number = ?", busNumber).First(&bus).Error; err != nil {
		return nil, translate(err)
	}
	return &bus, nil
}

func (s *BusStore) Create(b *models.Bus) error {
	return translate(s.db.Create(b).Error)
}

func (s *BusStore) Delete(busNumber string) error {
	res := s.db.Where("bus_number = ?", busNumber).Delete(&models.Bus{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}

func (s *BusStore) ListAll() ([]models.Bus, error) {
	var buses []models.Bus
	if err := s.db.Order("last_updated DESC").Find(&buses).Error; err != nil {
		return nil, translate(err)
	}
	return buses, nil
}

func (s *BusStore) SearchByRoute(routeNumber string) ([]models.Bus, error) {
	var buses []models.Bus
	if err := s.db.Where("route_number = ?", routeNumber).Find(&buses).Error; err != nil {
		return nil, translate(err)
	}
	return buses, nil
}

func (s *BusStore) SearchBySourceDestination(source, destination string) ([]models.Bus, error) {
	var buses []models.Bus
	err := s.db.
		Where("source ILIKE ?", "%"+source+"%").
		Where("destination ILIKE ?", "%"+destination+"%").
		Find(&buses).Error
	if err != nil {
		return nil, translate(err)
	}
	return buses, nil
}

func (s *BusStore) SearchByStop(stop string) ([]models.Bus, error) {
	var buses []models.Bus
	err := s.db.
		Where("EXISTS (SELECT 1 FROM unnest(stops) AS stop WHERE stop ILIKE ?)", "%"+stop+"%").
		Find(&buses).Error
	if err != nil {
		return nil, translate(err)
	}
	return buses, nil
}

// ClaimLocation is the conditional check-and-set behind the single-writer
// rule. The WHERE clause admits the write only when the bus is unclaimed,
// already held by driverID, or holding a lapsed lease; RowsAffected decides
// who won. Postgres serializes row updates, so of two concurrent claimants
// exactly one sees RowsAffected == 1.
func (s *BusStore) ClaimLocation(busNumber string, driverID uint, lat, lng float64, now, expiry time.Time) (bool, error) {
	res := s.db.Model(&models.Bus{}).
		Where("bus_number = ?", busNumber).
		Where("current_driver_id IS NULL OR current_driver_id = ? OR claim_expires_at < ?", driverID, now).
		Updates(map[string]interface{}{
			"current_driver_id": driverID,
			"current_lat":       lat,
			"current_lng":       lng,
			"last_updated":      now,
			"claim_expires_at":  expiry,
		})
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (s *BusStore) UpdateFields(busNumber string, fields map[string]interface{}) error {
	if stops, ok := fields["stops"].([]string); ok {
		fields["stops"] = pq.StringArray(stops)
	}
	res := s.db.Model(&models.Bus{}).Where("bus_number = ?", busNumber).Updates(fields)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}
