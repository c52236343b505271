package store

import (
	"gorm.io/gorm"

	"campus_tracker/internal/models"
)

type NotificationStore struct {
	db *gorm.DB
}

func NewNotificationStore(db *gorm.DB) *NotificationStore {
	return &NotificationStore{db: db}
}

func (s *NotificationStore) Create(n *models.Notification) error {
	return translate(s.db.Create(n).Error)
}

func (s *NotificationStore) FindByID(id uint) (*models.Notification, error) {
	var n models.Notification
	if err := s.db.First(&n, id).Error; err != nil {
		return nil, translate(err)
	}
	return &n, nil
}

func (s *NotificationStore) Delete(id uint) error {
	res := s.db.Delete(&models.Notification{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}

func (s *NotificationStore) ListAll() ([]models.Notification, error) {
	var list []models.Notification
	if err := s.db.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, translate(err)
	}
	return list, nil
}

func (s *NotificationStore) ListByBus(busNumber string, limit int) ([]models.Notification, error) {
	var list []models.Notification
	q := s.db.Where("bus_number = ?", busNumber).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, translate(err)
	}
	return list, nil
}

func (s *NotificationStore) DeleteByContact(contactID uint, kind string) error {
	return translate(s.db.Where("contact_id = ? AND kind = ?", contactID, kind).
		Delete(&models.Notification{}).Error)
}

func (s *NotificationStore) DeleteByEmail(email, kind string) error {
	return translate(s.db.Where("user_email = ? AND kind = ?", email, kind).
		Delete(&models.Notification{}).Error)
}
