package store

import (
	"gorm.io/gorm"

	"campus_tracker/internal/models"
)

type LocationEventStore struct {
	db *gorm.DB
}

func NewLocationEventStore(db *gorm.DB) *LocationEventStore {
	return &LocationEventStore{db: db}
}

func (s *LocationEventStore) Append(e *models.LocationEvent) error {
	return translate(s.db.Create(e).Error)
}
