package store

import (
	"gorm.io/gorm"

	"campus_tracker/internal/models"
)

type ContactStore struct {
	db *gorm.DB
}

func NewContactStore(db *gorm.DB) *ContactStore {
	return &ContactStore{db: db}
}

func (s *ContactStore) Create(c *models.Contact) error {
	return translate(s.db.Create(c).Error)
}

func (s *ContactStore) FindByID(id uint) (*models.Contact, error) {
	var c models.Contact
	if err := s.db.First(&c, id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *ContactStore) Save(c *models.Contact) error {
	return translate(s.db.Save(c).Error)
}

func (s *ContactStore) Delete(id uint) error {
	res := s.db.Delete(&models.Contact{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}

func (s *ContactStore) ListAll() ([]models.Contact, error) {
	var list []models.Contact
	if err := s.db.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, translate(err)
	}
	return list, nil
}
