package store

import (
	"gorm.io/gorm"

	"campus_tracker/internal/models"
)

type FeedbackStore struct {
	db *gorm.DB
}

func NewFeedbackStore(db *gorm.DB) *FeedbackStore {
	return &FeedbackStore{db: db}
}

func (s *FeedbackStore) Create(f *models.Feedback) error {
	return translate(s.db.Create(f).Error)
}

func (s *FeedbackStore) FindByID(id uint) (*models.Feedback, error) {
	var f models.Feedback
	if err := s.db.First(&f, id).Error; err != nil {
		return nil, translate(err)
	}
	return &f, nil
}

func (s *FeedbackStore) Delete(id uint) error {
	res := s.db.Delete(&models.Feedback{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}

func (s *FeedbackStore) ListAll() ([]models.Feedback, error) {
	var list []models.Feedback
	if err := s.db.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, translate(err)
	}
	return list, nil
}
