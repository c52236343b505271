package store

import (
	"gorm.io/gorm"

	"campus_tracker/internal/models"
)

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *UserStore) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *UserStore) Create(u *models.User) error {
	return translate(s.db.Create(u).Error)
}

func (s *UserStore) Save(u *models.User) error {
	return translate(s.db.Save(u).Error)
}

func (s *UserStore) Delete(id uint) error {
	res := s.db.Delete(&models.User{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}

func (s *UserStore) ListByStatus(status string) ([]models.User, error) {
	var users []models.User
	if err := s.db.Where("status = ?", status).Find(&users).Error; err != nil {
		return nil, translate(err)
	}
	return users, nil
}

func (s *UserStore) ListAll() ([]models.User, error) {
	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return nil, translate(err)
	}
	return users, nil
}
