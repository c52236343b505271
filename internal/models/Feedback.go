package models

import "gorm.io/gorm"

type Feedback struct {
	gorm.Model
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}
