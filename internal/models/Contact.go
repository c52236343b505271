package models

import (
	"time"

	"gorm.io/gorm"
)

// Contact submission statuses.
const (
	ContactNew     = "new"
	ContactRead    = "read"
	ContactReplied = "replied"
)

type Contact struct {
	gorm.Model
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Subject   string     `json:"subject"`
	Message   string     `json:"message"`
	Status    string     `json:"status" gorm:"default:new"` // "new", "read", "replied"
	Reply     string     `json:"reply"`
	RepliedAt *time.Time `json:"replied_at"`
}
