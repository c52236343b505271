package models

import "gorm.io/gorm"

// Notification kinds.
const (
	NotifyGeneral      = "general"
	NotifyContactReply = "contact-reply"
	NotifyFeedback     = "feedback"
)

// Notification is addressed either to everyone watching a bus (BusNumber set)
// or to a single user by email (UserEmail set).
type Notification struct {
	gorm.Model
	BusNumber string `json:"bus_number"`
	UserEmail string `json:"user_email"`
	Kind      string `json:"kind" gorm:"default:general"`
	ContactID *uint  `json:"contact_id"`
	Message   string `json:"message"`
}
