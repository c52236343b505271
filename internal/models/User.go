package models

import "gorm.io/gorm"

// Roles a user can hold. Driver and admin are only ever granted through the
// approval workflow; registration itself never assigns them.
const (
	RoleStudent = "student"
	RoleDriver  = "driver"
	RoleAdmin   = "admin"
)

// Account statuses. Students are approved at registration; driver/admin
// requests start out pending until an admin decides.
const (
	StatusApproved = "approved"
	StatusPending  = "pending"
	StatusRejected = "rejected"
)

type User struct {
	gorm.Model
	Name          string `json:"name"`
	Email         string `json:"email" gorm:"uniqueIndex"`
	Password      string `json:"-"` // bcrypt hash, never serialized
	Role          string `json:"role"`           // "student", "driver", "admin"
	Status        string `json:"status"`         // "approved", "pending", "rejected"
	RequestedRole string `json:"requested_role"` // privileged role asked for at registration, "" once decided
	ApprovalNote  string `json:"approval_note"`
}

// ValidRole reports whether role is one of the known account roles.
func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleDriver, RoleAdmin:
		return true
	}
	return false
}
