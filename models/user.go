package models

import (
	"time"
)

// Role values stored in users.role
const (
	RoleAdmin      = "Admin"
	RoleSuperAdmin = "SuperAdmin"
)

// Account status values stored in users.status
const (
	StatusPending  = "pending"
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type User struct {
	UserID    uint    `gorm:"primaryKey;column:user_id" json:"user_id"`
	FirstName string  `gorm:"column:first_name" json:"first_name"`
	LastName  string  `gorm:"column:last_name" json:"last_name"`
	Email     string  `gorm:"column:email;unique" json:"email"`
	Password  string  `gorm:"column:password" json:"-"`
	Role      string  `gorm:"column:role" json:"role"`           // Admin|SuperAdmin
	CampusID  *string `gorm:"column:campus_id" json:"campus_id"` // nil for SuperAdmin
	Status    string  `gorm:"column:status" json:"status"`       // pending|active|inactive

	// Login attempt tracking
	FailedLoginAttempts int        `gorm:"column:failed_login_attempts" json:"-"`
	LastFailedLogin     *time.Time `gorm:"column:last_failed_login" json:"-"`
	AccountLockedUntil  *time.Time `gorm:"column:account_locked_until" json:"-"`

	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// IsSuperAdmin reports whether the user holds the SuperAdmin role.
func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

// IsActive reports whether the account may perform mutating partnership actions.
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}
