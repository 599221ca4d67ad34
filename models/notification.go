package models

import "time"

// Notification types stored in notifications.type
const (
	NotificationTypePartnerships = "Partnerships"
	NotificationTypeSystem       = "System"
	NotificationTypeAlerts       = "Alerts"
)

type Notification struct {
	NotificationID uint      `gorm:"primaryKey;column:notification_id" json:"notification_id"`
	UserID         uint      `gorm:"column:user_id" json:"user_id"`
	Title          string    `gorm:"column:title" json:"title"`
	Message        string    `gorm:"column:message" json:"message"`
	Type           string    `gorm:"column:type" json:"type"` // Partnerships|System|Alerts
	IsRead         bool      `gorm:"column:is_read" json:"is_read"`
	CreateAt       time.Time `gorm:"column:create_at" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }

// NotificationSettings holds per-user category opt-outs. A missing row means
// every category is enabled.
type NotificationSettings struct {
	SettingsID  uint `gorm:"primaryKey;column:settings_id" json:"settings_id"`
	UserID      uint `gorm:"column:user_id;unique" json:"user_id"`
	System      bool `gorm:"column:system" json:"system"`
	Partnership bool `gorm:"column:partnership" json:"partnership"`
	Alerts      bool `gorm:"column:alerts" json:"alerts"`
}

func (NotificationSettings) TableName() string { return "notification_settings" }

// DefaultNotificationSettings returns the all-enabled settings used when a user
// has no stored row yet.
func DefaultNotificationSettings(userID uint) NotificationSettings {
	return NotificationSettings{
		UserID:      userID,
		System:      true,
		Partnership: true,
		Alerts:      true,
	}
}

// CategoryEnabled resolves a notification type against the per-category flags.
// Unknown types are treated as enabled so new categories fail open.
func (s *NotificationSettings) CategoryEnabled(notificationType string) bool {
	switch notificationType {
	case NotificationTypeSystem:
		return s.System
	case NotificationTypePartnerships:
		return s.Partnership
	case NotificationTypeAlerts:
		return s.Alerts
	}
	return true
}
