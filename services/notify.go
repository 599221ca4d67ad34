package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"partnership-management-api/models"
)

// ErrInvalidEvent is returned when a notification event is missing its title,
// message or type, or names an unknown type. Callers log it instead of the
// event being dropped silently.
var ErrInvalidEvent = errors.New("invalid notification event")

// NotificationEvent is one logical event to deliver. UserID targets a single
// account; zero means broadcast to every Admin and SuperAdmin.
type NotificationEvent struct {
	Title   string
	Message string
	Type    string
	UserID  uint
}

// Notifier fans events out into per-recipient notification records, honoring
// each recipient's category preferences.
type Notifier struct {
	accounts      AccountStore
	prefs         PreferenceStore
	notifications NotificationStore
	now           func() time.Time
}

func NewNotifier(accounts AccountStore, prefs PreferenceStore, notifications NotificationStore) *Notifier {
	return &Notifier{
		accounts:      accounts,
		prefs:         prefs,
		notifications: notifications,
		now:           time.Now,
	}
}

// DefaultNotifier runs against the GORM-backed stores.
var DefaultNotifier = NewNotifier(gormAccountStore{}, gormPreferenceStore{}, gormNotificationStore{})

func validEventType(t string) bool {
	switch t {
	case models.NotificationTypePartnerships, models.NotificationTypeSystem, models.NotificationTypeAlerts:
		return true
	}
	return false
}

// Dispatch delivers one event. Broadcast fan-out issues one independent write
// per eligible recipient with no transactional grouping: delivery is
// best-effort, and a storage fault aborts the remaining writes without
// rolling back the ones already persisted.
func (n *Notifier) Dispatch(event NotificationEvent) error {
	if event.Title == "" || event.Message == "" || !validEventType(event.Type) {
		return ErrInvalidEvent
	}

	if event.UserID != 0 {
		return n.deliver(event, event.UserID)
	}

	recipients, err := n.accounts.FindPrivileged()
	if err != nil {
		return err
	}
	for _, recipient := range recipients {
		if err := n.deliver(event, recipient.UserID); err != nil {
			return err
		}
	}
	return nil
}

// deliver persists the event for one recipient unless their preferences
// disable the category. A missing settings row means all categories enabled.
func (n *Notifier) deliver(event NotificationEvent, userID uint) error {
	settings, err := n.prefs.FindByUserID(userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	} else if !settings.CategoryEnabled(event.Type) {
		return nil
	}

	return n.notifications.Create(&models.Notification{
		UserID:   userID,
		Title:    event.Title,
		Message:  event.Message,
		Type:     event.Type,
		IsRead:   false,
		CreateAt: n.now(),
	})
}
