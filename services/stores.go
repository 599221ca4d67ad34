package services

import (
	"time"

	"partnership-management-api/config"
	"partnership-management-api/models"
)

// AccountStore is the user-record contract the security core depends on.
// Implementations must return gorm.ErrRecordNotFound-compatible errors for
// missing rows so callers can distinguish absence from storage faults.
type AccountStore interface {
	FindByEmail(email string) (*models.User, error)
	FindByID(id uint) (*models.User, error)
	FindPrivileged() ([]models.User, error)
	RecordFailedLogin(email string, now time.Time) (*models.User, error)
	ResetLockout(userID uint) error
}

// PreferenceStore is the per-user notification settings contract.
type PreferenceStore interface {
	FindByUserID(userID uint) (*models.NotificationSettings, error)
	Upsert(settings *models.NotificationSettings) error
}

// NotificationStore persists materialized notification records.
type NotificationStore interface {
	Create(n *models.Notification) error
}

// PartnershipStore is consumed by the expiry notifier.
type PartnershipStore interface {
	FindActive() ([]models.Partnership, error)
}

type gormAccountStore struct{}

func (gormAccountStore) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := config.DB.Where("email = ? AND delete_at IS NULL", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (gormAccountStore) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (gormAccountStore) FindPrivileged() ([]models.User, error) {
	var users []models.User
	err := config.DB.
		Where("role IN ? AND delete_at IS NULL", []string{models.RoleAdmin, models.RoleSuperAdmin}).
		Find(&users).Error
	return users, err
}

// RecordFailedLogin applies the failure transition as a single conditional
// UPDATE so concurrent wrong-password attempts cannot undercount. The new
// attempt count is computed from the stored columns: reset to 1 when the last
// failure is older than the reset window, otherwise incremented; the lock
// timestamp is set in the same statement once the count reaches the threshold.
// MySQL evaluates SET assignments left to right, so account_locked_until and
// failed_login_attempts are assigned before last_failed_login is touched.
func (gormAccountStore) RecordFailedLogin(email string, now time.Time) (*models.User, error) {
	resetCutoff := now.Add(-ResetWindow)
	lockedUntil := now.Add(LockoutDuration)

	err := config.DB.Exec(`
		UPDATE users SET
			account_locked_until = IF(
				IF(last_failed_login IS NULL OR last_failed_login < ?, 1, failed_login_attempts + 1) >= ?,
				?, account_locked_until),
			failed_login_attempts = IF(last_failed_login IS NULL OR last_failed_login < ?, 1, failed_login_attempts + 1),
			last_failed_login = ?
		WHERE email = ? AND delete_at IS NULL`,
		resetCutoff, MaxFailedAttempts, lockedUntil, resetCutoff, now, email,
	).Error
	if err != nil {
		return nil, err
	}

	return gormAccountStore{}.FindByEmail(email)
}

func (gormAccountStore) ResetLockout(userID uint) error {
	return config.DB.Model(&models.User{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"failed_login_attempts": 0,
			"last_failed_login":     nil,
			"account_locked_until":  nil,
		}).Error
}

type gormPreferenceStore struct{}

func (gormPreferenceStore) FindByUserID(userID uint) (*models.NotificationSettings, error) {
	var settings models.NotificationSettings
	if err := config.DB.Where("user_id = ?", userID).First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (gormPreferenceStore) Upsert(settings *models.NotificationSettings) error {
	var existing models.NotificationSettings
	err := config.DB.Where("user_id = ?", settings.UserID).First(&existing).Error
	if err == nil {
		settings.SettingsID = existing.SettingsID
		return config.DB.Save(settings).Error
	}
	return config.DB.Create(settings).Error
}

type gormNotificationStore struct{}

func (gormNotificationStore) Create(n *models.Notification) error {
	return config.DB.Create(n).Error
}

type gormPartnershipStore struct{}

func (gormPartnershipStore) FindActive() ([]models.Partnership, error) {
	var partnerships []models.Partnership
	err := config.DB.
		Where("status = ? AND is_archived = ?", models.PartnershipActive, false).
		Find(&partnerships).Error
	return partnerships, err
}
