package services

import (
	"time"

	"gorm.io/gorm"

	"partnership-management-api/models"
)

// In-memory store fakes implementing the same contracts as the GORM-backed
// stores, including the conditional-update semantics of RecordFailedLogin.

type fakeAccountStore struct {
	users      []*models.User
	err        error
	failCalls  int
	resetCalls int
}

func (s *fakeAccountStore) FindByEmail(email string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.users {
		if u.Email == email && u.DeleteAt == nil {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeAccountStore) FindByID(id uint) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.users {
		if u.UserID == id && u.DeleteAt == nil {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeAccountStore) FindPrivileged() ([]models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []models.User
	for _, u := range s.users {
		if u.DeleteAt != nil {
			continue
		}
		if u.Role == models.RoleAdmin || u.Role == models.RoleSuperAdmin {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (s *fakeAccountStore) RecordFailedLogin(email string, now time.Time) (*models.User, error) {
	s.failCalls++
	user, err := s.FindByEmail(email)
	if err != nil {
		return nil, err
	}

	resetCutoff := now.Add(-ResetWindow)
	if user.LastFailedLogin == nil || user.LastFailedLogin.Before(resetCutoff) {
		user.FailedLoginAttempts = 1
	} else {
		user.FailedLoginAttempts++
	}
	if user.FailedLoginAttempts >= MaxFailedAttempts {
		lockedUntil := now.Add(LockoutDuration)
		user.AccountLockedUntil = &lockedUntil
	}
	lastFailed := now
	user.LastFailedLogin = &lastFailed

	clone := *user
	return &clone, nil
}

func (s *fakeAccountStore) ResetLockout(userID uint) error {
	s.resetCalls++
	user, err := s.FindByID(userID)
	if err != nil {
		return err
	}
	user.FailedLoginAttempts = 0
	user.LastFailedLogin = nil
	user.AccountLockedUntil = nil
	return nil
}

type fakePreferenceStore struct {
	settings map[uint]*models.NotificationSettings
	err      error
	lookups  int
}

func (s *fakePreferenceStore) FindByUserID(userID uint) (*models.NotificationSettings, error) {
	s.lookups++
	if s.err != nil {
		return nil, s.err
	}
	if settings, ok := s.settings[userID]; ok {
		return settings, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakePreferenceStore) Upsert(settings *models.NotificationSettings) error {
	if s.err != nil {
		return s.err
	}
	if s.settings == nil {
		s.settings = make(map[uint]*models.NotificationSettings)
	}
	s.settings[settings.UserID] = settings
	return nil
}

type fakeNotificationStore struct {
	created []models.Notification
	err     error
}

func (s *fakeNotificationStore) Create(n *models.Notification) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, *n)
	return nil
}

type fakePartnershipStore struct {
	partnerships []models.Partnership
	err          error
}

func (s *fakePartnershipStore) FindActive() ([]models.Partnership, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.partnerships, nil
}
