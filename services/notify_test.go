package services

import (
	"errors"
	"testing"
	"time"

	"partnership-management-api/models"
)

func newTestNotifier(accounts *fakeAccountStore, prefs *fakePreferenceStore, notifications *fakeNotificationStore) *Notifier {
	n := NewNotifier(accounts, prefs, notifications)
	n.now = func() time.Time { return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC) }
	return n
}

func adminUser(id uint, role string) *models.User {
	return &models.User{UserID: id, Role: role, Status: models.StatusActive}
}

func TestDispatchRejectsInvalidEvents(t *testing.T) {
	notifier := newTestNotifier(&fakeAccountStore{}, &fakePreferenceStore{}, &fakeNotificationStore{})

	cases := []struct {
		name  string
		event NotificationEvent
	}{
		{"missing title", NotificationEvent{Message: "m", Type: models.NotificationTypeSystem}},
		{"missing message", NotificationEvent{Title: "t", Type: models.NotificationTypeSystem}},
		{"missing type", NotificationEvent{Title: "t", Message: "m"}},
		{"unknown type", NotificationEvent{Title: "t", Message: "m", Type: "Gossip"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := notifier.Dispatch(tc.event); !errors.Is(err, ErrInvalidEvent) {
				t.Fatalf("expected ErrInvalidEvent, got %v", err)
			}
		})
	}
}

func TestTargetedDispatchHonorsPreferences(t *testing.T) {
	disabled := &models.NotificationSettings{UserID: 7, System: true, Partnership: false, Alerts: true}

	cases := []struct {
		name        string
		settings    map[uint]*models.NotificationSettings
		wantRecords int
	}{
		{"no settings row defaults to enabled", nil, 1},
		{"category disabled", map[uint]*models.NotificationSettings{7: disabled}, 0},
		{"category enabled", map[uint]*models.NotificationSettings{7: {UserID: 7, System: true, Partnership: true, Alerts: true}}, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			notifications := &fakeNotificationStore{}
			notifier := newTestNotifier(&fakeAccountStore{}, &fakePreferenceStore{settings: tc.settings}, notifications)

			err := notifier.Dispatch(NotificationEvent{
				Title:   "Partnership Approved",
				Message: "The partnership with Example University has been approved",
				Type:    models.NotificationTypePartnerships,
				UserID:  7,
			})
			if err != nil {
				t.Fatalf("Dispatch returned error: %v", err)
			}
			if len(notifications.created) != tc.wantRecords {
				t.Fatalf("expected %d records, got %d", tc.wantRecords, len(notifications.created))
			}
			if tc.wantRecords == 1 {
				record := notifications.created[0]
				if record.UserID != 7 || record.IsRead {
					t.Fatalf("unexpected record: %+v", record)
				}
			}
		})
	}
}

func TestBroadcastFansOutPerEligibleRecipient(t *testing.T) {
	accounts := &fakeAccountStore{users: []*models.User{
		adminUser(1, models.RoleAdmin),
		adminUser(2, models.RoleAdmin),
		adminUser(3, models.RoleSuperAdmin),
		adminUser(4, models.RoleAdmin),
	}}
	// Two of four privileged accounts opted out of system notifications.
	prefs := &fakePreferenceStore{settings: map[uint]*models.NotificationSettings{
		2: {UserID: 2, System: false, Partnership: true, Alerts: true},
		4: {UserID: 4, System: false, Partnership: true, Alerts: true},
	}}
	notifications := &fakeNotificationStore{}
	notifier := newTestNotifier(accounts, prefs, notifications)

	err := notifier.Dispatch(NotificationEvent{
		Title:   "Maintenance Window",
		Message: "The portal will be unavailable on Saturday",
		Type:    models.NotificationTypeSystem,
	})
	if err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}

	if len(notifications.created) != 2 {
		t.Fatalf("expected 2 records (4 admins - 2 opted out), got %d", len(notifications.created))
	}

	got := map[uint]bool{}
	for _, record := range notifications.created {
		got[record.UserID] = true
	}
	if !got[1] || !got[3] {
		t.Fatalf("wrong recipients: %v", got)
	}

	// Each recipient requires its own preference lookup.
	if prefs.lookups != 4 {
		t.Fatalf("expected 4 preference lookups, got %d", prefs.lookups)
	}
}

func TestBroadcastPropagatesStorageFault(t *testing.T) {
	accounts := &fakeAccountStore{users: []*models.User{adminUser(1, models.RoleAdmin)}}
	storageErr := errors.New("connection reset")
	notifications := &fakeNotificationStore{err: storageErr}
	notifier := newTestNotifier(accounts, &fakePreferenceStore{}, notifications)

	err := notifier.Dispatch(NotificationEvent{
		Title:   "Maintenance Window",
		Message: "m",
		Type:    models.NotificationTypeSystem,
	})
	if !errors.Is(err, storageErr) {
		t.Fatalf("expected storage fault to propagate, got %v", err)
	}
}
