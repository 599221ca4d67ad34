package services

import (
	"testing"
	"time"

	"partnership-management-api/models"
)

func activePartnership(name string, start time.Time, duration string) models.Partnership {
	return models.Partnership{
		PartnerName:        name,
		PotentialStartDate: start,
		Duration:           duration,
		Status:             models.PartnershipActive,
	}
}

func TestExpiryNotifierAlertsOnlyInsideHorizon(t *testing.T) {
	now := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	partnerships := &fakePartnershipStore{partnerships: []models.Partnership{
		// Expires in 10 days: should alert.
		activePartnership("Near University", now.AddDate(-1, 0, 10), "1 year"),
		// Expires in 60 days: outside the horizon.
		activePartnership("Far Institute", now.AddDate(-2, 0, 60), "2 years"),
		// Already expired: no alert.
		activePartnership("Past Labs", now.AddDate(-1, -1, 0), "1 year"),
		// Unparsable duration: skipped.
		activePartnership("Odd Org", now, "indefinite"),
	}}

	accounts := &fakeAccountStore{users: []*models.User{adminUser(1, models.RoleSuperAdmin)}}
	notifications := &fakeNotificationStore{}
	notifier := NewExpiryNotifier(partnerships, newTestNotifier(accounts, &fakePreferenceStore{}, notifications))
	notifier.now = func() time.Time { return now }

	if err := notifier.Run(); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if len(notifications.created) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(notifications.created))
	}

	record := notifications.created[0]
	if record.Type != models.NotificationTypeAlerts {
		t.Fatalf("expected Alerts type, got %q", record.Type)
	}
	if record.Title != "Partnership Expiring Soon" {
		t.Fatalf("unexpected title %q", record.Title)
	}
}

func TestExpiryNotifierRespectsAlertPreferences(t *testing.T) {
	now := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	partnerships := &fakePartnershipStore{partnerships: []models.Partnership{
		activePartnership("Near University", now.AddDate(-1, 0, 10), "1 year"),
	}}
	accounts := &fakeAccountStore{users: []*models.User{
		adminUser(1, models.RoleAdmin),
		adminUser(2, models.RoleAdmin),
	}}
	prefs := &fakePreferenceStore{settings: map[uint]*models.NotificationSettings{
		2: {UserID: 2, System: true, Partnership: true, Alerts: false},
	}}
	notifications := &fakeNotificationStore{}
	notifier := NewExpiryNotifier(partnerships, newTestNotifier(accounts, prefs, notifications))
	notifier.now = func() time.Time { return now }

	if err := notifier.Run(); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if len(notifications.created) != 1 {
		t.Fatalf("expected 1 record for the opted-in admin, got %d", len(notifications.created))
	}
	if notifications.created[0].UserID != 1 {
		t.Fatalf("expected recipient 1, got %d", notifications.created[0].UserID)
	}
}
