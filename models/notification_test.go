package models

import "testing"

func TestCategoryEnabled(t *testing.T) {
	settings := NotificationSettings{System: false, Partnership: true, Alerts: false}

	cases := []struct {
		notificationType string
		want             bool
	}{
		{NotificationTypeSystem, false},
		{NotificationTypePartnerships, true},
		{NotificationTypeAlerts, false},
		{"SomethingNew", true}, // unknown categories fail open
	}

	for _, tc := range cases {
		if got := settings.CategoryEnabled(tc.notificationType); got != tc.want {
			t.Errorf("CategoryEnabled(%q) = %v, want %v", tc.notificationType, got, tc.want)
		}
	}
}

func TestDefaultNotificationSettings(t *testing.T) {
	settings := DefaultNotificationSettings(42)
	if settings.UserID != 42 {
		t.Fatalf("unexpected user id %d", settings.UserID)
	}
	if !settings.System || !settings.Partnership || !settings.Alerts {
		t.Fatalf("defaults must enable every category: %+v", settings)
	}
}
