package models

import (
	"testing"
	"time"
)

func TestExpirationDate(t *testing.T) {
	start := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	p := Partnership{PotentialStartDate: start, Duration: "3 years"}
	expiration, ok := p.ExpirationDate()
	if !ok {
		t.Fatal("expected a parsable duration")
	}
	want := time.Date(2027, 3, 15, 0, 0, 0, 0, time.UTC)
	if !expiration.Equal(want) {
		t.Fatalf("expiration = %v, want %v", expiration, want)
	}

	for _, duration := range []string{"", "indefinite", "zero years", "-1 years"} {
		p := Partnership{PotentialStartDate: start, Duration: duration}
		if _, ok := p.ExpirationDate(); ok {
			t.Errorf("duration %q should not parse", duration)
		}
	}
}
