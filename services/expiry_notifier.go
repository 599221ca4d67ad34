package services

import (
	"fmt"
	"log"
	"time"

	"partnership-management-api/models"
)

// ExpiryHorizon is how far ahead the notifier looks for ending partnerships.
const ExpiryHorizon = 30 * 24 * time.Hour

// ExpiryNotifier scans active partnerships and broadcasts an alert for each
// one ending within the horizon.
type ExpiryNotifier struct {
	partnerships PartnershipStore
	notifier     *Notifier
	now          func() time.Time
}

func NewExpiryNotifier(partnerships PartnershipStore, notifier *Notifier) *ExpiryNotifier {
	return &ExpiryNotifier{
		partnerships: partnerships,
		notifier:     notifier,
		now:          time.Now,
	}
}

// DefaultExpiryNotifier runs against the GORM-backed stores.
var DefaultExpiryNotifier = NewExpiryNotifier(gormPartnershipStore{}, DefaultNotifier)

// Run performs one scan. Partnerships whose duration cannot be parsed are
// skipped; a dispatch failure aborts the scan and is returned.
func (e *ExpiryNotifier) Run() error {
	partnerships, err := e.partnerships.FindActive()
	if err != nil {
		return err
	}

	now := e.now()
	horizon := now.Add(ExpiryHorizon)
	for i := range partnerships {
		p := &partnerships[i]
		expiration, ok := p.ExpirationDate()
		if !ok {
			continue
		}
		if expiration.After(now) && !expiration.After(horizon) {
			err := e.notifier.Dispatch(NotificationEvent{
				Title:   "Partnership Expiring Soon",
				Message: fmt.Sprintf("The partnership with %s will expire in 30 days.", p.PartnerName),
				Type:    models.NotificationTypeAlerts,
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// Start runs the scan once at startup and then every interval until stop is
// closed.
func (e *ExpiryNotifier) Start(interval time.Duration, stop <-chan struct{}) {
	run := func() {
		if err := e.Run(); err != nil {
			log.Printf("Partnership expiry scan failed: %v", err)
		}
	}

	go func() {
		run()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				run()
			case <-stop:
				return
			}
		}
	}()
}
