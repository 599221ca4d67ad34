package services

import (
	"time"

	"partnership-management-api/models"
)

// Lockout policy: five consecutive failures inside the ten-minute reset window
// lock the account for fifteen minutes.
const (
	MaxFailedAttempts = 5
	LockoutDuration   = 15 * time.Minute
	ResetWindow       = 10 * time.Minute
)

// LockoutStatus is the answer to "may this account attempt a login right now".
type LockoutStatus struct {
	Locked           bool `json:"locked"`
	RemainingMinutes int  `json:"remaining_minutes"`
}

// IsAccountLocked reports whether the account is inside an active lockout
// window. A stale account_locked_until in the past means unlocked; the column
// is left as-is until the next failure or success rewrites it.
func IsAccountLocked(user *models.User, now time.Time) bool {
	if user.AccountLockedUntil == nil {
		return false
	}
	return now.Before(*user.AccountLockedUntil)
}

// RemainingLockoutMinutes returns the minutes left until unlock, rounded up,
// never negative.
func RemainingLockoutMinutes(user *models.User, now time.Time) int {
	if user.AccountLockedUntil == nil {
		return 0
	}
	remaining := user.AccountLockedUntil.Sub(now)
	minutes := int((remaining + time.Minute - 1) / time.Minute)
	if minutes < 0 {
		return 0
	}
	return minutes
}

// RemainingAttempts returns how many failures are left before lockout.
func RemainingAttempts(user *models.User) int {
	remaining := MaxFailedAttempts - user.FailedLoginAttempts
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CheckLockout inspects the account without mutating any stored state.
func CheckLockout(user *models.User, now time.Time) LockoutStatus {
	if !IsAccountLocked(user, now) {
		return LockoutStatus{}
	}
	return LockoutStatus{
		Locked:           true,
		RemainingMinutes: RemainingLockoutMinutes(user, now),
	}
}
