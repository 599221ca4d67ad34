package services

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"partnership-management-api/models"
)

// Claims carried by session tokens.
type Claims struct {
	UserID   uint    `json:"user_id"`
	Email    string  `json:"email"`
	Role     string  `json:"role"`
	CampusID *string `json:"campus_id,omitempty"`
	jwt.RegisteredClaims
}

// LoginOutcome tags the result of an authentication attempt. The HTTP layer
// maps outcomes to status codes; NotFound and InvalidCredentials must render
// the same message so the API does not leak which emails are registered.
type LoginOutcome int

const (
	LoginSuccess LoginOutcome = iota
	LoginInvalidCredentials
	LoginLocked
	LoginNotFound
)

// LoginResult is the full decision for one login attempt.
type LoginResult struct {
	Outcome           LoginOutcome
	Token             string
	User              *models.User
	RemainingAttempts int
	RemainingMinutes  int
}

// verifyPassword compares a submitted password against the stored bcrypt hash.
// Package-level so tests can observe that locked accounts never reach it.
var verifyPassword = func(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// AuthService decides login attempts against the lockout policy. It is pure
// business logic: no HTTP types, storage faults surface as errors.
type AuthService struct {
	accounts AccountStore
	now      func() time.Time
}

func NewAuthService(accounts AccountStore) *AuthService {
	return &AuthService{accounts: accounts, now: time.Now}
}

// DefaultAuthService runs against the GORM-backed account store.
var DefaultAuthService = NewAuthService(gormAccountStore{})

// Authenticate runs the login decision for one email/password pair.
//
// A locked account short-circuits before any password comparison so the
// response cannot reveal whether the password would have matched. Every
// attempt that reaches the comparison mutates the stored lockout counters.
func (s *AuthService) Authenticate(email, password string) (*LoginResult, error) {
	user, err := s.accounts.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &LoginResult{Outcome: LoginNotFound}, nil
		}
		return nil, err
	}

	now := s.now()
	if status := CheckLockout(user, now); status.Locked {
		return &LoginResult{
			Outcome:          LoginLocked,
			RemainingMinutes: status.RemainingMinutes,
		}, nil
	}

	if !verifyPassword(user.Password, password) {
		updated, err := s.accounts.RecordFailedLogin(email, now)
		if err != nil {
			return nil, err
		}

		remaining := RemainingAttempts(updated)
		if remaining <= 0 {
			return &LoginResult{
				Outcome:          LoginLocked,
				RemainingMinutes: int(LockoutDuration / time.Minute),
			}, nil
		}
		return &LoginResult{
			Outcome:           LoginInvalidCredentials,
			RemainingAttempts: remaining,
		}, nil
	}

	if err := s.accounts.ResetLockout(user.UserID); err != nil {
		return nil, err
	}
	user.FailedLoginAttempts = 0
	user.LastFailedLogin = nil
	user.AccountLockedUntil = nil

	token, err := GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Outcome: LoginSuccess,
		Token:   token,
		User:    user,
	}, nil
}

// GenerateToken issues a signed session token binding the user id, role and
// campus scope for JWT_EXPIRE_HOURS (default 24h).
func GenerateToken(user *models.User) (string, error) {
	expireHours, err := strconv.Atoi(os.Getenv("JWT_EXPIRE_HOURS"))
	if err != nil {
		expireHours = 24
	}

	claims := Claims{
		UserID:   user.UserID,
		Email:    user.Email,
		Role:     user.Role,
		CampusID: user.CampusID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expireHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// HashPassword hashes a password using bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with a stored hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
