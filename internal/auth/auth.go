// Package auth implements the account gate: registration with email and
// password validation, and credential checks against the store.
package auth

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/greenbelt-labs/dmaic/internal/store"
)

// Sentinel errors. Login failures collapse to ErrInvalidCredentials so the
// response never reveals whether an email is registered.
var (
	ErrInvalidEmail       = errors.New("auth: invalid email address")
	ErrWeakPassword       = errors.New("auth: password does not meet the policy")
	ErrNameRequired       = errors.New("auth: name is required")
	ErrEmailTaken         = errors.New("auth: email already registered")
	ErrInvalidCredentials = errors.New("auth: invalid email or password")
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks the address shape.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidatePassword enforces the password policy: at least 8 characters with
// one upper-case letter, one lower-case letter and one digit.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: at least 8 characters required", ErrWeakPassword)
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasUpper {
		return fmt.Errorf("%w: an upper-case letter is required", ErrWeakPassword)
	}
	if !hasLower {
		return fmt.Errorf("%w: a lower-case letter is required", ErrWeakPassword)
	}
	if !hasDigit {
		return fmt.Errorf("%w: a digit is required", ErrWeakPassword)
	}
	return nil
}

// Service performs registration and login against the store.
type Service struct {
	store store.Store
}

// NewService creates an auth service.
func NewService(s store.Store) *Service {
	return &Service{store: s}
}

// Register validates the input, hashes the password and persists the user.
func (s *Service) Register(email, password, name, company string) (*store.User, error) {
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &store.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		Company:      strings.TrimSpace(company),
		PasswordHash: hash,
	}
	if err := s.store.CreateUser(u); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// Authenticate verifies credentials and returns the account on success.
func (s *Service) Authenticate(email, password string) (*store.User, error) {
	u, err := s.store.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}
