package services

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"

	apperrors "ledgerly/internal/errors"
	"ledgerly/internal/models"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 72
)

// profileService holds the single user profile in memory.
type profileService struct {
	mu      sync.RWMutex
	profile models.UserProfile
	cost    int
}

// NewProfileService creates a ProfileServicer seeded with the default profile
// and password.
func NewProfileService() (ProfileServicer, error) {
	return newProfileService(bcrypt.DefaultCost)
}

func newProfileService(cost int) (*profileService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash default password: %w", err)
	}
	profile := DefaultProfile()
	profile.PasswordHash = string(hash)
	return &profileService{profile: profile, cost: cost}, nil
}

// GetProfile returns a copy of the profile.
func (s *profileService) GetProfile() models.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// UpdateProfile shallow-merges the provided fields into the profile.
func (s *profileService) UpdateProfile(update ProfileUpdate) models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := &s.profile
	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.Email != nil {
		p.Email = *update.Email
	}
	if update.Avatar != nil {
		p.Avatar = *update.Avatar
	}
	if update.Currency != nil {
		p.Currency = *update.Currency
	}
	if update.Notifications != nil {
		p.Notifications = *update.Notifications
	}
	if update.DarkMode != nil {
		p.DarkMode = *update.DarkMode
	}
	if update.Language != nil {
		p.Language = *update.Language
	}
	if update.SecurityLevel != nil {
		p.SecurityLevel = *update.SecurityLevel
	}
	if update.Preferences != nil {
		p.Preferences = *update.Preferences
	}
	return s.profile
}

// UpdatePreferences shallow-merges the provided fields into the preferences.
func (s *profileService) UpdatePreferences(update PreferencesUpdate) models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := &s.profile.Preferences
	if update.EmailNotifications != nil {
		p.EmailNotifications = *update.EmailNotifications
	}
	if update.PushNotifications != nil {
		p.PushNotifications = *update.PushNotifications
	}
	if update.MonthlyReport != nil {
		p.MonthlyReport = *update.MonthlyReport
	}
	if update.BudgetAlerts != nil {
		p.BudgetAlerts = *update.BudgetAlerts
	}
	if update.Currency != nil {
		p.Currency = *update.Currency
	}
	if update.DateFormat != nil {
		p.DateFormat = *update.DateFormat
	}
	if update.TimeFormat != nil {
		p.TimeFormat = *update.TimeFormat
	}
	return s.profile
}

// ChangePassword replaces the password after checking the current one.
func (s *profileService) ChangePassword(current, next, confirm string) error {
	if next != confirm {
		return apperrors.ErrPasswordMismatch
	}
	if len(next) < minPasswordLength || len(next) > maxPasswordLength {
		return apperrors.ErrWeakPassword
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := bcrypt.CompareHashAndPassword([]byte(s.profile.PasswordHash), []byte(current))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.cost)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.profile.PasswordHash = string(hash)
	return nil
}
