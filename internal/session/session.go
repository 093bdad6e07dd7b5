// Package session owns the single local account and the authentication
// marker. Unlike the habit repository, its failures are user-facing: every
// operation returns a typed error the CLI can render specifically.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rhysbell/ritual/internal/constants"
	"github.com/rhysbell/ritual/internal/models"
	"github.com/rhysbell/ritual/internal/storage"
	"github.com/rhysbell/ritual/internal/validation"
)

var (
	// ErrDuplicateAccount is returned by Register when the stored account
	// already uses the given email.
	ErrDuplicateAccount = errors.New("an account with this email already exists")
	// ErrNoAccount is returned by Login when no account has been registered.
	ErrNoAccount = errors.New("no account registered")
	// ErrInvalidCredentials is returned when email or password do not match.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotFound is returned by profile operations when no account exists.
	ErrNotFound = errors.New("no current user")
)

// ProfileUpdate carries a shallow profile merge; nil fields are left as-is.
type ProfileUpdate struct {
	Name  *string
	Email *string
}

// PreferencesUpdate carries a nested shallow merge into the preferences
// struct; nil fields are left as-is.
type PreferencesUpdate struct {
	Theme      *models.Theme
	ReminderAt *string
}

// Manager owns the user blob, the auth marker key, and the theme mirror key.
type Manager struct {
	store storage.Provider
}

func NewManager(store storage.Provider) *Manager {
	return &Manager{
		store: store,
	}
}

// Register creates the local account, persists it, and marks the session as
// authenticated. Registering with the email of the existing account fails
// with ErrDuplicateAccount; a different email replaces the single-slot
// record.
func (m *Manager) Register(name, email, password string) (models.User, error) {
	if err := validation.ValidateName(name); err != nil {
		return models.User{}, err
	}
	if err := validation.ValidateEmail(email); err != nil {
		return models.User{}, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return models.User{}, err
	}

	if existing, err := m.CurrentUser(); err == nil && existing.Email == email {
		return models.User{}, ErrDuplicateAccount
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Preferences: models.Preferences{
			Theme: models.ThemeLight,
		},
		CreatedAt: time.Now(),
	}

	if err := m.saveUser(user); err != nil {
		return models.User{}, err
	}
	if err := m.store.Set(constants.KeyAuth, constants.AuthMarkerValue); err != nil {
		return models.User{}, fmt.Errorf("failed to set auth marker: %w", err)
	}

	return user, nil
}

// Login verifies credentials against the stored account and sets the auth
// marker. ErrNoAccount and ErrInvalidCredentials are distinguished so the UI
// can render a specific message.
func (m *Manager) Login(email, password string) (models.User, error) {
	user, err := m.CurrentUser()
	if err != nil {
		return models.User{}, err
	}

	if user.Email != email ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}

	if err := m.store.Set(constants.KeyAuth, constants.AuthMarkerValue); err != nil {
		return models.User{}, fmt.Errorf("failed to set auth marker: %w", err)
	}

	return user, nil
}

// Logout clears the auth marker. The profile and habit data are untouched;
// wiping local data is the separate WipeData operation.
func (m *Manager) Logout() error {
	if err := m.store.Remove(constants.KeyAuth); err != nil {
		return fmt.Errorf("failed to clear auth marker: %w", err)
	}
	return nil
}

// IsAuthenticated reports whether the auth marker is set.
func (m *Manager) IsAuthenticated() bool {
	value, err := m.store.Get(constants.KeyAuth)
	return err == nil && value == constants.AuthMarkerValue
}

// CurrentUser returns the stored account, or ErrNoAccount if none exists.
func (m *Manager) CurrentUser() (models.User, error) {
	raw, err := m.store.Get(constants.KeyUser)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return models.User{}, ErrNoAccount
		}
		return models.User{}, fmt.Errorf("failed to read user: %w", err)
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return models.User{}, fmt.Errorf("failed to parse user: %w", err)
	}
	return user, nil
}

// UpdateProfile merges the non-nil fields into the stored record.
func (m *Manager) UpdateProfile(update ProfileUpdate) (models.User, error) {
	user, err := m.CurrentUser()
	if err != nil {
		if errors.Is(err, ErrNoAccount) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}

	if update.Name != nil {
		if err := validation.ValidateName(*update.Name); err != nil {
			return models.User{}, err
		}
		user.Name = *update.Name
	}
	if update.Email != nil {
		if err := validation.ValidateEmail(*update.Email); err != nil {
			return models.User{}, err
		}
		user.Email = *update.Email
	}

	if err := m.saveUser(user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// ChangePassword verifies the current password before storing a hash of the
// new one.
func (m *Manager) ChangePassword(current, updated string) error {
	user, err := m.CurrentUser()
	if err != nil {
		if errors.Is(err, ErrNoAccount) {
			return ErrNotFound
		}
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return ErrInvalidCredentials
	}
	if err := validation.ValidatePassword(updated); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(updated), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hash)

	return m.saveUser(user)
}

// UpdatePreferences merges the non-nil fields into the stored preferences.
// Preference keys absent from the update are preserved. The theme choice is
// mirrored to its own storage key so it can be read before login.
func (m *Manager) UpdatePreferences(update PreferencesUpdate) (models.User, error) {
	user, err := m.CurrentUser()
	if err != nil {
		if errors.Is(err, ErrNoAccount) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}

	if update.Theme != nil {
		if *update.Theme != models.ThemeLight && *update.Theme != models.ThemeDark {
			return models.User{}, fmt.Errorf("invalid theme: %s", *update.Theme)
		}
		user.Preferences.Theme = *update.Theme
	}
	if update.ReminderAt != nil {
		user.Preferences.ReminderAt = *update.ReminderAt
	}

	if err := m.saveUser(user); err != nil {
		return models.User{}, err
	}

	if update.Theme != nil {
		if err := m.store.Set(constants.KeyTheme, string(*update.Theme)); err != nil {
			return models.User{}, fmt.Errorf("failed to save theme preference: %w", err)
		}
	}

	return user, nil
}

// Theme returns the persisted theme preference, defaulting to light.
func (m *Manager) Theme() models.Theme {
	value, err := m.store.Get(constants.KeyTheme)
	if err != nil || models.Theme(value) != models.ThemeDark {
		return models.ThemeLight
	}
	return models.ThemeDark
}

// WipeData removes the habit and log blobs. This is deliberately separate
// from Logout.
func (m *Manager) WipeData() error {
	if err := m.store.Remove(constants.KeyHabitLogs); err != nil {
		return fmt.Errorf("failed to remove habit logs: %w", err)
	}
	if err := m.store.Remove(constants.KeyHabits); err != nil {
		return fmt.Errorf("failed to remove habits: %w", err)
	}
	return nil
}

func (m *Manager) saveUser(user models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to serialize user: %w", err)
	}
	if err := m.store.Set(constants.KeyUser, string(raw)); err != nil {
		return fmt.Errorf("failed to write user: %w", err)
	}
	return nil
}
