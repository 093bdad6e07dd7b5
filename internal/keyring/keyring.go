package keyring

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rhysbell/ritual/internal/constants"
	"github.com/zalando/go-keyring"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Credentials are the remembered login details for `ritual account login`.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GetCredentials retrieves remembered login credentials from the OS keyring.
// Returns ErrNotFound if none are stored.
func GetCredentials() (Credentials, error) {
	raw, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if err == keyring.ErrNotFound {
			return Credentials{}, ErrNotFound
		}
		// Wrap other keyring errors as unavailable
		return Credentials{}, fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}

	var creds Credentials
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		return Credentials{}, fmt.Errorf("failed to parse stored credentials: %w", err)
	}
	return creds, nil
}

// SetCredentials stores login credentials in the OS keyring.
func SetCredentials(creds Credentials) error {
	if creds.Email == "" || creds.Password == "" {
		return errors.New("email and password cannot be empty")
	}
	raw, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to serialize credentials: %w", err)
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, string(raw)); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// DeleteCredentials removes remembered login credentials from the OS keyring.
func DeleteCredentials() error {
	err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	// If the error is ErrNotFound, the keyring is available but empty
	// Any other error likely indicates the keyring is not available
	return err == nil || err == keyring.ErrNotFound
}
