package models

import "time"

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Preferences is a closed set of user preferences. Unknown keys are rejected
// at the CLI boundary rather than silently stored.
type Preferences struct {
	Theme      Theme  `json:"theme"`
	ReminderAt string `json:"reminder_at,omitempty"` // HH:MM default reminder time
}

// User is the single local account. PasswordHash holds a bcrypt hash; the
// plaintext password is never persisted.
type User struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"password_hash"`
	Preferences  Preferences `json:"preferences"`
	CreatedAt    time.Time   `json:"created_at"`
}
