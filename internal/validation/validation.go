// Package validation holds the pre-storage field checks. Failures here are
// surfaced synchronously to the caller and nothing invalid is ever persisted.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rhysbell/ritual/internal/models"
	"github.com/rhysbell/ritual/internal/utils"
)

const MinPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateHabit checks a habit before it reaches storage.
func ValidateHabit(h models.Habit) error {
	if strings.TrimSpace(h.Title) == "" {
		return fmt.Errorf("habit title cannot be empty")
	}
	if err := ValidateSchedule(h.Schedule); err != nil {
		return err
	}
	if h.ReminderAt != "" && !utils.ValidateTimeFormat(h.ReminderAt) {
		return fmt.Errorf("invalid reminder time: %s (expected HH:MM)", h.ReminderAt)
	}
	return nil
}

// ValidateSchedule checks the schedule variant's fields.
func ValidateSchedule(s models.Schedule) error {
	switch s.Frequency {
	case models.FrequencyDaily:
		return nil
	case models.FrequencyWeekly:
		if s.Weekday < 1 || s.Weekday > 7 {
			return fmt.Errorf("weekly habits need a weekday between 1 (Monday) and 7 (Sunday), got %d", s.Weekday)
		}
		return nil
	case models.FrequencyMonthly:
		if s.DayOfMonth == models.DayOfMonthAny {
			return nil
		}
		if s.DayOfMonth < 1 || s.DayOfMonth > 31 {
			return fmt.Errorf("monthly habits need a day of month between 1 and 31, or 0 for every day, got %d", s.DayOfMonth)
		}
		return nil
	default:
		return fmt.Errorf("invalid frequency: %s", s.Frequency)
	}
}

// ValidateName checks a user display name.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	return nil
}

// ValidateEmail checks the shape of an email address.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("invalid email address: %s", email)
	}
	return nil
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}
