package utils

import (
	"strings"
	"time"

	"github.com/rhysbell/ritual/internal/constants"
	"github.com/rhysbell/ritual/internal/models"
)

// Today returns today's date string (YYYY-MM-DD) in the local timezone.
func Today() string {
	return time.Now().Format(constants.DateFormat)
}

// DayString formats t as a calendar-day string (YYYY-MM-DD).
func DayString(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// DayPart truncates an ISO date string to its calendar-day portion.
// "2024-03-05T15:30:00" and "2024-03-05" both yield "2024-03-05".
func DayPart(date string) string {
	day, _, _ := strings.Cut(date, "T")
	return day
}

// ParseDay parses a YYYY-MM-DD date string. A trailing time component is
// ignored.
func ParseDay(date string) (time.Time, error) {
	return time.Parse(constants.DateFormat, DayPart(date))
}

// ValidateDateFormat checks if the string matches the standard date format.
func ValidateDateFormat(date string) bool {
	_, err := time.Parse(constants.DateFormat, date)
	return err == nil
}

// ValidateTimeFormat checks if the string matches the standard time format (HH:MM).
func ValidateTimeFormat(timeStr string) bool {
	_, err := time.Parse(constants.TimeFormat, timeStr)
	return err == nil
}

// StartOfWeek returns midnight on the Monday of t's week.
func StartOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -(models.ISOWeekday(t) - 1))
}
