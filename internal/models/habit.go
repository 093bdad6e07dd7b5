package models

import "time"

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// DayOfMonthAny marks a monthly schedule as active every day. Records
// created before DayOfMonth existed carry the zero value and get this
// behavior.
const DayOfMonthAny = 0

// Schedule is the single authoritative schedule representation. Weekday is
// only meaningful for weekly habits (ISO numbering, Monday=1 .. Sunday=7);
// DayOfMonth only for monthly habits.
type Schedule struct {
	Frequency  Frequency `json:"frequency"`
	Weekday    int       `json:"weekday,omitempty"`
	DayOfMonth int       `json:"day_of_month,omitempty"`
}

// ISOWeekday returns the ISO weekday number for t (Monday=1 .. Sunday=7).
// Go's time.Weekday counts Sunday as 0, so Sunday is remapped to 7.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// ActiveOn reports whether the schedule includes the given date.
func (s Schedule) ActiveOn(t time.Time) bool {
	switch s.Frequency {
	case FrequencyWeekly:
		return s.Weekday == ISOWeekday(t)
	case FrequencyMonthly:
		if s.DayOfMonth == DayOfMonthAny {
			return true
		}
		return t.Day() == s.DayOfMonth
	default:
		return true
	}
}

// Habit represents a recurring practice to track.
type Habit struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	Color       string    `json:"color,omitempty"`
	Schedule    Schedule  `json:"schedule"`
	ReminderAt  string    `json:"reminder_at,omitempty"` // HH:MM; stored only, never scheduled
	CreatedAt   time.Time `json:"created_at"`
	IsArchived  bool      `json:"is_archived"`
}

// HabitLog records whether a habit was completed on a calendar day.
type HabitLog struct {
	ID        string `json:"id"`
	HabitID   string `json:"habit_id"`
	Date      string `json:"date"` // YYYY-MM-DD format
	Completed bool   `json:"completed"`
	Notes     string `json:"notes,omitempty"`
}
