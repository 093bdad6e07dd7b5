package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rhysbell/ritual/internal/backup"
	"github.com/rhysbell/ritual/internal/logger"
	"github.com/rhysbell/ritual/internal/models"
	"github.com/rhysbell/ritual/internal/session"
	"github.com/rhysbell/ritual/internal/storage"
	"github.com/rhysbell/ritual/internal/tracker"
)

type Context struct {
	Store   storage.Provider
	Tracker *tracker.Repository
	Session *session.Manager
}

// RequireAuth returns an error when no authenticated session exists. Habit
// and stats commands are gated here, at the UI boundary; the repository
// itself does not know about accounts.
func (c *Context) RequireAuth() error {
	if !c.Session.IsAuthenticated() {
		return fmt.Errorf("not logged in, run 'ritual account login' first")
	}
	return nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	_, err := mgr.CreateBackup()
	if err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ParseWeekday parses a weekday name or ISO number (1=Monday .. 7=Sunday).
func ParseWeekday(s string) (int, error) {
	dayMap := map[string]int{
		"mon": 1, "monday": 1,
		"tue": 2, "tuesday": 2,
		"wed": 3, "wednesday": 3,
		"thu": 4, "thursday": 4,
		"fri": 5, "friday": 5,
		"sat": 6, "saturday": 6,
		"sun": 7, "sunday": 7,
	}

	key := strings.TrimSpace(strings.ToLower(s))
	if wd, ok := dayMap[key]; ok {
		return wd, nil
	}
	if num, err := strconv.Atoi(key); err == nil && num >= 1 && num <= 7 {
		return num, nil
	}
	return 0, fmt.Errorf("invalid weekday: %s", s)
}

// FormatSchedule formats a schedule into a human-readable string.
func FormatSchedule(s models.Schedule) string {
	switch s.Frequency {
	case models.FrequencyDaily:
		return "daily"
	case models.FrequencyWeekly:
		names := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
		if s.Weekday >= 1 && s.Weekday <= 7 {
			return fmt.Sprintf("weekly on %s", names[s.Weekday-1])
		}
		return "weekly"
	case models.FrequencyMonthly:
		if s.DayOfMonth > 0 {
			return fmt.Sprintf("monthly on day %d", s.DayOfMonth)
		}
		return "monthly"
	default:
		return "unknown"
	}
}
