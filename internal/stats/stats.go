// Package stats computes derived views over in-memory habit and log
// collections. Everything here is pure and deterministic; callers may
// recompute on every render.
package stats

import (
	"time"

	"github.com/rhysbell/ritual/internal/models"
	"github.com/rhysbell/ritual/internal/utils"
)

// HabitStats summarizes one habit over a look-back window.
type HabitStats struct {
	CompletionRate float64 // percent of window days completed
	Streak         int     // consecutive completed days ending today
	Total          int     // completed logs inside the window
}

// DayCompletion is one bar of the weekly histogram.
type DayCompletion struct {
	Day   time.Time
	Label string // single-letter weekday label
	Rate  float64
}

// WeekSummary is the Monday-starting histogram for the week containing the
// reference date.
type WeekSummary struct {
	Days    []DayCompletion
	Average float64
}

// ActiveOn filters habits down to those whose schedule includes the given
// date. Archived habits never qualify.
func ActiveOn(habits []models.Habit, date time.Time) []models.Habit {
	active := make([]models.Habit, 0, len(habits))
	for _, h := range habits {
		if h.IsArchived {
			continue
		}
		if h.Schedule.ActiveOn(date) {
			active = append(active, h)
		}
	}
	return active
}

// CompletionRate returns the percentage of active habits with a completed log
// in logs. Defined as 0 when no habits are active.
func CompletionRate(active []models.Habit, logs []models.HabitLog) float64 {
	if len(active) == 0 {
		return 0
	}
	completed := 0
	for _, l := range logs {
		if l.Completed {
			completed++
		}
	}
	return float64(completed) / float64(len(active)) * 100
}

// WeekOverview computes the completion rate for each day of the week
// containing ref (Monday first) and the 7-day average.
func WeekOverview(habits []models.Habit, logs []models.HabitLog, ref time.Time) WeekSummary {
	logsByDay := make(map[string][]models.HabitLog)
	for _, l := range logs {
		day := utils.DayPart(l.Date)
		logsByDay[day] = append(logsByDay[day], l)
	}

	start := utils.StartOfWeek(ref)
	summary := WeekSummary{Days: make([]DayCompletion, 0, 7)}
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		active := ActiveOn(habits, day)
		rate := CompletionRate(active, logsByDay[utils.DayString(day)])
		summary.Days = append(summary.Days, DayCompletion{
			Day:   day,
			Label: day.Weekday().String()[:1],
			Rate:  rate,
		})
		summary.Average += rate
	}
	summary.Average /= 7

	return summary
}

// Streak counts consecutive days with a completed log, walking backward from
// now. The walk stops at the first day without one; today breaking the chain
// means a streak of zero.
func Streak(logs []models.HabitLog, now time.Time, windowDays int) int {
	completedByDay := make(map[string]bool)
	for _, l := range logs {
		day := utils.DayPart(l.Date)
		if l.Completed {
			completedByDay[day] = true
		}
	}

	streak := 0
	for i := 0; i < windowDays; i++ {
		day := utils.DayString(now.AddDate(0, 0, -i))
		if !completedByDay[day] {
			break
		}
		streak++
	}
	return streak
}

// ForHabit summarizes one habit's logs over the last windowDays days.
func ForHabit(logs []models.HabitLog, now time.Time, windowDays int) HabitStats {
	if windowDays <= 0 {
		return HabitStats{}
	}

	windowStart := now.AddDate(0, 0, -windowDays)
	recent := make([]models.HabitLog, 0, len(logs))
	for _, l := range logs {
		day, err := utils.ParseDay(l.Date)
		if err != nil {
			continue
		}
		if !day.Before(windowStart) {
			recent = append(recent, l)
		}
	}

	total := 0
	for _, l := range recent {
		if l.Completed {
			total++
		}
	}

	return HabitStats{
		CompletionRate: float64(total) / float64(windowDays) * 100,
		Streak:         Streak(recent, now, windowDays),
		Total:          total,
	}
}
