package stats

import (
	"testing"
	"time"

	"github.com/rhysbell/ritual/internal/models"
)

func daily(id string) models.Habit {
	return models.Habit{
		ID:       id,
		Title:    id,
		Schedule: models.Schedule{Frequency: models.FrequencyDaily},
	}
}

func completedLog(habitID, date string) models.HabitLog {
	return models.HabitLog{
		ID:        habitID + "_" + date,
		HabitID:   habitID,
		Date:      date,
		Completed: true,
	}
}

func TestActiveOn(t *testing.T) {
	monday := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC) // a Monday
	sunday := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	habits := []models.Habit{
		daily("everyday"),
		{ID: "mondays", Schedule: models.Schedule{Frequency: models.FrequencyWeekly, Weekday: 1}},
		{ID: "sundays", Schedule: models.Schedule{Frequency: models.FrequencyWeekly, Weekday: 7}},
		{ID: "payday", Schedule: models.Schedule{Frequency: models.FrequencyMonthly, DayOfMonth: 4}},
		{ID: "legacy-monthly", Schedule: models.Schedule{Frequency: models.FrequencyMonthly}},
		{ID: "archived", Schedule: models.Schedule{Frequency: models.FrequencyDaily}, IsArchived: true},
	}

	got := ActiveOn(habits, monday)
	want := map[string]bool{"everyday": true, "mondays": true, "payday": true, "legacy-monthly": true}
	if len(got) != len(want) {
		t.Fatalf("expected %d active habits on Monday, got %d", len(want), len(got))
	}
	for _, h := range got {
		if !want[h.ID] {
			t.Errorf("unexpected active habit %q on Monday", h.ID)
		}
	}

	// Go counts Sunday as weekday 0; it must match ISO weekday 7
	foundSunday := false
	for _, h := range ActiveOn(habits, sunday) {
		if h.ID == "sundays" {
			foundSunday = true
		}
		if h.ID == "mondays" {
			t.Error("Monday habit active on Sunday")
		}
	}
	if !foundSunday {
		t.Error("Sunday habit not active on Sunday")
	}
}

func TestCompletionRate(t *testing.T) {
	if rate := CompletionRate(nil, nil); rate != 0 {
		t.Errorf("expected 0 for no active habits, got %v", rate)
	}

	active := []models.Habit{daily("a"), daily("b")}
	logs := []models.HabitLog{
		completedLog("a", "2024-03-04"),
		{ID: "x", HabitID: "b", Date: "2024-03-04", Completed: false},
	}
	if rate := CompletionRate(active, logs); rate != 50 {
		t.Errorf("expected 50%%, got %v", rate)
	}
}

func TestStreak(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	logs := []models.HabitLog{
		completedLog("h", "2024-03-10"),
		completedLog("h", "2024-03-09"),
		completedLog("h", "2024-03-08"),
		// gap on the 7th
		completedLog("h", "2024-03-06"),
	}
	if got := Streak(logs, now, 30); got != 3 {
		t.Errorf("expected streak 3, got %d", got)
	}

	// Today incomplete breaks the chain entirely
	if got := Streak(logs[1:], now, 30); got != 0 {
		t.Errorf("expected streak 0 when today is missing, got %d", got)
	}

	// Uncompleted logs do not count
	uncompleted := []models.HabitLog{{ID: "u", HabitID: "h", Date: "2024-03-10"}}
	if got := Streak(uncompleted, now, 30); got != 0 {
		t.Errorf("expected streak 0 for uncompleted log, got %d", got)
	}
}

func TestForHabit(t *testing.T) {
	now := time.Date(2024, 3, 30, 12, 0, 0, 0, time.UTC)

	logs := []models.HabitLog{
		completedLog("h", "2024-03-30"),
		completedLog("h", "2024-03-29"),
		completedLog("h", "2024-01-01"), // outside the window
	}

	got := ForHabit(logs, now, 30)
	if got.Total != 2 {
		t.Errorf("expected 2 completions inside window, got %d", got.Total)
	}
	if got.Streak != 2 {
		t.Errorf("expected streak 2, got %d", got.Streak)
	}
	wantRate := float64(2) / 30 * 100
	if got.CompletionRate != wantRate {
		t.Errorf("expected rate %v, got %v", wantRate, got.CompletionRate)
	}

	if got := ForHabit(logs, now, 0); got != (HabitStats{}) {
		t.Errorf("expected zero stats for empty window, got %+v", got)
	}
}

func TestWeekOverview(t *testing.T) {
	// Wednesday March 6th 2024
	ref := time.Date(2024, 3, 6, 18, 0, 0, 0, time.UTC)

	habits := []models.Habit{daily("a"), daily("b")}
	logs := []models.HabitLog{
		completedLog("a", "2024-03-04"), // Monday
		completedLog("b", "2024-03-04"),
		completedLog("a", "2024-03-06"), // Wednesday
	}

	summary := WeekOverview(habits, logs, ref)
	if len(summary.Days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(summary.Days))
	}
	if summary.Days[0].Day.Weekday() != time.Monday {
		t.Errorf("week should start on Monday, got %s", summary.Days[0].Day.Weekday())
	}
	if summary.Days[0].Rate != 100 {
		t.Errorf("expected Monday rate 100, got %v", summary.Days[0].Rate)
	}
	if summary.Days[2].Rate != 50 {
		t.Errorf("expected Wednesday rate 50, got %v", summary.Days[2].Rate)
	}
	wantAvg := float64(100+50) / 7
	if summary.Average != wantAvg {
		t.Errorf("expected average %v, got %v", wantAvg, summary.Average)
	}
}
