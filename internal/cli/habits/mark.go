package habits

import (
	"fmt"
	"time"

	"github.com/rhysbell/ritual/internal/cli"
	"github.com/rhysbell/ritual/internal/models"
	"github.com/rhysbell/ritual/internal/stats"
	"github.com/rhysbell/ritual/internal/utils"
)

type MarkCmd struct {
	Title string `arg:"" help:"Habit title."`
	Date  string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *MarkCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAuth(); err != nil {
		return err
	}

	habit, ok := ctx.Tracker.HabitByTitle(c.Title)
	if !ok {
		return fmt.Errorf("habit %q not found", c.Title)
	}

	day, err := resolveDay(c.Date)
	if err != nil {
		return err
	}

	if !ctx.Tracker.ToggleCompletion(habit.ID, day) {
		return fmt.Errorf("failed to toggle completion")
	}

	completed := false
	for _, log := range ctx.Tracker.LogsForDate(day) {
		if log.HabitID == habit.ID {
			completed = log.Completed
			break
		}
	}
	if completed {
		fmt.Printf("Marked habit %q complete for %s\n", habit.Title, day)
	} else {
		fmt.Printf("Unmarked habit %q for %s\n", habit.Title, day)
	}
	return nil
}

type NoteCmd struct {
	Title string `arg:"" help:"Habit title."`
	Text  string `arg:"" help:"Note text."`
	Date  string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *NoteCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAuth(); err != nil {
		return err
	}

	habit, ok := ctx.Tracker.HabitByTitle(c.Title)
	if !ok {
		return fmt.Errorf("habit %q not found", c.Title)
	}

	day, err := resolveDay(c.Date)
	if err != nil {
		return err
	}

	// Attach the note to the day's log if one exists; otherwise record an
	// uncompleted log carrying only the note.
	var log models.HabitLog
	found := false
	for _, l := range ctx.Tracker.LogsForDate(day) {
		if l.HabitID == habit.ID {
			log = l
			found = true
			break
		}
	}
	if !found {
		log = models.HabitLog{
			ID:      fmt.Sprintf("%s_%s_%d", habit.ID, day, time.Now().UnixMilli()),
			HabitID: habit.ID,
			Date:    day,
		}
	}
	log.Notes = c.Text

	if !ctx.Tracker.SaveLog(log) {
		return fmt.Errorf("failed to save note")
	}

	fmt.Printf("Noted on habit %q for %s\n", habit.Title, day)
	return nil
}

type TodayCmd struct {
	Date string `help:"Show the checklist for another date (YYYY-MM-DD)." default:""`
}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAuth(); err != nil {
		return err
	}

	day, err := resolveDay(c.Date)
	if err != nil {
		return err
	}
	date, err := utils.ParseDay(day)
	if err != nil {
		return err
	}

	active := stats.ActiveOn(ctx.Tracker.Habits(), date)
	if len(active) == 0 {
		fmt.Printf("No habits scheduled for %s.\n", day)
		return nil
	}

	logs := ctx.Tracker.LogsForDate(day)
	completedByHabit := make(map[string]bool)
	for _, log := range logs {
		if log.Completed {
			completedByHabit[log.HabitID] = true
		}
	}

	fmt.Printf("Habits for %s:\n\n", day)
	done := 0
	for _, habit := range active {
		status := "[ ]"
		if completedByHabit[habit.ID] {
			status = "[x]"
			done++
		}
		fmt.Printf("  %s %s\n", status, habit.Title)
	}

	rate := stats.CompletionRate(active, logs)
	fmt.Printf("\n%d/%d complete (%.0f%%)\n", done, len(active), rate)
	return nil
}

func resolveDay(date string) (string, error) {
	if date == "" {
		return utils.Today(), nil
	}
	day := utils.DayPart(date)
	if !utils.ValidateDateFormat(day) {
		return "", fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", date)
	}
	return day, nil
}
