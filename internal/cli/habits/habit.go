package habits

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rhysbell/ritual/internal/cli"
	"github.com/rhysbell/ritual/internal/models"
	"github.com/rhysbell/ritual/internal/validation"
)

type AddCmd struct {
	Title       string `arg:"" help:"Habit title."`
	Description string `help:"Optional description." default:""`
	Frequency   string `help:"Schedule frequency: daily, weekly, or monthly." enum:"daily,weekly,monthly" default:"daily"`
	Weekday     string `help:"Weekday for weekly habits (name or 1-7, Monday=1)." default:""`
	DayOfMonth  int    `help:"Day of month for monthly habits (1-31)." default:"0"`
	Icon        string `help:"Display icon." default:""`
	Color       string `help:"Display color." default:""`
	Reminder    string `help:"Reminder time (HH:MM). Stored only; nothing schedules it." default:""`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAuth(); err != nil {
		return err
	}

	if _, ok := ctx.Tracker.HabitByTitle(c.Title); ok {
		return fmt.Errorf("habit with title %q already exists", c.Title)
	}

	schedule := models.Schedule{Frequency: models.Frequency(c.Frequency)}
	if c.Weekday != "" {
		wd, err := cli.ParseWeekday(c.Weekday)
		if err != nil {
			return err
		}
		schedule.Weekday = wd
	}
	if c.DayOfMonth != 0 {
		schedule.DayOfMonth = c.DayOfMonth
	}

	habit := models.Habit{
		ID:          uuid.New().String(),
		Title:       c.Title,
		Description: c.Description,
		Icon:        c.Icon,
		Color:       c.Color,
		Schedule:    schedule,
		ReminderAt:  c.Reminder,
		CreatedAt:   time.Now(),
	}

	if err := validation.ValidateHabit(habit); err != nil {
		return err
	}
	if !ctx.Tracker.SaveHabit(habit) {
		return fmt.Errorf("failed to save habit")
	}

	fmt.Printf("Added habit: %s (%s)\n", habit.Title, cli.FormatSchedule(habit.Schedule))
	return nil
}

type ListCmd struct {
	Archived bool `help:"Include archived habits."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAuth(); err != nil {
		return err
	}

	habits := ctx.Tracker.Habits()
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	for _, habit := range habits {
		if habit.IsArchived && !c.Archived {
			continue
		}
		status := ""
		if habit.IsArchived {
			status = " [ARCHIVED]"
		}
		fmt.Printf("%s (%s)%s\n", habit.Title, cli.FormatSchedule(habit.Schedule), status)
	}

	return nil
}

type EditCmd struct {
	Title       string `arg:"" help:"Title of the habit to edit."`
	NewTitle    string `help:"New title." default:""`
	Description string `help:"New description." default:""`
	Frequency   string `help:"New frequency: daily, weekly, or monthly." default:""`
	Weekday     string `help:"New weekday for weekly habits." default:""`
	DayOfMonth  int    `help:"New day of month for monthly habits." default:"0"`
	Reminder    string `help:"New reminder time (HH:MM)." default:""`
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAuth(); err != nil {
		return err
	}

	habit, ok := ctx.Tracker.HabitByTitle(c.Title)
	if !ok {
		return fmt.Errorf("habit %q not found", c.Title)
	}

	if c.NewTitle != "" {
		habit.Title = c.NewTitle
	}
	if c.Description != "" {
		habit.Description = c.Description
	}
	if c.Frequency != "" {
		habit.Schedule.Frequency = models.Frequency(c.Frequency)
	}
	if c.Weekday != "" {
		wd, err := cli.ParseWeekday(c.Weekday)
		if err != nil {
			return err
		}
		habit.Schedule.Weekday = wd
	}
	if c.DayOfMonth != 0 {
		habit.Schedule.DayOfMonth = c.DayOfMonth
	}
	if c.Reminder != "" {
		habit.ReminderAt = c.Reminder
	}

	if err := validation.ValidateHabit(habit); err != nil {
		return err
	}
	if !ctx.Tracker.SaveHabit(habit) {
		return fmt.Errorf("failed to save habit")
	}

	fmt.Printf("Updated habit: %s\n", habit.Title)
	return nil
}

type ArchiveCmd struct {
	Title string `arg:"" help:"Title of the habit to archive."`
}

func (c *ArchiveCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAuth(); err != nil {
		return err
	}

	habit, ok := ctx.Tracker.HabitByTitle(c.Title)
	if !ok {
		return fmt.Errorf("habit %q not found", c.Title)
	}
	if !ctx.Tracker.ArchiveHabit(habit.ID) {
		return fmt.Errorf("failed to archive habit")
	}

	fmt.Printf("Archived habit: %s\n", habit.Title)
	return nil
}

type UnarchiveCmd struct {
	Title string `arg:"" help:"Title of the habit to unarchive."`
}

func (c *UnarchiveCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAuth(); err != nil {
		return err
	}

	habit, ok := ctx.Tracker.HabitByTitle(c.Title)
	if !ok {
		return fmt.Errorf("habit %q not found", c.Title)
	}
	if !ctx.Tracker.UnarchiveHabit(habit.ID) {
		return fmt.Errorf("failed to unarchive habit")
	}

	fmt.Printf("Unarchived habit: %s\n", habit.Title)
	return nil
}

type DeleteCmd struct {
	Title string `arg:"" help:"Title of the habit to delete."`
	Yes   bool   `help:"Skip the confirmation prompt."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAuth(); err != nil {
		return err
	}

	habit, ok := ctx.Tracker.HabitByTitle(c.Title)
	if !ok {
		return fmt.Errorf("habit %q not found", c.Title)
	}

	logCount := len(ctx.Tracker.LogsForHabit(habit.ID))
	if !c.Yes {
		fmt.Printf("Delete habit %q and its %d log(s)? [y/N] ", habit.Title, logCount)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	if !ctx.Tracker.DeleteHabit(habit.ID) {
		return fmt.Errorf("failed to delete habit")
	}

	fmt.Printf("Deleted habit %q and %d log(s)\n", habit.Title, logCount)
	return nil
}
