package habits

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rhysbell/ritual/internal/cli"
	"github.com/rhysbell/ritual/internal/constants"
	"github.com/rhysbell/ritual/internal/stats"
)

const barWidth = 20

var (
	barStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	emptyBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	labelStyle    = lipgloss.NewStyle().Bold(true)
)

type WeekCmd struct{}

func (c *WeekCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAuth(); err != nil {
		return err
	}

	summary := stats.WeekOverview(ctx.Tracker.Habits(), ctx.Tracker.Logs(), time.Now())

	fmt.Printf("%s\n\n", labelStyle.Render(fmt.Sprintf("%.0f%% avg. completion this week", summary.Average)))
	for _, day := range summary.Days {
		fmt.Printf("  %s %s %3.0f%%\n", day.Label, renderBar(day.Rate), day.Rate)
	}
	return nil
}

type StatsCmd struct {
	Title string `arg:"" help:"Habit title."`
	Days  int    `help:"Look-back window in days." default:"30"`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAuth(); err != nil {
		return err
	}

	habit, ok := ctx.Tracker.HabitByTitle(c.Title)
	if !ok {
		return fmt.Errorf("habit %q not found", c.Title)
	}

	days := c.Days
	if days <= 0 {
		days = constants.StatsWindowDays
	}

	summary := stats.ForHabit(ctx.Tracker.LogsForHabit(habit.ID), time.Now(), days)

	fmt.Printf("%s (last %d days)\n\n", labelStyle.Render(habit.Title), days)
	fmt.Printf("  Completion rate: %.0f%%\n", summary.CompletionRate)
	fmt.Printf("  Current streak:  %d day(s)\n", summary.Streak)
	fmt.Printf("  Total completed: %d\n", summary.Total)
	return nil
}

func renderBar(rate float64) string {
	filled := int(rate / 100 * barWidth)
	if filled > barWidth {
		filled = barWidth
	}
	bar := barStyle.Render(strings.Repeat("█", filled))
	rest := emptyBarStyle.Render(strings.Repeat("░", barWidth-filled))
	return bar + rest
}
