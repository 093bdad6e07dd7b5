package system

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/rhysbell/ritual/internal/cli"
	"github.com/rhysbell/ritual/internal/models"
)

type ExportCmd struct {
	Format string `help:"Export format: json or csv." enum:"json,csv" default:"json"`
	Output string `help:"Output file (default: stdout)." default:""`
}

type exportPayload struct {
	Habits []models.Habit    `json:"habits"`
	Logs   []models.HabitLog `json:"logs"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAuth(); err != nil {
		return err
	}

	out := os.Stdout
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	habits := ctx.Tracker.Habits()
	logs := ctx.Tracker.Logs()

	switch c.Format {
	case "csv":
		if err := writeCSV(out, habits, logs); err != nil {
			return err
		}
	default:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(exportPayload{Habits: habits, Logs: logs}); err != nil {
			return fmt.Errorf("failed to encode export: %w", err)
		}
	}

	if c.Output != "" {
		fmt.Printf("Exported %d habits and %d logs to %s\n", len(habits), len(logs), c.Output)
	}
	return nil
}

// writeCSV emits one row per log, joined with its habit title. Habits without
// logs still appear once so an export never silently drops a habit.
func writeCSV(out *os.File, habits []models.Habit, logs []models.HabitLog) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	if err := w.Write([]string{"habit_id", "habit_title", "date", "completed", "notes"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	titles := make(map[string]string, len(habits))
	for _, habit := range habits {
		titles[habit.ID] = habit.Title
	}

	seen := make(map[string]bool, len(habits))
	for _, log := range logs {
		seen[log.HabitID] = true
		row := []string{log.HabitID, titles[log.HabitID], log.Date, strconv.FormatBool(log.Completed), log.Notes}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	for _, habit := range habits {
		if seen[habit.ID] {
			continue
		}
		if err := w.Write([]string{habit.ID, habit.Title, "", "", ""}); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}
