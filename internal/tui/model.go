package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/rhysbell/ritual/internal/models"
	"github.com/rhysbell/ritual/internal/session"
	"github.com/rhysbell/ritual/internal/tracker"
	"github.com/rhysbell/ritual/internal/tui/components/checklist"
	"github.com/rhysbell/ritual/internal/tui/components/weekchart"
	"github.com/rhysbell/ritual/internal/validation"
)

type sessionState int

const (
	stateToday sessionState = iota
	stateWeek
	stateAddHabit
	stateConfirmArchive
	stateConfirmDelete
)

type HabitFormModel struct {
	Title      string
	Frequency  models.Frequency
	Weekday    int
	DayOfMonth string
}

type Model struct {
	tracker *tracker.Repository
	session *session.Manager

	state     sessionState
	keys      KeyMap
	help      help.Model
	checklist checklist.Model
	weekChart weekchart.Model

	form      *huh.Form
	habitForm *HabitFormModel
	formError string

	habitToArchiveID string
	habitToDeleteID  string

	quitting bool
	width    int
	height   int
}

func NewModel(repo *tracker.Repository, sess *session.Manager) Model {
	habits := repo.Habits()
	logs := repo.Logs()

	return Model{
		tracker:   repo,
		session:   sess,
		state:     stateToday,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		checklist: checklist.New(habits, logs, 0, 0),
		weekChart: weekchart.New(habits, logs),
	}
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}
	return [][]key.Binding{global, navigation}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// formTheme follows the persisted theme preference.
func (m Model) formTheme() *huh.Theme {
	if m.session.Theme() == models.ThemeDark {
		return huh.ThemeDracula()
	}
	return huh.ThemeBase()
}

func newHabitForm(fm *HabitFormModel, theme *huh.Theme) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Title").
				Value(&fm.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit title cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[models.Frequency]().
				Title("Frequency").
				Options(
					huh.NewOption("Daily", models.FrequencyDaily),
					huh.NewOption("Weekly", models.FrequencyWeekly),
					huh.NewOption("Monthly", models.FrequencyMonthly),
				).
				Value(&fm.Frequency),
			huh.NewSelect[int]().
				Title("Weekday").
				Description("For weekly habits").
				Options(
					huh.NewOption("Monday", 1),
					huh.NewOption("Tuesday", 2),
					huh.NewOption("Wednesday", 3),
					huh.NewOption("Thursday", 4),
					huh.NewOption("Friday", 5),
					huh.NewOption("Saturday", 6),
					huh.NewOption("Sunday", 7),
				).
				Value(&fm.Weekday),
			huh.NewInput().
				Title("Day of Month").
				Description("For monthly habits; leave empty for every day").
				Value(&fm.DayOfMonth).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					day, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || day < 1 || day > 31 {
						return fmt.Errorf("day of month must be between 1 and 31")
					}
					return nil
				}),
		),
	).WithTheme(theme)
}

// buildHabit turns a completed form into a validated habit. Schedule fields
// belonging to other frequencies are dropped so a weekly choice never
// persists a day of month and vice versa.
func buildHabit(fm *HabitFormModel) (models.Habit, error) {
	schedule := models.Schedule{Frequency: fm.Frequency}
	switch fm.Frequency {
	case models.FrequencyWeekly:
		schedule.Weekday = fm.Weekday
	case models.FrequencyMonthly:
		if raw := strings.TrimSpace(fm.DayOfMonth); raw != "" {
			day, err := strconv.Atoi(raw)
			if err != nil {
				return models.Habit{}, fmt.Errorf("invalid day of month: %s", fm.DayOfMonth)
			}
			schedule.DayOfMonth = day
		}
	}

	habit := models.Habit{
		ID:        uuid.New().String(),
		Title:     fm.Title,
		Schedule:  schedule,
		CreatedAt: time.Now(),
	}
	if err := validation.ValidateHabit(habit); err != nil {
		return models.Habit{}, err
	}
	return habit, nil
}

// refresh reloads habits and logs into both views.
func (m *Model) refresh() {
	habits := m.tracker.Habits()
	logs := m.tracker.Logs()
	m.checklist.SetHabits(habits, logs)
	m.weekChart.SetData(habits, logs)
}
