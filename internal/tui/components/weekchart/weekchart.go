// Package weekchart renders the current week's completion rates as a
// horizontal bar chart.
package weekchart

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rhysbell/ritual/internal/models"
	"github.com/rhysbell/ritual/internal/stats"
	"github.com/rhysbell/ritual/internal/utils"
)

const barWidth = 24

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	todayStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
)

type Model struct {
	summary stats.WeekSummary
}

func New(habits []models.Habit, logs []models.HabitLog) Model {
	m := Model{}
	m.SetData(habits, logs)
	return m
}

func (m *Model) SetData(habits []models.Habit, logs []models.HabitLog) {
	m.summary = stats.WeekOverview(habits, logs, time.Now())
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

func (m Model) View() string {
	today := utils.Today()

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("This week: %.0f%% average", m.summary.Average)))
	b.WriteString("\n\n")

	for _, day := range m.summary.Days {
		label := day.Label
		if utils.DayString(day.Day) == today {
			label = todayStyle.Render(label)
		}
		filled := int(day.Rate / 100 * barWidth)
		if filled > barWidth {
			filled = barWidth
		}
		bar := barStyle.Render(strings.Repeat("█", filled)) +
			emptyStyle.Render(strings.Repeat("░", barWidth-filled))
		b.WriteString(fmt.Sprintf("  %s %s %3.0f%%\n", label, bar, day.Rate))
	}

	return b.String()
}
