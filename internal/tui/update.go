package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/rhysbell/ritual/internal/models"
	"github.com/rhysbell/ritual/internal/tui/components/checklist"
	"github.com/rhysbell/ritual/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.state == stateAddHabit {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.formError = ""
			m.state = stateToday
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			habit, err := buildHabit(m.habitForm)
			if err != nil {
				// Nothing invalid reaches storage; keep the form open
				m.formError = err.Error()
				m.form.State = huh.StateNormal
				return m, tea.Batch(cmds...)
			}
			if m.tracker.SaveHabit(habit) {
				m.refresh()
				m.formError = ""
				m.state = stateToday
			} else {
				// Stay in the form so the user can retry or cancel
				m.formError = "Failed to save habit"
				m.form.State = huh.StateNormal
			}
		case huh.StateAborted:
			m.formError = ""
			m.state = stateToday
		}
		return m, tea.Batch(cmds...)
	}

	if m.state == stateConfirmArchive {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "y", "Y":
				if m.tracker.ArchiveHabit(m.habitToArchiveID) {
					m.refresh()
				}
				m.habitToArchiveID = ""
				m.state = stateToday
			case "n", "N", "esc":
				m.habitToArchiveID = ""
				m.state = stateToday
			}
		}
		return m, nil
	}

	if m.state == stateConfirmDelete {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "y", "Y":
				if m.tracker.DeleteHabit(m.habitToDeleteID) {
					m.refresh()
				}
				m.habitToDeleteID = ""
				m.state = stateToday
			case "n", "N", "esc":
				m.habitToDeleteID = ""
				m.state = stateToday
			}
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.checklist.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case checklist.AddHabitMsg:
		m.habitForm = &HabitFormModel{Frequency: models.FrequencyDaily, Weekday: 1}
		m.form = newHabitForm(m.habitForm, m.formTheme())
		m.state = stateAddHabit
		return m, m.form.Init()

	case checklist.ToggleHabitMsg:
		if m.tracker.ToggleCompletion(msg.ID, utils.Today()) {
			m.refresh()
		}
		return m, nil

	case checklist.ArchiveHabitMsg:
		m.habitToArchiveID = msg.ID
		m.state = stateConfirmArchive
		return m, nil

	case checklist.DeleteHabitMsg:
		m.habitToDeleteID = msg.ID
		m.state = stateConfirmDelete
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.ShiftTab):
			if m.state == stateToday {
				m.state = stateWeek
			} else {
				m.state = stateToday
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case stateToday:
		m.checklist, cmd = m.checklist.Update(msg)
		cmds = append(cmds, cmd)
	case stateWeek:
		m.weekChart, cmd = m.weekChart.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}
