package tui

import (
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case stateToday:
		content = docStyle.Render(m.checklist.View())
	case stateWeek:
		content = docStyle.Render(m.weekChart.View())
	case stateAddHabit:
		content = m.form.View()
		if m.formError != "" {
			content = lipgloss.JoinVertical(lipgloss.Left, errorStyle.Render(m.formError), content)
		}
	case stateConfirmArchive:
		content = m.viewConfirmArchive()
	case stateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	tabTitles := []string{"Today", "Week"}
	for i, title := range tabTitles {
		if m.state == sessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewConfirmArchive() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			warningStyle.Render("Are you sure you want to archive this habit?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Delete this habit and all of its logs?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
