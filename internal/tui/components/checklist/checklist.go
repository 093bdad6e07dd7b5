package checklist

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rhysbell/ritual/internal/models"
	"github.com/rhysbell/ritual/internal/utils"
)

type AddHabitMsg struct{}

type ToggleHabitMsg struct {
	ID string
}

type ArchiveHabitMsg struct {
	ID string
}

type DeleteHabitMsg struct {
	ID string
}

type Item struct {
	Habit       models.Habit
	IsCompleted bool
	IsScheduled bool
}

func (i Item) Title() string {
	title := i.Habit.Title
	if i.Habit.Icon != "" {
		title = i.Habit.Icon + " " + title
	}
	if i.Habit.IsArchived {
		return "[ARCHIVED] " + title
	}
	if !i.IsScheduled {
		return "· " + title
	}
	if i.IsCompleted {
		return "✓ " + title
	}
	return "○ " + title
}

func (i Item) Description() string {
	if i.Habit.IsArchived {
		return "archived"
	}
	if !i.IsScheduled {
		return "not scheduled today"
	}
	if i.IsCompleted {
		return "completed today"
	}
	return "not completed today"
}

func (i Item) FilterValue() string { return i.Habit.Title }

type KeyMap struct {
	Add     key.Binding
	Toggle  key.Binding
	Archive key.Binding
	Delete  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("m", " "),
			key.WithHelp("m", "toggle done"),
		),
		Archive: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "archive"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list  list.Model
	keys  KeyMap
	today string
}

func New(habits []models.Habit, logs []models.HabitLog, width, height int) Model {
	keys := DefaultKeyMap()

	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Archive, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Archive, keys.Delete}
	}

	m := Model{
		list:  l,
		keys:  keys,
		today: utils.Today(),
	}
	m.SetHabits(habits, logs)
	return m
}

// SetHabits replaces the list contents. Logs are matched to today by their
// day prefix so timestamped dates still count.
func (m *Model) SetHabits(habits []models.Habit, logs []models.HabitLog) {
	m.today = utils.Today()
	now := time.Now()

	completed := make(map[string]bool)
	for _, log := range logs {
		if log.Completed && utils.DayPart(log.Date) == m.today {
			completed[log.HabitID] = true
		}
	}

	items := make([]list.Item, len(habits))
	for i, h := range habits {
		scheduled := !h.IsArchived && h.Schedule.ActiveOn(now)
		items[i] = Item{
			Habit:       h,
			IsCompleted: completed[h.ID] && scheduled,
			IsScheduled: scheduled,
		}
	}
	m.list.SetItems(items)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Toggle):
			if i, ok := m.list.SelectedItem().(Item); ok {
				if !i.Habit.IsArchived && i.IsScheduled {
					return m, func() tea.Msg { return ToggleHabitMsg{ID: i.Habit.ID} }
				}
			}
		case key.Matches(msg, m.keys.Archive):
			if i, ok := m.list.SelectedItem().(Item); ok {
				if !i.Habit.IsArchived {
					return m, func() tea.Msg { return ArchiveHabitMsg{ID: i.Habit.ID} }
				}
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteHabitMsg{ID: i.Habit.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
