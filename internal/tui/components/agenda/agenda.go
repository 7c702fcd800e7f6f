// Package agenda renders the projected events for one day.
package agenda

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/daybookhq/daybook/internal/constants"
	"github.com/daybookhq/daybook/internal/models"
)

// Item wraps a projected or stored calendar event for the list.
type Item struct {
	Event models.CalendarEvent
}

func (i Item) Title() string {
	prefix := "☐ "
	if i.Event.Type == models.EventTypeHabit {
		prefix = "● "
	}
	return prefix + i.Event.Title
}

func (i Item) Description() string {
	desc := string(i.Event.Type)
	if i.Event.StartTime != "" {
		desc += " | " + i.Event.StartTime
		if i.Event.EndTime != "" {
			desc += "-" + i.Event.EndTime
		}
	}
	return desc
}

func (i Item) FilterValue() string { return i.Event.Title }

type Model struct {
	list list.Model
	date string
}

func New(date string, events []models.CalendarEvent, width, height int) Model {
	l := list.New(toItems(events), list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false) // We handle help globally in the main model
	l.AdditionalShortHelpKeys = func() []key.Binding { return nil }

	return Model{list: l, date: date}
}

func toItems(events []models.CalendarEvent) []list.Item {
	items := make([]list.Item, len(events))
	for i, e := range events {
		items[i] = Item{Event: e}
	}
	return items
}

func (m *Model) SetEvents(date string, events []models.CalendarEvent) {
	m.date = date
	m.list.SetItems(toItems(events))
}

func (m Model) Date() string { return m.date }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  Nothing scheduled for " + dateLabel(m.date) + "."
	}
	return "  " + dateLabel(m.date) + "\n" + m.list.View()
}

func dateLabel(date string) string {
	day, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return date
	}
	return day.Format(constants.DisplayDateFormat)
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
