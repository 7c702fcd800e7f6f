package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/daybookhq/daybook/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateAgenda:
		if m.showMonth {
			content = docStyle.Render(m.viewMonth())
		} else {
			content = docStyle.Render(m.agendaModel.View())
		}
	case StateHabits:
		content = docStyle.Render(m.habitList.View())
	case StateTasks:
		content = docStyle.Render(m.taskList.View())
	case StateAddHabit, StateAddTask:
		content = m.form.View()
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	sections := []string{m.viewTabs(), content}
	if m.errMsg != "" {
		sections = append(sections, errorStyle.Render("  "+m.errMsg))
	}
	sections = append(sections, m.help.View(m))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Agenda", "Habits", "Tasks"} {
		if m.tabState() == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// tabState maps form and confirm states back onto the tab they were opened from.
func (m Model) tabState() SessionState {
	if m.state < tabCount {
		return m.state
	}
	return m.previousState
}

// viewMonth renders the month grid: Monday-first weeks, every scheduled day
// marked, the agenda's current date highlighted, and that day's entries
// listed below the grid.
func (m Model) viewMonth() string {
	selected := m.agendaModel.Date()
	now := today()

	var b strings.Builder
	b.WriteString(monthTitleStyle.Render(m.monthGrid.Title()))
	b.WriteString("\n\n")
	b.WriteString(monthHeadStyle.Render(" Mon  Tue  Wed  Thu  Fri  Sat  Sun"))
	b.WriteString("\n")

	var selectedEvents []models.CalendarEvent
	selectedShown := false
	for _, week := range m.monthGrid.Weeks {
		for _, day := range week {
			if day.Date == "" {
				b.WriteString("     ")
				continue
			}
			mark := " "
			if len(day.Events) > 0 {
				mark = "*"
			}
			cell := fmt.Sprintf(" %2d%s ", day.Day, mark)
			switch day.Date {
			case selected:
				cell = monthSelectedStyle.Render(cell)
				selectedEvents = day.Events
				selectedShown = true
			case now:
				cell = monthTodayStyle.Render(cell)
			}
			b.WriteString(cell)
		}
		b.WriteString("\n")
	}

	if selectedShown {
		b.WriteString("\n")
		b.WriteString(monthHeadStyle.Render(selected))
		b.WriteString("\n")
		if len(selectedEvents) == 0 {
			b.WriteString("  nothing scheduled\n")
		}
		for _, e := range selectedEvents {
			b.WriteString("  • " + e.Title + "\n")
		}
	}
	return b.String()
}

func (m Model) viewConfirmDelete() string {
	prompt := "Are you sure you want to delete this task?"
	if m.deleteKind == "habit" {
		prompt = "Are you sure you want to delete this habit?"
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(prompt),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
