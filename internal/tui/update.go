package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/daybookhq/daybook/internal/calendar"
	"github.com/daybookhq/daybook/internal/constants"
	"github.com/daybookhq/daybook/internal/models"
	"github.com/daybookhq/daybook/internal/tui/components/habitlist"
	"github.com/daybookhq/daybook/internal/tui/components/tasklist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// Reserve rows for the tab bar and help footer.
		h, v := docStyle.GetFrameSize()
		m.agendaModel.SetSize(msg.Width-h, msg.Height-v-4)
		m.habitList.SetSize(msg.Width-h, msg.Height-v-4)
		m.taskList.SetSize(msg.Width-h, msg.Height-v-4)

	case habitlist.AddHabitMsg:
		m.previousState = m.state
		m.state = StateAddHabit
		m.habitForm = &HabitFormModel{Frequency: models.FrequencyDaily}
		m.form = newHabitForm(m.habitForm)
		return m, m.form.Init()

	case habitlist.ToggleHabitMsg:
		if err := m.app.CompleteHabit(context.Background(), msg.ID, today(), msg.Done); err != nil {
			m.errMsg = err.Error()
		} else {
			m.errMsg = ""
		}
		m.habitList.SetHabits(m.app.Habits())
		m.refreshAgenda()
		return m, nil

	case habitlist.DeleteHabitMsg:
		m.previousState = m.state
		m.state = StateConfirmDelete
		m.deleteKind = "habit"
		m.deleteID = msg.ID
		return m, nil

	case tasklist.AddTaskMsg:
		m.previousState = m.state
		m.state = StateAddTask
		m.taskForm = &TaskFormModel{Priority: models.PriorityMedium}
		m.form = newTaskForm(m.taskForm)
		return m, m.form.Init()

	case tasklist.CompleteTaskMsg:
		if err := m.app.CompleteTask(context.Background(), msg.ID); err != nil {
			m.errMsg = err.Error()
		} else {
			m.errMsg = ""
		}
		m.taskList.SetTasks(m.app.Tasks())
		m.refreshAgenda()
		return m, nil

	case tasklist.DeleteTaskMsg:
		m.previousState = m.state
		m.state = StateConfirmDelete
		m.deleteKind = "task"
		m.deleteID = msg.ID
		return m, nil
	}

	switch m.state {
	case StateAddHabit, StateAddTask:
		return m.updateForm(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		}

		if m.state == StateAgenda {
			switch {
			case key.Matches(msg, m.keys.Month):
				m.showMonth = !m.showMonth
				if m.showMonth {
					m.refreshMonth()
				}
				return m, nil
			case key.Matches(msg, m.keys.PrevDay):
				if m.showMonth {
					m.shiftMonth(-1)
				} else {
					m.shiftAgenda(-1)
				}
				return m, nil
			case key.Matches(msg, m.keys.NextDay):
				if m.showMonth {
					m.shiftMonth(1)
				} else {
					m.shiftAgenda(1)
				}
				return m, nil
			case key.Matches(msg, m.keys.Today):
				events, err := m.app.Agenda(today(), calendar.Options{ShowHabits: true, ShowTasks: true})
				if err != nil {
					m.errMsg = err.Error()
					return m, nil
				}
				m.agendaModel.SetEvents(today(), events)
				if m.showMonth {
					m.refreshMonth()
				}
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateAgenda:
		m.agendaModel, cmd = m.agendaModel.Update(msg)
	case StateHabits:
		m.habitList, cmd = m.habitList.Update(msg)
	case StateTasks:
		m.taskList, cmd = m.taskList.Update(msg)
	}
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		m.state = m.previousState
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		switch m.state {
		case StateAddHabit:
			m.submitHabitForm()
		case StateAddTask:
			m.submitTaskForm()
		}
		m.state = m.previousState
		m.form = nil
		return m, nil
	}
	if m.form.State == huh.StateAborted {
		m.state = m.previousState
		m.form = nil
		return m, nil
	}

	return m, cmd
}

func (m *Model) submitHabitForm() {
	habit := models.Habit{
		Title:       strings.TrimSpace(m.habitForm.Title),
		Description: strings.TrimSpace(m.habitForm.Description),
		Frequency:   m.habitForm.Frequency,
	}
	if habit.Frequency == models.FrequencyCustom {
		days, err := models.ParseWeekdays(m.habitForm.Days)
		if err != nil {
			m.errMsg = err.Error()
			return
		}
		habit.CustomFrequency = &models.CustomFrequency{Days: days, Interval: 1}
	}

	if _, err := m.app.AddHabit(context.Background(), habit); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.habitList.SetHabits(m.app.Habits())
	m.refreshAgenda()
}

func (m *Model) submitTaskForm() {
	task := models.Task{
		Title:       strings.TrimSpace(m.taskForm.Title),
		Description: strings.TrimSpace(m.taskForm.Description),
		Priority:    m.taskForm.Priority,
		DueDate:     strings.TrimSpace(m.taskForm.DueDate),
		DueTime:     strings.TrimSpace(m.taskForm.DueTime),
	}
	if tags := strings.TrimSpace(m.taskForm.Tags); tags != "" {
		for _, t := range strings.Split(tags, ",") {
			if t = strings.TrimSpace(t); t != "" {
				task.Tags = append(task.Tags, t)
			}
		}
	}

	if _, err := m.app.AddTask(context.Background(), task); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.taskList.SetTasks(m.app.Tasks())
	m.refreshAgenda()
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		var err error
		switch m.deleteKind {
		case "habit":
			err = m.app.RemoveHabit(context.Background(), m.deleteID)
		case "task":
			err = m.app.RemoveTask(context.Background(), m.deleteID)
		}
		if err != nil {
			m.errMsg = err.Error()
		} else {
			m.errMsg = ""
		}
		m.habitList.SetHabits(m.app.Habits())
		m.taskList.SetTasks(m.app.Tasks())
		m.refreshAgenda()
		m.state = m.previousState
		m.deleteID = ""
		return m, nil
	case "n", "N", "esc":
		m.state = m.previousState
		m.deleteID = ""
		return m, nil
	}
	return m, nil
}

func today() string {
	return time.Now().Format(constants.DateFormat)
}
