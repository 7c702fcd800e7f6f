package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/daybookhq/daybook/internal/app"
	"github.com/daybookhq/daybook/internal/calendar"
	"github.com/daybookhq/daybook/internal/constants"
	"github.com/daybookhq/daybook/internal/models"
	"github.com/daybookhq/daybook/internal/tui/components/agenda"
	"github.com/daybookhq/daybook/internal/tui/components/habitlist"
	"github.com/daybookhq/daybook/internal/tui/components/tasklist"
)

type SessionState int

const (
	StateAgenda SessionState = iota
	StateHabits
	StateTasks
	StateAddHabit
	StateAddTask
	StateConfirmDelete
)

// tabCount is the number of cyclable tabs. Form and confirm states sit
// outside the tab cycle.
const tabCount = 3

type HabitFormModel struct {
	Title       string
	Description string
	Frequency   models.HabitFrequency
	Days        string
}

type TaskFormModel struct {
	Title       string
	Description string
	Priority    models.TaskPriority
	DueDate     string
	DueTime     string
	Tags        string
}

type Model struct {
	app           *app.Facade
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	agendaModel   agenda.Model
	showMonth     bool
	monthGrid     calendar.MonthGrid
	habitList     habitlist.Model
	taskList      tasklist.Model
	form          *huh.Form
	habitForm     *HabitFormModel
	taskForm      *TaskFormModel
	deleteKind    string // "habit" or "task"
	deleteID      string
	errMsg        string
	quitting      bool
	width         int
	height        int
}

func NewModel(a *app.Facade) Model {
	today := time.Now().Format(constants.DateFormat)

	events, err := a.Agenda(today, calendar.Options{ShowHabits: true, ShowTasks: true})
	if err != nil {
		events = nil
	}

	m := Model{
		app:         a,
		state:       StateAgenda,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		agendaModel: agenda.New(today, events, 0, 0),
		habitList:   habitlist.New(a.Habits(), today, 0, 0),
		taskList:    tasklist.New(a.Tasks(), 0, 0),
	}
	if err != nil {
		m.errMsg = err.Error()
	}
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateAgenda:
		keys = append(keys, m.keys.PrevDay, m.keys.NextDay, m.keys.Today, m.keys.Month)
	case StateHabits:
		keys = append(keys, m.keys.Add, m.keys.Enter, m.keys.Delete)
	case StateTasks:
		keys = append(keys, m.keys.Add, m.keys.Enter, m.keys.Delete)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}

	var actions []key.Binding
	switch m.state {
	case StateAgenda:
		actions = []key.Binding{m.keys.PrevDay, m.keys.NextDay, m.keys.Today, m.keys.Month}
	case StateHabits, StateTasks:
		actions = []key.Binding{m.keys.Add, m.keys.Delete}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refreshAgenda re-projects the agenda list for its current date.
func (m *Model) refreshAgenda() {
	date := m.agendaModel.Date()
	events, err := m.app.Agenda(date, calendar.Options{ShowHabits: true, ShowTasks: true})
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.agendaModel.SetEvents(date, events)
	if m.showMonth {
		m.refreshMonth()
	}
}

func (m *Model) shiftAgenda(days int) {
	day, err := time.Parse(constants.DateFormat, m.agendaModel.Date())
	if err != nil {
		day = time.Now()
	}
	date := day.AddDate(0, 0, days).Format(constants.DateFormat)
	events, err := m.app.Agenda(date, calendar.Options{ShowHabits: true, ShowTasks: true})
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.agendaModel.SetEvents(date, events)
}

// shiftMonth moves the agenda date a whole month at a time, mirroring the
// prev/next navigation of the month view.
func (m *Model) shiftMonth(months int) {
	day, err := time.Parse(constants.DateFormat, m.agendaModel.Date())
	if err != nil {
		day = time.Now()
	}
	date := day.AddDate(0, months, 0).Format(constants.DateFormat)
	events, err := m.app.Agenda(date, calendar.Options{ShowHabits: true, ShowTasks: true})
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.agendaModel.SetEvents(date, events)
	m.refreshMonth()
}

// refreshMonth re-projects the grid for the month containing the agenda date.
func (m *Model) refreshMonth() {
	grid, err := m.app.AgendaMonth(m.agendaModel.Date(), calendar.Options{ShowHabits: true, ShowTasks: true})
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.monthGrid = grid
}

func newHabitForm(fm *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit title cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Value(&fm.Description),
			huh.NewSelect[models.HabitFrequency]().
				Title("Frequency").
				Options(
					huh.NewOption("Daily", models.FrequencyDaily),
					huh.NewOption("Weekly", models.FrequencyWeekly),
					huh.NewOption("Custom", models.FrequencyCustom),
				).
				Value(&fm.Frequency),
			huh.NewInput().
				Title("Days").
				Description("For custom frequency, e.g. mon,wed,fri").
				Value(&fm.Days),
		),
	).WithTheme(huh.ThemeDracula())
}

func newTaskForm(fm *TaskFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("task title cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Value(&fm.Description),
			huh.NewSelect[models.TaskPriority]().
				Title("Priority").
				Options(
					huh.NewOption("Low", models.PriorityLow),
					huh.NewOption("Medium", models.PriorityMedium),
					huh.NewOption("High", models.PriorityHigh),
				).
				Value(&fm.Priority),
			huh.NewInput().
				Title("Due date").
				Description("YYYY-MM-DD, optional").
				Value(&fm.DueDate).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					if _, err := time.Parse(constants.DateFormat, s); err != nil {
						return fmt.Errorf("due date must be YYYY-MM-DD")
					}
					return nil
				}),
			huh.NewInput().
				Title("Due time").
				Description("HH:MM, optional").
				Value(&fm.DueTime).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					if _, err := time.Parse(constants.TimeFormat, s); err != nil {
						return fmt.Errorf("due time must be HH:MM")
					}
					return nil
				}),
			huh.NewInput().
				Title("Tags").
				Description("Comma-separated, optional").
				Value(&fm.Tags),
		),
	).WithTheme(huh.ThemeDracula())
}
