package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/daybookhq/daybook/internal/apperr"
	"github.com/daybookhq/daybook/internal/models"
)

func TestHabit(t *testing.T) {
	valid := models.Habit{Title: "Meditate", Frequency: models.FrequencyDaily}
	if err := Habit(valid); err != nil {
		t.Errorf("Valid habit rejected: %v", err)
	}

	cases := []struct {
		name  string
		habit models.Habit
	}{
		{"empty title", models.Habit{Title: "  ", Frequency: models.FrequencyDaily}},
		{"unknown frequency", models.Habit{Title: "X", Frequency: "fortnightly"}},
		{"custom without days", models.Habit{Title: "X", Frequency: models.FrequencyCustom}},
		{"custom with out-of-range day", models.Habit{
			Title:           "X",
			Frequency:       models.FrequencyCustom,
			CustomFrequency: &models.CustomFrequency{Days: []time.Weekday{9}},
		}},
		{"malformed completion date", models.Habit{
			Title:     "X",
			Frequency: models.FrequencyDaily,
			Completions: []models.HabitCompletion{
				{ID: "c1", Date: "10/06/2024", Completed: true},
			},
		}},
		{"duplicate completion date", models.Habit{
			Title:     "X",
			Frequency: models.FrequencyDaily,
			Completions: []models.HabitCompletion{
				{ID: "c1", Date: "2024-06-10", Completed: true},
				{ID: "c2", Date: "2024-06-10", Completed: false},
			},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := Habit(tc.habit); !errors.Is(err, apperr.ErrInvalid) {
				t.Errorf("Expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestTask(t *testing.T) {
	valid := models.Task{
		Title:    "File taxes",
		Status:   models.StatusTodo,
		Priority: models.PriorityHigh,
		DueDate:  "2024-06-10",
		DueTime:  "14:00",
	}
	if err := Task(valid); err != nil {
		t.Errorf("Valid task rejected: %v", err)
	}

	cases := []struct {
		name string
		task models.Task
	}{
		{"empty title", models.Task{Title: "", Status: models.StatusTodo, Priority: models.PriorityLow}},
		{"unknown status", models.Task{Title: "X", Status: "paused", Priority: models.PriorityLow}},
		{"unknown priority", models.Task{Title: "X", Status: models.StatusTodo, Priority: "urgent"}},
		{"malformed due date", models.Task{Title: "X", Status: models.StatusTodo, Priority: models.PriorityLow, DueDate: "tomorrow"}},
		{"malformed due time", models.Task{Title: "X", Status: models.StatusTodo, Priority: models.PriorityLow, DueTime: "2pm"}},
		{"empty subtask title", models.Task{
			Title: "X", Status: models.StatusTodo, Priority: models.PriorityLow,
			SubTasks: []models.SubTask{{ID: "s1", Title: " "}},
		}},
		{"bad recurring frequency", models.Task{
			Title: "X", Status: models.StatusTodo, Priority: models.PriorityLow,
			IsRecurring:      true,
			RecurringPattern: &models.RecurringPattern{Frequency: "yearly", Interval: 1},
		}},
		{"zero recurring interval", models.Task{
			Title: "X", Status: models.StatusTodo, Priority: models.PriorityLow,
			IsRecurring:      true,
			RecurringPattern: &models.RecurringPattern{Frequency: "weekly", Interval: 0},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := Task(tc.task); !errors.Is(err, apperr.ErrInvalid) {
				t.Errorf("Expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestEvent(t *testing.T) {
	valid := models.CalendarEvent{
		Title:     "Tax session",
		Date:      "2024-06-10",
		StartTime: "14:00",
		EndTime:   "15:00",
		Type:      models.EventTypeTask,
	}
	if err := Event(valid); err != nil {
		t.Errorf("Valid event rejected: %v", err)
	}

	cases := []struct {
		name  string
		event models.CalendarEvent
	}{
		{"empty title", models.CalendarEvent{Title: "", Date: "2024-06-10", Type: models.EventTypeTask}},
		{"malformed date", models.CalendarEvent{Title: "X", Date: "soon", Type: models.EventTypeTask}},
		{"unknown type", models.CalendarEvent{Title: "X", Date: "2024-06-10", Type: "meeting"}},
		{"malformed start time", models.CalendarEvent{Title: "X", Date: "2024-06-10", Type: models.EventTypeHabit, StartTime: "noon"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := Event(tc.event); !errors.Is(err, apperr.ErrInvalid) {
				t.Errorf("Expected ErrInvalid, got %v", err)
			}
		})
	}
}
