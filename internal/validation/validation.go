// Package validation rejects malformed records before they reach the store.
// Forms validate input first; these checks run again behind them.
package validation

import (
	"strings"
	"time"

	"github.com/daybookhq/daybook/internal/apperr"
	"github.com/daybookhq/daybook/internal/constants"
	"github.com/daybookhq/daybook/internal/models"
)

// Habit checks a habit record for structural problems.
func Habit(h models.Habit) error {
	if strings.TrimSpace(h.Title) == "" {
		return apperr.Invalid("habit title cannot be empty")
	}

	switch h.Frequency {
	case models.FrequencyDaily, models.FrequencyWeekly:
	case models.FrequencyCustom:
		if h.CustomFrequency == nil || len(h.CustomFrequency.Days) == 0 {
			return apperr.Invalid("custom-frequency habit needs at least one weekday")
		}
		for _, d := range h.CustomFrequency.Days {
			if d < time.Sunday || d > time.Saturday {
				return apperr.Invalid("weekday %d out of range", d)
			}
		}
		if h.CustomFrequency.Interval < 0 {
			return apperr.Invalid("custom interval cannot be negative")
		}
	default:
		return apperr.Invalid("unknown habit frequency %q", h.Frequency)
	}

	seen := make(map[string]bool, len(h.Completions))
	for _, c := range h.Completions {
		if _, err := time.Parse(constants.DateFormat, c.Date); err != nil {
			return apperr.Invalid("completion date %q is not YYYY-MM-DD", c.Date)
		}
		if seen[c.Date] {
			return apperr.Invalid("duplicate completion for %s", c.Date)
		}
		seen[c.Date] = true
	}

	return nil
}

// Task checks a task record for structural problems.
func Task(t models.Task) error {
	if strings.TrimSpace(t.Title) == "" {
		return apperr.Invalid("task title cannot be empty")
	}

	switch t.Status {
	case models.StatusTodo, models.StatusInProgress, models.StatusCompleted:
	default:
		return apperr.Invalid("unknown task status %q", t.Status)
	}

	switch t.Priority {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
	default:
		return apperr.Invalid("unknown task priority %q", t.Priority)
	}

	if t.DueDate != "" {
		if _, err := time.Parse(constants.DateFormat, t.DueDate); err != nil {
			return apperr.Invalid("due date %q is not YYYY-MM-DD", t.DueDate)
		}
	}
	if t.DueTime != "" {
		if _, err := time.Parse(constants.TimeFormat, t.DueTime); err != nil {
			return apperr.Invalid("due time %q is not HH:MM", t.DueTime)
		}
	}

	for _, st := range t.SubTasks {
		if strings.TrimSpace(st.Title) == "" {
			return apperr.Invalid("subtask title cannot be empty")
		}
	}

	if t.IsRecurring && t.RecurringPattern != nil {
		switch t.RecurringPattern.Frequency {
		case "daily", "weekly", "monthly":
		default:
			return apperr.Invalid("unknown recurring frequency %q", t.RecurringPattern.Frequency)
		}
		if t.RecurringPattern.Interval < 1 {
			return apperr.Invalid("recurring interval must be at least 1")
		}
		if t.RecurringPattern.EndDate != "" {
			if _, err := time.Parse(constants.DateFormat, t.RecurringPattern.EndDate); err != nil {
				return apperr.Invalid("recurring end date %q is not YYYY-MM-DD", t.RecurringPattern.EndDate)
			}
		}
	}

	return nil
}

// Event checks a calendar event record for structural problems.
func Event(e models.CalendarEvent) error {
	if strings.TrimSpace(e.Title) == "" {
		return apperr.Invalid("event title cannot be empty")
	}
	if _, err := time.Parse(constants.DateFormat, e.Date); err != nil {
		return apperr.Invalid("event date %q is not YYYY-MM-DD", e.Date)
	}
	if e.Type != models.EventTypeTask && e.Type != models.EventTypeHabit {
		return apperr.Invalid("unknown event type %q", e.Type)
	}
	if e.StartTime != "" {
		if _, err := time.Parse(constants.TimeFormat, e.StartTime); err != nil {
			return apperr.Invalid("start time %q is not HH:MM", e.StartTime)
		}
	}
	if e.EndTime != "" {
		if _, err := time.Parse(constants.TimeFormat, e.EndTime); err != nil {
			return apperr.Invalid("end time %q is not HH:MM", e.EndTime)
		}
	}
	return nil
}
