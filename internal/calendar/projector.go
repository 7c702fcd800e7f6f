// Package calendar derives agenda entries for a date from habit schedules and
// task due dates. Projection is pure: it never touches stored state and is
// safe to call repeatedly for rendering.
package calendar

import (
	"fmt"
	"time"

	"github.com/daybookhq/daybook/internal/constants"
	"github.com/daybookhq/daybook/internal/models"
)

// Options selects which entity kinds contribute projected events.
type Options struct {
	ShowHabits bool
	ShowTasks  bool
}

// Projector derives virtual calendar events from habits and tasks.
type Projector struct {
	// weeklyDays are the days a weekly-frequency habit surfaces on.
	weeklyDays []time.Weekday
}

func New(weeklyDays []time.Weekday) *Projector {
	if len(weeklyDays) == 0 {
		weeklyDays = models.DefaultSettings().WeeklyDays
	}
	return &Projector{weeklyDays: weeklyDays}
}

// Project returns the derived events for a single date: habit occurrences
// first, then tasks due that day. The returned events are view records only
// and are never persisted.
func (p *Projector) Project(date string, habits []models.Habit, tasks []models.Task, opts Options) ([]models.CalendarEvent, error) {
	day, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return nil, fmt.Errorf("invalid date format: %w", err)
	}

	events := []models.CalendarEvent{}

	if opts.ShowHabits {
		for _, habit := range habits {
			if habit.Archived {
				continue
			}
			if !p.habitOccursOn(habit, day, date) {
				continue
			}
			events = append(events, models.CalendarEvent{
				ID:        fmt.Sprintf("habit-%s-%s", habit.ID, date),
				Title:     habit.Title,
				Date:      date,
				Type:      models.EventTypeHabit,
				Color:     habit.Color,
				RelatedID: habit.ID,
			})
		}
	}

	if opts.ShowTasks {
		for _, task := range tasks {
			if task.DueDate != date {
				continue
			}
			events = append(events, models.CalendarEvent{
				ID:        fmt.Sprintf("task-%s", task.ID),
				Title:     task.Title,
				Date:      date,
				StartTime: task.DueTime,
				Type:      models.EventTypeTask,
				Color:     PriorityColor(task.Priority),
				RelatedID: task.ID,
			})
		}
	}

	return events, nil
}

// Range projects events for every day of [start, end] inclusive, keyed by
// date.
func (p *Projector) Range(start, end string, habits []models.Habit, tasks []models.Task, opts Options) (map[string][]models.CalendarEvent, error) {
	from, err := time.Parse(constants.DateFormat, start)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}
	to, err := time.Parse(constants.DateFormat, end)
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", err)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("end date %s is before start date %s", end, start)
	}

	out := make(map[string][]models.CalendarEvent)
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		date := day.Format(constants.DateFormat)
		events, err := p.Project(date, habits, tasks, opts)
		if err != nil {
			return nil, err
		}
		if len(events) > 0 {
			out[date] = events
		}
	}
	return out, nil
}

// habitOccursOn applies the occurrence rule: daily habits every day, weekly
// habits on the configured weekly days, and any habit with an explicit
// completion record for the date regardless of schedule, so an out-of-schedule
// completion still surfaces.
func (p *Projector) habitOccursOn(habit models.Habit, day time.Time, date string) bool {
	if habit.Frequency == models.FrequencyDaily {
		return true
	}
	if habit.Frequency == models.FrequencyWeekly {
		for _, wd := range p.weeklyDays {
			if day.Weekday() == wd {
				return true
			}
		}
	}
	return habit.CompletionFor(date) >= 0
}

// PriorityColor maps a task priority to its display color.
func PriorityColor(priority models.TaskPriority) string {
	switch priority {
	case models.PriorityHigh:
		return constants.ColorPriorityHigh
	case models.PriorityMedium:
		return constants.ColorPriorityMedium
	default:
		return constants.ColorPriorityLow
	}
}
