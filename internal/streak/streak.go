// Package streak implements the habit completion and streak-tracking engine.
package streak

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/daybookhq/daybook/internal/apperr"
	"github.com/daybookhq/daybook/internal/constants"
	"github.com/daybookhq/daybook/internal/models"
	"github.com/daybookhq/daybook/internal/storage"
)

// Config controls streak recomputation.
type Config struct {
	// Policy selects between the compatibility counter and the
	// history-scanning recomputation.
	Policy models.StreakPolicy
	// WeeklyDays are the qualifying weekdays for weekly-frequency habits.
	WeeklyDays []time.Weekday
}

// Engine updates habit completion records and their derived streak counters.
type Engine struct {
	store storage.Provider
	cfg   Config
}

func New(store storage.Provider, cfg Config) *Engine {
	if len(cfg.WeeklyDays) == 0 {
		cfg.WeeklyDays = models.DefaultSettings().WeeklyDays
	}
	if cfg.Policy == "" {
		cfg.Policy = models.StreakPolicySimple
	}
	return &Engine{store: store, cfg: cfg}
}

// SetCompletion records whether the habit was performed on the given day and
// returns the updated habit. The completion for that day is overwritten if it
// already exists, so a habit never carries two records for one date. The
// updated habit, including recomputed streak counters, is persisted before the
// in-memory copy is returned; when the write fails, the caller's habit is left
// untouched and nothing is stored.
func (e *Engine) SetCompletion(ctx context.Context, habit models.Habit, date string, completed bool) (models.Habit, error) {
	if _, err := time.Parse(constants.DateFormat, date); err != nil {
		return models.Habit{}, apperr.Invalid("date %q is not YYYY-MM-DD", date)
	}

	updated := habit
	updated.Completions = make([]models.HabitCompletion, len(habit.Completions))
	copy(updated.Completions, habit.Completions)

	if i := updated.CompletionFor(date); i >= 0 {
		updated.Completions[i].Completed = completed
	} else {
		updated.Completions = append(updated.Completions, models.HabitCompletion{
			ID:        uuid.New().String(),
			HabitID:   habit.ID,
			Date:      date,
			Completed: completed,
		})
	}

	switch e.cfg.Policy {
	case models.StreakPolicyHistory:
		updated.StreakCount = e.scanStreak(updated)
	default:
		// Compatibility behavior: increment or reset without consulting the
		// completion history.
		if completed {
			updated.StreakCount = habit.StreakCount + 1
		} else {
			updated.StreakCount = 0
		}
	}

	if updated.StreakCount > updated.LongestStreak {
		updated.LongestStreak = updated.StreakCount
	}
	updated.UpdatedAt = time.Now()

	if err := e.store.PutHabit(ctx, updated); err != nil {
		return models.Habit{}, err
	}

	return updated, nil
}

// Qualifies reports whether the given day counts toward the habit's streak:
// every day for daily habits, the configured weekly days for weekly habits,
// and the custom weekday set for custom habits.
func (e *Engine) Qualifies(habit models.Habit, day time.Time) bool {
	switch habit.Frequency {
	case models.FrequencyDaily:
		return true
	case models.FrequencyWeekly:
		for _, wd := range e.cfg.WeeklyDays {
			if day.Weekday() == wd {
				return true
			}
		}
		return false
	case models.FrequencyCustom:
		if habit.CustomFrequency == nil {
			return false
		}
		for _, wd := range habit.CustomFrequency.Days {
			if day.Weekday() == wd {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// scanStreak walks the completion history backward from the most recent
// completed day and counts consecutive qualifying completed days. A
// non-qualifying day neither extends nor breaks the run.
func (e *Engine) scanStreak(habit models.Habit) int {
	completed := make(map[string]bool, len(habit.Completions))
	var latest, earliest string
	for _, c := range habit.Completions {
		if !c.Completed {
			continue
		}
		completed[c.Date] = true
		if latest == "" || c.Date > latest {
			latest = c.Date
		}
		if earliest == "" || c.Date < earliest {
			earliest = c.Date
		}
	}
	if latest == "" {
		return 0
	}

	// Dates validated on the way in, so these parses cannot fail.
	day, _ := time.Parse(constants.DateFormat, latest)
	first, _ := time.Parse(constants.DateFormat, earliest)

	count := 0
	for !day.Before(first) {
		if e.Qualifies(habit, day) {
			if !completed[day.Format(constants.DateFormat)] {
				break
			}
			count++
		}
		day = day.AddDate(0, 0, -1)
	}
	return count
}
