package models

import "time"

// HabitFrequency describes how often a habit is expected to be performed.
type HabitFrequency string

const (
	FrequencyDaily  HabitFrequency = "daily"
	FrequencyWeekly HabitFrequency = "weekly"
	FrequencyCustom HabitFrequency = "custom"
)

// CustomFrequency holds the schedule for custom-frequency habits.
// Days are weekday numbers (Sunday=0).
type CustomFrequency struct {
	Days     []time.Weekday `json:"days"`
	Interval int            `json:"interval,omitempty"`
}

// Habit represents a recurring practice tracked per calendar day.
type Habit struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	Description     string            `json:"description,omitempty"`
	Icon            string            `json:"icon,omitempty"`
	Color           string            `json:"color"`
	Frequency       HabitFrequency    `json:"frequency"`
	CustomFrequency *CustomFrequency  `json:"custom_frequency,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	Completions     []HabitCompletion `json:"completions"`
	Archived        bool              `json:"archived"`
	StreakCount     int               `json:"streak_count"`
	LongestStreak   int               `json:"longest_streak"`
}

// HabitCompletion records whether a habit was performed on a specific day.
// At most one completion exists per (HabitID, Date) pair; toggling the same
// day mutates the existing record instead of appending a new one.
type HabitCompletion struct {
	ID        string `json:"id"`
	HabitID   string `json:"habit_id"`
	Date      string `json:"date"` // YYYY-MM-DD format
	Completed bool   `json:"completed"`
}

// CompletionFor returns the index of the completion record for the given day,
// or -1 if the habit has no record for that day.
func (h Habit) CompletionFor(date string) int {
	for i, c := range h.Completions {
		if c.Date == date {
			return i
		}
	}
	return -1
}

// CompletedOn reports whether the habit has a completed record for the day.
func (h Habit) CompletedOn(date string) bool {
	i := h.CompletionFor(date)
	return i >= 0 && h.Completions[i].Completed
}
