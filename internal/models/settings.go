package models

import "time"

// StreakPolicy selects how the streak engine recomputes streak counters.
type StreakPolicy string

const (
	// StreakPolicySimple increments on completion and resets on un-completion
	// without consulting the completion history. This matches the counters of
	// previously stored data.
	StreakPolicySimple StreakPolicy = "simple"
	// StreakPolicyHistory scans the completion history backward and counts
	// actual consecutive qualifying-day runs.
	StreakPolicyHistory StreakPolicy = "history"
)

// Settings holds user-tunable application configuration, persisted alongside
// the data it governs.
type Settings struct {
	// WeeklyDays are the qualifying weekdays for weekly-frequency habits.
	WeeklyDays []time.Weekday `json:"weekly_days"`
	// StreakPolicy selects the streak recomputation behavior.
	StreakPolicy StreakPolicy `json:"streak_policy"`
}

// DefaultSettings returns the configuration used for a fresh database:
// weekly habits qualify on weekends and streaks use the compatibility policy.
func DefaultSettings() Settings {
	return Settings{
		WeeklyDays:   []time.Weekday{time.Sunday, time.Saturday},
		StreakPolicy: StreakPolicySimple,
	}
}
