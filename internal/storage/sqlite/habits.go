package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/daybookhq/daybook/internal/apperr"
	"github.com/daybookhq/daybook/internal/constants"
	"github.com/daybookhq/daybook/internal/models"
)

func scanHabit(row interface{ Scan(...interface{}) error }) (models.Habit, error) {
	var h models.Habit
	var customFrequency sql.NullString
	var createdAt, updatedAt string
	var archived int

	err := row.Scan(&h.ID, &h.Title, &h.Description, &h.Icon, &h.Color, &h.Frequency,
		&customFrequency, &createdAt, &updatedAt, &archived, &h.StreakCount, &h.LongestStreak)
	if err != nil {
		return models.Habit{}, err
	}

	h.Archived = archived != 0
	if customFrequency.Valid {
		var cf models.CustomFrequency
		if err := json.Unmarshal([]byte(customFrequency.String), &cf); err != nil {
			return models.Habit{}, fmt.Errorf("failed to parse custom_frequency for habit %s: %w", h.ID, err)
		}
		h.CustomFrequency = &cf
	}
	h.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at for habit %s: %w", h.ID, err)
	}
	h.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse updated_at for habit %s: %w", h.ID, err)
	}

	return h, nil
}

const habitColumns = `id, title, description, icon, color, frequency, custom_frequency,
		created_at, updated_at, archived, streak_count, longest_streak`

func (s *Store) GetHabit(ctx context.Context, id string) (models.Habit, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+habitColumns+` FROM habits WHERE id = ?`, id)

	h, err := scanHabit(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Habit{}, apperr.NotFound("habit", id)
		}
		return models.Habit{}, apperr.Unavailable(err)
	}

	if h.Completions, err = s.getCompletions(ctx, id); err != nil {
		return models.Habit{}, err
	}
	return h, nil
}

func (s *Store) GetAllHabits(ctx context.Context) ([]models.Habit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+habitColumns+` FROM habits ORDER BY created_at`)
	if err != nil {
		return nil, apperr.Unavailable(err)
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, apperr.Unavailable(err)
		}
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Unavailable(err)
	}

	for i := range habits {
		if habits[i].Completions, err = s.getCompletions(ctx, habits[i].ID); err != nil {
			return nil, err
		}
	}

	return habits, nil
}

func (s *Store) getCompletions(ctx context.Context, habitID string) ([]models.HabitCompletion, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, habit_id, date, completed
		FROM habit_completions WHERE habit_id = ?
		ORDER BY date`, habitID)
	if err != nil {
		return nil, apperr.Unavailable(err)
	}
	defer rows.Close()

	completions := []models.HabitCompletion{}
	for rows.Next() {
		var c models.HabitCompletion
		var completed int
		if err := rows.Scan(&c.ID, &c.HabitID, &c.Date, &completed); err != nil {
			return nil, apperr.Unavailable(err)
		}
		c.Completed = completed != 0
		completions = append(completions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Unavailable(err)
	}
	return completions, nil
}

// PutHabit upserts the habit row and replaces its completion records in a
// single transaction, so streak counters and the completion list always land
// together.
func (s *Store) PutHabit(ctx context.Context, habit models.Habit) error {
	if err := validateDates(habit.Completions); err != nil {
		return err
	}

	var customFrequency sql.NullString
	if habit.CustomFrequency != nil {
		data, err := json.Marshal(habit.CustomFrequency)
		if err != nil {
			return fmt.Errorf("failed to serialize custom_frequency: %w", err)
		}
		customFrequency = sql.NullString{String: string(data), Valid: true}
	}

	archived := 0
	if habit.Archived {
		archived = 1
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Unavailable(err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO habits (id, title, description, icon, color, frequency, custom_frequency,
			created_at, updated_at, archived, streak_count, longest_streak)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			icon = excluded.icon,
			color = excluded.color,
			frequency = excluded.frequency,
			custom_frequency = excluded.custom_frequency,
			updated_at = excluded.updated_at,
			archived = excluded.archived,
			streak_count = excluded.streak_count,
			longest_streak = excluded.longest_streak`,
		habit.ID, habit.Title, habit.Description, habit.Icon, habit.Color, habit.Frequency,
		customFrequency, habit.CreatedAt.Format(time.RFC3339), habit.UpdatedAt.Format(time.RFC3339),
		archived, habit.StreakCount, habit.LongestStreak)
	if err != nil {
		return apperr.Unavailable(err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM habit_completions WHERE habit_id = ?", habit.ID); err != nil {
		return apperr.Unavailable(err)
	}
	for _, c := range habit.Completions {
		completed := 0
		if c.Completed {
			completed = 1
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO habit_completions (id, habit_id, date, completed)
			VALUES (?, ?, ?, ?)`,
			c.ID, habit.ID, c.Date, completed)
		if err != nil {
			return apperr.Unavailable(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperr.Unavailable(err)
	}
	return nil
}

func (s *Store) DeleteHabit(ctx context.Context, id string) error {
	// No-op when absent; completions cascade
	if _, err := s.db.ExecContext(ctx, "DELETE FROM habits WHERE id = ?", id); err != nil {
		return apperr.Unavailable(err)
	}
	return nil
}

func validateDates(completions []models.HabitCompletion) error {
	for _, c := range completions {
		if _, err := time.Parse(constants.DateFormat, c.Date); err != nil {
			return apperr.Invalid("completion date %q is not YYYY-MM-DD", c.Date)
		}
	}
	return nil
}
