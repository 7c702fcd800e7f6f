package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/daybookhq/daybook/internal/apperr"
	"github.com/daybookhq/daybook/internal/models"
)

const taskColumns = `id, title, description, status, priority, due_date, due_time, tags,
		created_at, updated_at, sub_tasks, is_recurring, recurring_pattern`

func scanTask(row interface{ Scan(...interface{}) error }) (models.Task, error) {
	var t models.Task
	var tags, subTasks, createdAt, updatedAt string
	var recurringPattern sql.NullString
	var isRecurring int

	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.DueDate, &t.DueTime, &tags, &createdAt, &updatedAt, &subTasks,
		&isRecurring, &recurringPattern)
	if err != nil {
		return models.Task{}, err
	}

	if err := json.Unmarshal([]byte(tags), &t.Tags); err != nil {
		return models.Task{}, fmt.Errorf("failed to parse tags for task %s: %w", t.ID, err)
	}
	if err := json.Unmarshal([]byte(subTasks), &t.SubTasks); err != nil {
		return models.Task{}, fmt.Errorf("failed to parse sub_tasks for task %s: %w", t.ID, err)
	}
	t.IsRecurring = isRecurring != 0
	if recurringPattern.Valid {
		var rp models.RecurringPattern
		if err := json.Unmarshal([]byte(recurringPattern.String), &rp); err != nil {
			return models.Task{}, fmt.Errorf("failed to parse recurring_pattern for task %s: %w", t.ID, err)
		}
		t.RecurringPattern = &rp
	}
	t.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to parse created_at for task %s: %w", t.ID, err)
	}
	t.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to parse updated_at for task %s: %w", t.ID, err)
	}

	return t, nil
}

func (s *Store) queryTasks(ctx context.Context, query string, args ...interface{}) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Unavailable(err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, apperr.Unavailable(err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Unavailable(err)
	}
	return tasks, nil
}

func (s *Store) GetAllTasks(ctx context.Context) ([]models.Task, error) {
	return s.queryTasks(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY created_at`)
}

func (s *Store) GetTasksByStatus(ctx context.Context, status models.TaskStatus) ([]models.Task, error) {
	return s.queryTasks(ctx, `SELECT `+taskColumns+` FROM tasks WHERE status = ? ORDER BY created_at`, status)
}

func (s *Store) GetTasksByDueDate(ctx context.Context, date string) ([]models.Task, error) {
	return s.queryTasks(ctx, `SELECT `+taskColumns+` FROM tasks WHERE due_date = ? ORDER BY created_at`, date)
}

func (s *Store) GetTask(ctx context.Context, id string) (models.Task, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)

	t, err := scanTask(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Task{}, apperr.NotFound("task", id)
		}
		return models.Task{}, apperr.Unavailable(err)
	}
	return t, nil
}

func (s *Store) PutTask(ctx context.Context, task models.Task) error {
	tags, err := json.Marshal(orEmpty(task.Tags))
	if err != nil {
		return fmt.Errorf("failed to serialize tags: %w", err)
	}
	subTasks, err := json.Marshal(orEmptySubTasks(task.SubTasks))
	if err != nil {
		return fmt.Errorf("failed to serialize sub_tasks: %w", err)
	}
	var recurringPattern sql.NullString
	if task.RecurringPattern != nil {
		data, err := json.Marshal(task.RecurringPattern)
		if err != nil {
			return fmt.Errorf("failed to serialize recurring_pattern: %w", err)
		}
		recurringPattern = sql.NullString{String: string(data), Valid: true}
	}
	isRecurring := 0
	if task.IsRecurring {
		isRecurring = 1
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, description, status, priority, due_date, due_time, tags,
			created_at, updated_at, sub_tasks, is_recurring, recurring_pattern)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			status = excluded.status,
			priority = excluded.priority,
			due_date = excluded.due_date,
			due_time = excluded.due_time,
			tags = excluded.tags,
			updated_at = excluded.updated_at,
			sub_tasks = excluded.sub_tasks,
			is_recurring = excluded.is_recurring,
			recurring_pattern = excluded.recurring_pattern`,
		task.ID, task.Title, task.Description, task.Status, task.Priority,
		task.DueDate, task.DueTime, string(tags),
		task.CreatedAt.Format(time.RFC3339), task.UpdatedAt.Format(time.RFC3339),
		string(subTasks), isRecurring, recurringPattern)
	if err != nil {
		return apperr.Unavailable(err)
	}
	return nil
}

func (s *Store) DeleteTask(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id); err != nil {
		return apperr.Unavailable(err)
	}
	return nil
}

func orEmpty(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}

func orEmptySubTasks(ss []models.SubTask) []models.SubTask {
	if ss == nil {
		return []models.SubTask{}
	}
	return ss
}
