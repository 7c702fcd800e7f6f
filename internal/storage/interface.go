package storage

import (
	"context"

	"github.com/daybookhq/daybook/internal/models"
)

// Provider is the durable store for the three record kinds. Implementations
// upsert by id, order get-all results by creation time, and report failures
// of the persistence layer as apperr.ErrUnavailable and missing records as
// apperr.ErrNotFound.
//
// Concurrency note: a Provider is not safe for concurrent use by multiple
// goroutines without external synchronization, and sharing one database file
// between processes is not supported.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings(ctx context.Context) (models.Settings, error)
	SaveSettings(ctx context.Context, s models.Settings) error

	// Habits (completions are loaded and stored with their habit)
	GetAllHabits(ctx context.Context) ([]models.Habit, error)
	GetHabit(ctx context.Context, id string) (models.Habit, error)
	PutHabit(ctx context.Context, habit models.Habit) error
	DeleteHabit(ctx context.Context, id string) error

	// Tasks
	GetAllTasks(ctx context.Context) ([]models.Task, error)
	GetTask(ctx context.Context, id string) (models.Task, error)
	PutTask(ctx context.Context, task models.Task) error
	DeleteTask(ctx context.Context, id string) error
	GetTasksByStatus(ctx context.Context, status models.TaskStatus) ([]models.Task, error)
	GetTasksByDueDate(ctx context.Context, date string) ([]models.Task, error)

	// Events
	GetAllEvents(ctx context.Context) ([]models.CalendarEvent, error)
	GetEvent(ctx context.Context, id string) (models.CalendarEvent, error)
	PutEvent(ctx context.Context, event models.CalendarEvent) error
	DeleteEvent(ctx context.Context, id string) error
	GetEventsByDate(ctx context.Context, date string) ([]models.CalendarEvent, error)

	// Utils
	GetConfigPath() string
}
