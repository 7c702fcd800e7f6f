// Package app holds the data facade that mediates between the UI surfaces and
// the store, engine and projector. It keeps in-memory replicas of the three
// collections and guarantees they only change after a successful write.
package app

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/daybookhq/daybook/internal/apperr"
	"github.com/daybookhq/daybook/internal/calendar"
	"github.com/daybookhq/daybook/internal/logger"
	"github.com/daybookhq/daybook/internal/models"
	"github.com/daybookhq/daybook/internal/storage"
	"github.com/daybookhq/daybook/internal/streak"
	"github.com/daybookhq/daybook/internal/validation"
)

// Facade is the mutation API backing the CLI and TUI. Construct it with New,
// call Load once at startup and Close on shutdown. All mutations write through
// to the store first and only touch the in-memory collections on success, so a
// failed write leaves the cached state exactly as it was.
type Facade struct {
	store storage.Provider

	mu        sync.Mutex
	habits    []models.Habit
	tasks     []models.Task
	events    []models.CalendarEvent
	engine    *streak.Engine
	projector *calendar.Projector
	loaded    bool
}

func New(store storage.Provider) *Facade {
	settings := models.DefaultSettings()
	return &Facade{
		store:     store,
		engine:    streak.New(store, streak.Config{Policy: settings.StreakPolicy, WeeklyDays: settings.WeeklyDays}),
		projector: calendar.New(settings.WeeklyDays),
	}
}

// Load performs the one-time bulk fetch of all three collections. A failure
// leaves every collection empty and is safe to retry.
func (f *Facade) Load(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	habits, err := f.store.GetAllHabits(ctx)
	if err != nil {
		logger.Error("Failed to load habits", "error", err)
		return err
	}
	tasks, err := f.store.GetAllTasks(ctx)
	if err != nil {
		logger.Error("Failed to load tasks", "error", err)
		return err
	}
	events, err := f.store.GetAllEvents(ctx)
	if err != nil {
		logger.Error("Failed to load events", "error", err)
		return err
	}

	// Settings are optional at this point: a missing or unreadable row falls
	// back to defaults rather than blocking startup.
	settings, err := f.store.GetSettings(ctx)
	if err != nil {
		logger.Warn("Failed to load settings, using defaults", "error", err)
		settings = models.DefaultSettings()
	}

	f.habits = habits
	f.tasks = tasks
	f.events = events
	f.engine = streak.New(f.store, streak.Config{Policy: settings.StreakPolicy, WeeklyDays: settings.WeeklyDays})
	f.projector = calendar.New(settings.WeeklyDays)
	f.loaded = true
	return nil
}

// Close releases the underlying store.
func (f *Facade) Close() error {
	return f.store.Close()
}

// Habits returns a snapshot of the cached habit collection.
func (f *Facade) Habits() []models.Habit {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Habit, len(f.habits))
	copy(out, f.habits)
	return out
}

// Tasks returns a snapshot of the cached task collection.
func (f *Facade) Tasks() []models.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// Events returns a snapshot of the cached stored-event collection.
func (f *Facade) Events() []models.CalendarEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.CalendarEvent, len(f.events))
	copy(out, f.events)
	return out
}

// Habits

// AddHabit persists a new habit built from the given record. The id,
// timestamps, completion list and streak counters are assigned here; the rest
// of the fields are taken as provided.
func (f *Facade) AddHabit(ctx context.Context, habit models.Habit) (string, error) {
	now := time.Now()
	habit.ID = uuid.New().String()
	habit.CreatedAt = now
	habit.UpdatedAt = now
	habit.Completions = []models.HabitCompletion{}
	habit.StreakCount = 0
	habit.LongestStreak = 0
	habit.Archived = false

	if err := validation.Habit(habit); err != nil {
		return "", err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.store.PutHabit(ctx, habit); err != nil {
		logger.Error("Failed to add habit", "title", habit.Title, "error", err)
		return "", err
	}
	f.habits = append(f.habits, habit)
	return habit.ID, nil
}

func (f *Facade) UpdateHabit(ctx context.Context, habit models.Habit) error {
	if err := validation.Habit(habit); err != nil {
		return err
	}
	habit.UpdatedAt = time.Now()

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findHabit(habit.ID) < 0 {
		return apperr.NotFound("habit", habit.ID)
	}
	if err := f.store.PutHabit(ctx, habit); err != nil {
		logger.Error("Failed to update habit", "id", habit.ID, "error", err)
		return err
	}
	f.replaceHabit(habit)
	return nil
}

func (f *Facade) RemoveHabit(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.store.DeleteHabit(ctx, id); err != nil {
		logger.Error("Failed to delete habit", "id", id, "error", err)
		return err
	}
	for i := range f.habits {
		if f.habits[i].ID == id {
			f.habits = append(f.habits[:i], f.habits[i+1:]...)
			break
		}
	}
	return nil
}

// CompleteHabit toggles the habit's completion for a day through the streak
// engine and swaps the updated habit into the cache.
func (f *Facade) CompleteHabit(ctx context.Context, habitID, date string, completed bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.findHabit(habitID)
	if i < 0 {
		return apperr.NotFound("habit", habitID)
	}

	updated, err := f.engine.SetCompletion(ctx, f.habits[i], date, completed)
	if err != nil {
		logger.Error("Failed to record habit completion", "id", habitID, "date", date, "error", err)
		return err
	}
	f.habits[i] = updated
	return nil
}

// ArchiveHabit sets the archived flag without touching completions or streaks.
func (f *Facade) ArchiveHabit(ctx context.Context, id string, archived bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.findHabit(id)
	if i < 0 {
		return apperr.NotFound("habit", id)
	}

	habit := f.habits[i]
	habit.Archived = archived
	habit.UpdatedAt = time.Now()
	if err := f.store.PutHabit(ctx, habit); err != nil {
		logger.Error("Failed to archive habit", "id", id, "error", err)
		return err
	}
	f.habits[i] = habit
	return nil
}

// Tasks

func (f *Facade) AddTask(ctx context.Context, task models.Task) (string, error) {
	now := time.Now()
	task.ID = uuid.New().String()
	task.CreatedAt = now
	task.UpdatedAt = now
	if task.Status == "" {
		task.Status = models.StatusTodo
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if task.Tags == nil {
		task.Tags = []string{}
	}
	if task.SubTasks == nil {
		task.SubTasks = []models.SubTask{}
	}
	for i := range task.SubTasks {
		if task.SubTasks[i].ID == "" {
			task.SubTasks[i].ID = uuid.New().String()
		}
	}

	if err := validation.Task(task); err != nil {
		return "", err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.store.PutTask(ctx, task); err != nil {
		logger.Error("Failed to add task", "title", task.Title, "error", err)
		return "", err
	}
	f.tasks = append(f.tasks, task)
	return task.ID, nil
}

func (f *Facade) UpdateTask(ctx context.Context, task models.Task) error {
	if err := validation.Task(task); err != nil {
		return err
	}
	task.UpdatedAt = time.Now()

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findTask(task.ID) < 0 {
		return apperr.NotFound("task", task.ID)
	}
	if err := f.store.PutTask(ctx, task); err != nil {
		logger.Error("Failed to update task", "id", task.ID, "error", err)
		return err
	}
	f.replaceTask(task)
	return nil
}

func (f *Facade) RemoveTask(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.store.DeleteTask(ctx, id); err != nil {
		logger.Error("Failed to delete task", "id", id, "error", err)
		return err
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			break
		}
	}
	return nil
}

// CompleteTask marks the task completed. Subtask state is left alone; the two
// are independently mutable.
func (f *Facade) CompleteTask(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.findTask(id)
	if i < 0 {
		return apperr.NotFound("task", id)
	}

	task := f.tasks[i]
	task.Status = models.StatusCompleted
	task.UpdatedAt = time.Now()
	if err := f.store.PutTask(ctx, task); err != nil {
		logger.Error("Failed to complete task", "id", id, "error", err)
		return err
	}
	f.tasks[i] = task
	return nil
}

// ToggleSubTask flips one subtask's completed flag.
func (f *Facade) ToggleSubTask(ctx context.Context, taskID, subTaskID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.findTask(taskID)
	if i < 0 {
		return apperr.NotFound("task", taskID)
	}

	task := f.tasks[i]
	task.SubTasks = make([]models.SubTask, len(f.tasks[i].SubTasks))
	copy(task.SubTasks, f.tasks[i].SubTasks)

	found := false
	for j := range task.SubTasks {
		if task.SubTasks[j].ID == subTaskID {
			task.SubTasks[j].Completed = !task.SubTasks[j].Completed
			found = true
			break
		}
	}
	if !found {
		return apperr.NotFound("subtask", subTaskID)
	}

	task.UpdatedAt = time.Now()
	if err := f.store.PutTask(ctx, task); err != nil {
		logger.Error("Failed to toggle subtask", "task", taskID, "subtask", subTaskID, "error", err)
		return err
	}
	f.tasks[i] = task
	return nil
}

// Events

func (f *Facade) AddEvent(ctx context.Context, event models.CalendarEvent) (string, error) {
	event.ID = uuid.New().String()

	if err := validation.Event(event); err != nil {
		return "", err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.store.PutEvent(ctx, event); err != nil {
		logger.Error("Failed to add event", "title", event.Title, "error", err)
		return "", err
	}
	f.events = append(f.events, event)
	return event.ID, nil
}

func (f *Facade) UpdateEvent(ctx context.Context, event models.CalendarEvent) error {
	if err := validation.Event(event); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	found := false
	for i := range f.events {
		if f.events[i].ID == event.ID {
			found = true
			break
		}
	}
	if !found {
		return apperr.NotFound("event", event.ID)
	}
	if err := f.store.PutEvent(ctx, event); err != nil {
		logger.Error("Failed to update event", "id", event.ID, "error", err)
		return err
	}
	for i := range f.events {
		if f.events[i].ID == event.ID {
			f.events[i] = event
			break
		}
	}
	return nil
}

func (f *Facade) RemoveEvent(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.store.DeleteEvent(ctx, id); err != nil {
		logger.Error("Failed to delete event", "id", id, "error", err)
		return err
	}
	for i := range f.events {
		if f.events[i].ID == id {
			f.events = append(f.events[:i], f.events[i+1:]...)
			break
		}
	}
	return nil
}

// Agenda returns the day's entries: events projected from habit schedules and
// task due dates, followed by stored events for the date. Stored events whose
// related entity no longer exists are dropped as orphans.
func (f *Facade) Agenda(date string, opts calendar.Options) ([]models.CalendarEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	events, err := f.projector.Project(date, f.habits, f.tasks, opts)
	if err != nil {
		return nil, err
	}

	for _, e := range f.events {
		if e.Date != date {
			continue
		}
		if e.RelatedID != "" && !f.resolves(e) {
			continue
		}
		events = append(events, e)
	}
	return events, nil
}

// AgendaRange projects events for every day of [start, end] inclusive.
func (f *Facade) AgendaRange(start, end string, opts calendar.Options) (map[string][]models.CalendarEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.projector.Range(start, end, f.habits, f.tasks, opts)
}

// AgendaMonth projects the whole month containing the date as a grid.
func (f *Facade) AgendaMonth(date string, opts calendar.Options) (calendar.MonthGrid, error) {
	year, month, err := calendar.MonthOf(date)
	if err != nil {
		return calendar.MonthGrid{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.projector.Month(year, month, f.habits, f.tasks, opts)
}

func (f *Facade) resolves(e models.CalendarEvent) bool {
	switch e.Type {
	case models.EventTypeHabit:
		return f.findHabit(e.RelatedID) >= 0
	case models.EventTypeTask:
		return f.findTask(e.RelatedID) >= 0
	default:
		return false
	}
}

func (f *Facade) findHabit(id string) int {
	for i := range f.habits {
		if f.habits[i].ID == id {
			return i
		}
	}
	return -1
}

func (f *Facade) findTask(id string) int {
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (f *Facade) replaceHabit(habit models.Habit) {
	for i := range f.habits {
		if f.habits[i].ID == habit.ID {
			f.habits[i] = habit
			return
		}
	}
}

func (f *Facade) replaceTask(task models.Task) {
	for i := range f.tasks {
		if f.tasks[i].ID == task.ID {
			f.tasks[i] = task
			return
		}
	}
}
