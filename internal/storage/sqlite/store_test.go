package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/daybookhq/daybook/internal/apperr"
	"github.com/daybookhq/daybook/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "daybook.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestInit_CreatesDatabaseWithDefaultSettings(t *testing.T) {
	store := newTestStore(t)

	settings, err := store.GetSettings(context.Background())
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}

	want := models.DefaultSettings()
	if settings.StreakPolicy != want.StreakPolicy {
		t.Errorf("Expected default streak policy %q, got %q", want.StreakPolicy, settings.StreakPolicy)
	}
	if len(settings.WeeklyDays) != 2 {
		t.Errorf("Expected weekend default weekly days, got %v", settings.WeeklyDays)
	}
}

func TestLoad_FailsWithoutInit(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Fatal("Expected Load to fail when the database file does not exist")
	}
}

func TestInit_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daybook.db")
	ctx := context.Background()

	store := NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("first Init failed: %v", err)
	}
	if err := store.PutHabit(ctx, testHabit("h1", "Read")); err != nil {
		t.Fatalf("PutHabit failed: %v", err)
	}
	store.Close()

	again := NewStore(path)
	if err := again.Init(); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	defer again.Close()

	if _, err := again.GetHabit(ctx, "h1"); err != nil {
		t.Errorf("Data should survive a repeated Init: %v", err)
	}
}

func testHabit(id, title string) models.Habit {
	now := time.Now().UTC().Truncate(time.Second)
	return models.Habit{
		ID:          id,
		Title:       title,
		Frequency:   models.FrequencyDaily,
		Color:       "#aabbcc",
		CreatedAt:   now,
		UpdatedAt:   now,
		Completions: []models.HabitCompletion{},
	}
}

func TestHabitRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	habit := testHabit("h1", "Meditate")
	habit.Description = "Ten minutes"
	habit.Icon = "lotus"
	habit.Frequency = models.FrequencyCustom
	habit.CustomFrequency = &models.CustomFrequency{Days: []time.Weekday{time.Monday, time.Thursday}, Interval: 1}
	habit.StreakCount = 3
	habit.LongestStreak = 7
	habit.Completions = []models.HabitCompletion{
		{ID: "c1", HabitID: "h1", Date: "2024-06-09", Completed: true},
		{ID: "c2", HabitID: "h1", Date: "2024-06-10", Completed: false},
	}

	if err := store.PutHabit(ctx, habit); err != nil {
		t.Fatalf("PutHabit failed: %v", err)
	}

	got, err := store.GetHabit(ctx, "h1")
	if err != nil {
		t.Fatalf("GetHabit failed: %v", err)
	}
	if got.Title != habit.Title || got.Description != habit.Description || got.Icon != habit.Icon {
		t.Errorf("Habit fields did not round-trip: %+v", got)
	}
	if got.CustomFrequency == nil || len(got.CustomFrequency.Days) != 2 {
		t.Errorf("Custom frequency did not round-trip: %+v", got.CustomFrequency)
	}
	if got.StreakCount != 3 || got.LongestStreak != 7 {
		t.Errorf("Streak counters did not round-trip: %d/%d", got.StreakCount, got.LongestStreak)
	}
	if len(got.Completions) != 2 {
		t.Fatalf("Expected two completions, got %d", len(got.Completions))
	}
	if !got.Completions[0].Completed || got.Completions[1].Completed {
		t.Errorf("Completion flags did not round-trip: %+v", got.Completions)
	}
}

func TestPutHabit_UpsertReplacesCompletions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	habit := testHabit("h1", "Read")
	habit.Completions = []models.HabitCompletion{
		{ID: "c1", HabitID: "h1", Date: "2024-06-09", Completed: true},
	}
	if err := store.PutHabit(ctx, habit); err != nil {
		t.Fatalf("PutHabit failed: %v", err)
	}

	habit.Title = "Read more"
	habit.Completions = []models.HabitCompletion{
		{ID: "c2", HabitID: "h1", Date: "2024-06-10", Completed: true},
	}
	if err := store.PutHabit(ctx, habit); err != nil {
		t.Fatalf("second PutHabit failed: %v", err)
	}

	got, err := store.GetHabit(ctx, "h1")
	if err != nil {
		t.Fatalf("GetHabit failed: %v", err)
	}
	if got.Title != "Read more" {
		t.Errorf("Upsert did not update the title, got %q", got.Title)
	}
	if len(got.Completions) != 1 || got.Completions[0].Date != "2024-06-10" {
		t.Errorf("Expected the completion list to be replaced, got %+v", got.Completions)
	}

	all, err := store.GetAllHabits(ctx)
	if err != nil {
		t.Fatalf("GetAllHabits failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("Upsert must not create a second row, got %d habits", len(all))
	}
}

func TestPutHabit_RejectsMalformedCompletionDate(t *testing.T) {
	store := newTestStore(t)

	habit := testHabit("h1", "Read")
	habit.Completions = []models.HabitCompletion{
		{ID: "c1", HabitID: "h1", Date: "June 9th", Completed: true},
	}
	if err := store.PutHabit(context.Background(), habit); !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("Expected ErrInvalid, got %v", err)
	}
}

func TestGetHabit_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetHabit(context.Background(), "missing")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestDeleteHabit_CascadesAndIgnoresMissing(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	habit := testHabit("h1", "Read")
	habit.Completions = []models.HabitCompletion{
		{ID: "c1", HabitID: "h1", Date: "2024-06-09", Completed: true},
	}
	if err := store.PutHabit(ctx, habit); err != nil {
		t.Fatalf("PutHabit failed: %v", err)
	}

	if err := store.DeleteHabit(ctx, "h1"); err != nil {
		t.Fatalf("DeleteHabit failed: %v", err)
	}
	if _, err := store.GetHabit(ctx, "h1"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Expected the habit to be gone, got %v", err)
	}

	var count int
	if err := store.db.QueryRow("SELECT COUNT(*) FROM habit_completions WHERE habit_id = ?", "h1").Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected completions to cascade, %d left", count)
	}

	// Deleting again is a no-op, not an error.
	if err := store.DeleteHabit(ctx, "h1"); err != nil {
		t.Errorf("Deleting a missing habit should be a no-op: %v", err)
	}
}

func TestGetAllHabits_OrderedByCreation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	older := testHabit("h1", "First")
	older.CreatedAt = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	newer := testHabit("h2", "Second")
	newer.CreatedAt = time.Date(2024, 6, 2, 8, 0, 0, 0, time.UTC)

	// Insert out of order.
	if err := store.PutHabit(ctx, newer); err != nil {
		t.Fatalf("PutHabit failed: %v", err)
	}
	if err := store.PutHabit(ctx, older); err != nil {
		t.Fatalf("PutHabit failed: %v", err)
	}

	all, err := store.GetAllHabits(ctx)
	if err != nil {
		t.Fatalf("GetAllHabits failed: %v", err)
	}
	if len(all) != 2 || all[0].ID != "h1" || all[1].ID != "h2" {
		t.Errorf("Expected creation order h1, h2; got %+v", all)
	}
}

func testTask(id, title string) models.Task {
	now := time.Now().UTC().Truncate(time.Second)
	return models.Task{
		ID:        id,
		Title:     title,
		Status:    models.StatusTodo,
		Priority:  models.PriorityMedium,
		Tags:      []string{},
		SubTasks:  []models.SubTask{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestTaskRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	task := testTask("t1", "File taxes")
	task.Description = "Before the deadline"
	task.Priority = models.PriorityHigh
	task.DueDate = "2024-06-10"
	task.DueTime = "14:00"
	task.Tags = []string{"finance", "urgent"}
	task.SubTasks = []models.SubTask{
		{ID: "s1", Title: "Gather receipts", Completed: true},
		{ID: "s2", Title: "Fill forms"},
	}
	task.IsRecurring = true
	task.RecurringPattern = &models.RecurringPattern{Frequency: "monthly", Interval: 1}

	if err := store.PutTask(ctx, task); err != nil {
		t.Fatalf("PutTask failed: %v", err)
	}

	got, err := store.GetTask(ctx, "t1")
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if got.Title != task.Title || got.Priority != task.Priority || got.DueDate != task.DueDate || got.DueTime != task.DueTime {
		t.Errorf("Task fields did not round-trip: %+v", got)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "finance" {
		t.Errorf("Tags did not round-trip: %v", got.Tags)
	}
	if len(got.SubTasks) != 2 || !got.SubTasks[0].Completed || got.SubTasks[1].Completed {
		t.Errorf("Subtasks did not round-trip: %+v", got.SubTasks)
	}
	if !got.IsRecurring || got.RecurringPattern == nil || got.RecurringPattern.Frequency != "monthly" {
		t.Errorf("Recurring pattern did not round-trip: %+v", got.RecurringPattern)
	}
}

func TestGetTasksByStatusAndDueDate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	todo := testTask("t1", "Open")
	todo.DueDate = "2024-06-10"
	done := testTask("t2", "Closed")
	done.Status = models.StatusCompleted
	done.DueDate = "2024-06-11"

	for _, task := range []models.Task{todo, done} {
		if err := store.PutTask(ctx, task); err != nil {
			t.Fatalf("PutTask failed: %v", err)
		}
	}

	byStatus, err := store.GetTasksByStatus(ctx, models.StatusCompleted)
	if err != nil {
		t.Fatalf("GetTasksByStatus failed: %v", err)
	}
	if len(byStatus) != 1 || byStatus[0].ID != "t2" {
		t.Errorf("Expected only the completed task, got %+v", byStatus)
	}

	byDue, err := store.GetTasksByDueDate(ctx, "2024-06-10")
	if err != nil {
		t.Fatalf("GetTasksByDueDate failed: %v", err)
	}
	if len(byDue) != 1 || byDue[0].ID != "t1" {
		t.Errorf("Expected only the task due 2024-06-10, got %+v", byDue)
	}
}

func TestEventRoundTripAndDateQuery(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	event := models.CalendarEvent{
		ID:        "e1",
		Title:     "Tax session",
		Date:      "2024-06-10",
		StartTime: "14:00",
		EndTime:   "15:00",
		Type:      models.EventTypeTask,
		Color:     "#ff0000",
		RelatedID: "t1",
	}
	other := models.CalendarEvent{
		ID:    "e2",
		Title: "Elsewhere",
		Date:  "2024-06-11",
		Type:  models.EventTypeHabit,
	}

	for _, e := range []models.CalendarEvent{event, other} {
		if err := store.PutEvent(ctx, e); err != nil {
			t.Fatalf("PutEvent failed: %v", err)
		}
	}

	got, err := store.GetEvent(ctx, "e1")
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	if got != event {
		t.Errorf("Event did not round-trip:\nwant %+v\ngot  %+v", event, got)
	}

	byDate, err := store.GetEventsByDate(ctx, "2024-06-10")
	if err != nil {
		t.Fatalf("GetEventsByDate failed: %v", err)
	}
	if len(byDate) != 1 || byDate[0].ID != "e1" {
		t.Errorf("Expected only the event on 2024-06-10, got %+v", byDate)
	}

	if err := store.DeleteEvent(ctx, "e1"); err != nil {
		t.Fatalf("DeleteEvent failed: %v", err)
	}
	if _, err := store.GetEvent(ctx, "e1"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	want := models.Settings{
		WeeklyDays:   []time.Weekday{time.Monday, time.Wednesday, time.Friday},
		StreakPolicy: models.StreakPolicyHistory,
	}
	if err := store.SaveSettings(ctx, want); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	got, err := store.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if got.StreakPolicy != want.StreakPolicy || len(got.WeeklyDays) != 3 {
		t.Errorf("Settings did not round-trip: %+v", got)
	}
}
