package models

import "time"

type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// SubTask is a checklist item under a task. Subtask completion and the parent
// task's status are independently mutable.
type SubTask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// RecurringPattern is a stored descriptor only; occurrences are never
// materialized from it.
type RecurringPattern struct {
	Frequency string `json:"frequency"` // daily | weekly | monthly
	Interval  int    `json:"interval"`
	EndDate   string `json:"end_date,omitempty"` // YYYY-MM-DD format
}

// Task is a discrete unit of work with status, priority and an optional due date.
type Task struct {
	ID               string            `json:"id"`
	Title            string            `json:"title"`
	Description      string            `json:"description,omitempty"`
	Status           TaskStatus        `json:"status"`
	Priority         TaskPriority      `json:"priority"`
	DueDate          string            `json:"due_date,omitempty"` // YYYY-MM-DD format
	DueTime          string            `json:"due_time,omitempty"` // HH:MM format
	Tags             []string          `json:"tags"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
	SubTasks         []SubTask         `json:"sub_tasks"`
	IsRecurring      bool              `json:"is_recurring"`
	RecurringPattern *RecurringPattern `json:"recurring_pattern,omitempty"`
}
