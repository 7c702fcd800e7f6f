package models

type EventType string

const (
	EventTypeTask  EventType = "task"
	EventTypeHabit EventType = "habit"
)

// CalendarEvent represents a habit or task occurrence on a specific date.
// Stored events reference their origin through RelatedID, a lookup key rather
// than an ownership edge: the referenced entity may be deleted independently,
// leaving the event orphaned. Events projected for agenda rendering are never
// persisted at all.
type CalendarEvent struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Date      string    `json:"date"`                 // YYYY-MM-DD format
	StartTime string    `json:"start_time,omitempty"` // HH:MM format
	EndTime   string    `json:"end_time,omitempty"`   // HH:MM format
	Type      EventType `json:"type"`
	Color     string    `json:"color,omitempty"`
	RelatedID string    `json:"related_id"`
}
