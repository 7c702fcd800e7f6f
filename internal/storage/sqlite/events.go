package sqlite

import (
	"context"
	"database/sql"

	"github.com/daybookhq/daybook/internal/apperr"
	"github.com/daybookhq/daybook/internal/models"
)

const eventColumns = `id, title, date, start_time, end_time, type, color, related_id`

func scanEvent(row interface{ Scan(...interface{}) error }) (models.CalendarEvent, error) {
	var e models.CalendarEvent
	err := row.Scan(&e.ID, &e.Title, &e.Date, &e.StartTime, &e.EndTime, &e.Type, &e.Color, &e.RelatedID)
	return e, err
}

func (s *Store) queryEvents(ctx context.Context, query string, args ...interface{}) ([]models.CalendarEvent, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Unavailable(err)
	}
	defer rows.Close()

	var events []models.CalendarEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, apperr.Unavailable(err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Unavailable(err)
	}
	return events, nil
}

func (s *Store) GetAllEvents(ctx context.Context) ([]models.CalendarEvent, error) {
	return s.queryEvents(ctx, `SELECT `+eventColumns+` FROM events ORDER BY date`)
}

func (s *Store) GetEventsByDate(ctx context.Context, date string) ([]models.CalendarEvent, error) {
	return s.queryEvents(ctx, `SELECT `+eventColumns+` FROM events WHERE date = ? ORDER BY date`, date)
}

func (s *Store) GetEvent(ctx context.Context, id string) (models.CalendarEvent, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id)

	e, err := scanEvent(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.CalendarEvent{}, apperr.NotFound("event", id)
		}
		return models.CalendarEvent{}, apperr.Unavailable(err)
	}
	return e, nil
}

func (s *Store) PutEvent(ctx context.Context, event models.CalendarEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (id, title, date, start_time, end_time, type, color, related_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			date = excluded.date,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			type = excluded.type,
			color = excluded.color,
			related_id = excluded.related_id`,
		event.ID, event.Title, event.Date, event.StartTime, event.EndTime,
		event.Type, event.Color, event.RelatedID)
	if err != nil {
		return apperr.Unavailable(err)
	}
	return nil
}

func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM events WHERE id = ?", id); err != nil {
		return apperr.Unavailable(err)
	}
	return nil
}
