// Package sqlite implements storage.Provider on a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/daybookhq/daybook/internal/apperr"
	"github.com/daybookhq/daybook/internal/migration"
	"github.com/daybookhq/daybook/internal/models"
	"github.com/daybookhq/daybook/migrations"
)

type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

func (s *Store) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return apperr.Unavailable(fmt.Errorf("failed to create config directory: %w", err))
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return apperr.Unavailable(fmt.Errorf("failed to open database: %w", err))
	}
	s.db = db

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return apperr.Unavailable(err)
	}

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize default settings if not present
	if _, err := s.GetSettings(context.Background()); err != nil {
		if err := s.SaveSettings(context.Background(), models.DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'daybook init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return apperr.Unavailable(fmt.Errorf("failed to open database: %w", err))
	}
	s.db = db

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return apperr.Unavailable(err)
	}

	// Validate schema version using embedded migrations
	if err := s.validateSchemaVersion(); err != nil {
		return err
	}

	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) runMigrations() error {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS)
	_, err = runner.ApplyMigrations(nil)
	return err
}

func (s *Store) validateSchemaVersion() error {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS)
	return runner.ValidateVersion()
}

func (s *Store) GetConfigPath() string {
	return s.path
}

func (s *Store) GetSettings(ctx context.Context) (models.Settings, error) {
	row := s.db.QueryRowContext(ctx, "SELECT weekly_days, streak_policy FROM settings WHERE id = 1")

	var weeklyDays string
	var settings models.Settings
	if err := row.Scan(&weeklyDays, &settings.StreakPolicy); err != nil {
		if err == sql.ErrNoRows {
			return models.Settings{}, apperr.NotFound("settings", "1")
		}
		return models.Settings{}, apperr.Unavailable(err)
	}

	if err := json.Unmarshal([]byte(weeklyDays), &settings.WeeklyDays); err != nil {
		return models.Settings{}, fmt.Errorf("failed to parse weekly_days: %w", err)
	}

	return settings, nil
}

func (s *Store) SaveSettings(ctx context.Context, settings models.Settings) error {
	weeklyDays, err := json.Marshal(settings.WeeklyDays)
	if err != nil {
		return fmt.Errorf("failed to serialize weekly_days: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO settings (id, weekly_days, streak_policy)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			weekly_days = excluded.weekly_days,
			streak_policy = excluded.streak_policy`,
		string(weeklyDays), string(settings.StreakPolicy))
	if err != nil {
		return apperr.Unavailable(err)
	}
	return nil
}
