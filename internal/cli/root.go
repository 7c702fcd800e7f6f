package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/daybookhq/daybook/internal/app"
	"github.com/daybookhq/daybook/internal/backup"
	"github.com/daybookhq/daybook/internal/constants"
	"github.com/daybookhq/daybook/internal/logger"
	"github.com/daybookhq/daybook/internal/models"
	"github.com/daybookhq/daybook/internal/storage"
)

// Context is shared by every command.
type Context struct {
	Store storage.Provider
	App   *app.Facade

	loaded bool
}

// Ensure opens the store and performs the facade's initial bulk load. Safe to
// call from every command; the load happens once.
func (c *Context) Ensure(ctx context.Context) error {
	if c.loaded {
		return nil
	}
	if err := c.Store.Load(); err != nil {
		return err
	}
	if err := c.App.Load(ctx); err != nil {
		return fmt.Errorf("failed to load data (retry with the same command): %w", err)
	}
	c.loaded = true
	return nil
}

// Close releases the store once the selected command has run. Some commands
// open the database without the facade load (init, backup create), so this
// must not be gated on the loaded flag; closing a never-opened store is a
// no-op.
func (c *Context) Close() {
	if err := c.App.Close(); err != nil {
		logger.Warn("Failed to close store", "error", err)
	}
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Today returns the current date in the application's date format.
func Today() string {
	return time.Now().Format(constants.DateFormat)
}

// ResolveDate validates an explicit date or falls back to today.
func ResolveDate(date string) (string, error) {
	if date == "" {
		return Today(), nil
	}
	if _, err := time.Parse(constants.DateFormat, date); err != nil {
		return "", fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", date)
	}
	return date, nil
}

// FormatFrequency formats a habit's schedule as a human-readable string
func FormatFrequency(h models.Habit) string {
	switch h.Frequency {
	case models.FrequencyDaily:
		return "daily"
	case models.FrequencyWeekly:
		return "weekly"
	case models.FrequencyCustom:
		if h.CustomFrequency == nil || len(h.CustomFrequency.Days) == 0 {
			return "custom"
		}
		var days []string
		for _, wd := range h.CustomFrequency.Days {
			days = append(days, wd.String()[:3])
		}
		return fmt.Sprintf("custom on %s", strings.Join(days, ","))
	default:
		return string(h.Frequency)
	}
}
