package cli

import (
	"testing"
	"time"

	"github.com/daybookhq/daybook/internal/app"
	"github.com/daybookhq/daybook/internal/models"
	"github.com/daybookhq/daybook/internal/storage"
)

// closeRecorder stubs just the lifecycle of a Provider so Close propagation
// can be checked.
type closeRecorder struct {
	storage.Provider
	closed bool
}

func (c *closeRecorder) Init() error  { return nil }
func (c *closeRecorder) Load() error  { return nil }
func (c *closeRecorder) Close() error { c.closed = true; return nil }

// Commands like init and backup create open the store without going through
// Ensure, so Close must release it even when the facade never loaded.
func TestContextClose_ClosesStoreWithoutEnsure(t *testing.T) {
	rec := &closeRecorder{}
	ctx := &Context{Store: rec, App: app.New(rec)}

	if err := ctx.Store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	ctx.Close()

	if !rec.closed {
		t.Fatal("expected the store to be closed")
	}
}

func TestResolveDate(t *testing.T) {
	got, err := ResolveDate("2024-06-10")
	if err != nil {
		t.Fatalf("ResolveDate failed: %v", err)
	}
	if got != "2024-06-10" {
		t.Errorf("expected the explicit date back, got %q", got)
	}

	got, err = ResolveDate("")
	if err != nil {
		t.Fatalf("ResolveDate failed: %v", err)
	}
	if got != Today() {
		t.Errorf("expected today for an empty date, got %q", got)
	}

	if _, err := ResolveDate("10/06/2024"); err == nil {
		t.Error("expected an error for a malformed date")
	}
}

func TestFormatFrequency(t *testing.T) {
	if got := FormatFrequency(models.Habit{Frequency: models.FrequencyDaily}); got != "daily" {
		t.Errorf("expected daily, got %q", got)
	}

	custom := models.Habit{
		Frequency:       models.FrequencyCustom,
		CustomFrequency: &models.CustomFrequency{Days: []time.Weekday{time.Monday, time.Thursday}},
	}
	if got := FormatFrequency(custom); got != "custom on Mon,Thu" {
		t.Errorf("expected custom day list, got %q", got)
	}

	if got := FormatFrequency(models.Habit{Frequency: models.FrequencyCustom}); got != "custom" {
		t.Errorf("expected bare custom when no days configured, got %q", got)
	}
}
