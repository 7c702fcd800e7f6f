package tui

import (
	"testing"
	"time"

	"github.com/daybookhq/daybook/internal/constants"
)

func TestToday_UsesApplicationDateFormat(t *testing.T) {
	got := today()
	if _, err := time.Parse(constants.DateFormat, got); err != nil {
		t.Fatalf("today() returned %q, not parseable as %s: %v", got, constants.DateFormat, err)
	}
}
